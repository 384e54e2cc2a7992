package database

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Ping())

	for _, table := range []string{"authors", "categories", "books", "audit_events"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.True(t, db.DB.Migrator().HasIndex(&entities.Author{}, "idx_authors_name"))
	assert.True(t, db.DB.Migrator().HasIndex(&entities.Book{}, "idx_books_isbn"))
}

func TestOpen_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Database
	}{
		{name: "sqlite without path", cfg: config.Database{Driver: config.DatabaseDriverSQLite}},
		{name: "postgres without dsn", cfg: config.Database{Driver: config.DatabaseDriverPostgres}},
		{name: "unknown driver", cfg: config.Database{Driver: "oracle", Path: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := setupTestDB(t)

	err := db.DB.Create(&entities.Book{Title: "Orphan", ISBN: "1", AuthorID: 5, CategoryID: 5}).Error
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestUniqueIndexes(t *testing.T) {
	db := setupTestDB(t)

	author := entities.Author{Name: "Ursula K. Le Guin", DateOfBirth: time.Date(1929, 10, 21, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.DB.Create(&author).Error)

	err := db.DB.Create(&entities.Author{Name: "Ursula K. Le Guin"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.ErrorIs(t, TranslateWriteError(err, "create author"), ErrConflict)
}

func TestSQLiteLowerFoldsUnicode(t *testing.T) {
	db := setupTestDB(t)

	var lowered string
	require.NoError(t, db.DB.Raw("SELECT lower(?)", "ÉLAN Ünïcode ABC").Scan(&lowered).Error)
	assert.Equal(t, "élan ünïcode abc", lowered)

	var isNull bool
	require.NoError(t, db.DB.Raw("SELECT lower(NULL) IS NULL").Scan(&isNull).Error)
	assert.True(t, isNull)
}

func TestUnicodeLower(t *testing.T) {
	assert.Equal(t, "ñandú", unicodeLower("ÑANDÚ"))
	assert.Nil(t, unicodeLower([]byte(nil)))
	assert.Equal(t, []byte("RAW"), unicodeLower([]byte("RAW")))
	assert.Equal(t, int64(7), unicodeLower(int64(7)))
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "./library.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("./library.db"))
	assert.Equal(t, "file:x.db?cache=shared&_foreign_keys=on&_busy_timeout=5000", sqliteDSN("file:x.db?cache=shared"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Error, parseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, parseLogLevel("info"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
	assert.Equal(t, logger.Warn, parseLogLevel("verbose"))
}

func TestTranslateWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, want: ErrNotFound},
		{name: "gorm duplicate", err: gorm.ErrDuplicatedKey, want: ErrConflict},
		{name: "sqlite unique", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, want: ErrConflict},
		{name: "postgres unique", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: ErrConflict},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, want: ErrInvalidReference},
		{name: "postgres foreign key", err: &pgconn.PgError{Code: "23503"}, want: ErrInvalidReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, TranslateWriteError(tt.err, "record"), tt.want)
		})
	}

	assert.NoError(t, TranslateWriteError(nil, "record"))

	other := errors.New("disk full")
	assert.Equal(t, other, TranslateWriteError(other, "record"))
}

func TestTranslateDeleteError(t *testing.T) {
	err := TranslateDeleteError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, "author")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "author is still referenced")

	assert.ErrorIs(t, TranslateDeleteError(gorm.ErrRecordNotFound, "author"), ErrNotFound)
}

func TestReferencedError(t *testing.T) {
	var err error = &ReferencedError{Entity: "category", ID: 4, Books: 2}

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "category 4 is referenced by 2 books", err.Error())

	var referenced *ReferencedError
	require.ErrorAs(t, fmt.Errorf("delete: %w", err), &referenced)
	assert.Equal(t, int64(2), referenced.Books)
}
