package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Errors returned by the repositories. Callers match them with errors.Is.
var (
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("conflicting record")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err comes from a unique index.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// IsForeignKeyViolation reports whether err comes from a foreign key constraint.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return false
}

// TranslateWriteError maps driver errors from an insert or update onto the
// repository errors. what names the record in the resulting message.
func TranslateWriteError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	case IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", what, ErrInvalidReference)
	default:
		return err
	}
}

// TranslateDeleteError is TranslateWriteError for deletes, where a foreign
// key violation means other rows still reference the record.
func TranslateDeleteError(err error, what string) error {
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("%s is still referenced: %w", what, ErrConflict)
	}
	return TranslateWriteError(err, what)
}

// ReferencedError reports a record that cannot be deleted because books
// still point at it. It matches ErrConflict.
type ReferencedError struct {
	Entity string
	ID     uint
	Books  int64
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("%s %d is referenced by %d books", e.Entity, e.ID, e.Books)
}

func (e *ReferencedError) Unwrap() error {
	return ErrConflict
}
