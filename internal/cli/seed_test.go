package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/query"
)

func countCatalog(t *testing.T, dbPath string) (authorCount, bookCount int64) {
	t.Helper()

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	page, err := query.NewPage(1, 1)
	require.NoError(t, err)

	_, authorCount, err = authors.NewRepository(db.DB).List(context.Background(), page)
	require.NoError(t, err)
	_, bookCount, err = books.NewRepository(db.DB).List(context.Background(), books.Filter{}, page)
	require.NoError(t, err)
	return authorCount, bookCount
}

func TestSeedCommand_Defaults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	var out bytes.Buffer

	cmd := NewSeedCommand().Command()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--db", dbPath})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Seeded 19 records (0 skipped as duplicates)")

	authorCount, bookCount := countCatalog(t, dbPath)
	assert.Equal(t, int64(len(sampleAuthors)), authorCount)
	assert.Equal(t, int64(len(sampleBooks)), bookCount)
}

func TestSeedCommand_GeneratedRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	var out bytes.Buffer

	cmd := NewSeedCommand().Command()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--db", dbPath, "--authors", "10", "--books", "25", "-v"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "+ author: Sample Author 010")
	assert.Contains(t, out.String(), "+ book: Sample Book 0025")

	authorCount, bookCount := countCatalog(t, dbPath)
	assert.Equal(t, int64(10), authorCount)
	assert.Equal(t, int64(25), bookCount)
}

func TestSeedCommand_Rerun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")

	seed := &SeedCommand{DatabasePath: dbPath, Authors: 3, Books: 4}
	require.NoError(t, seed.Run(context.Background(), &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, seed.Run(context.Background(), &out))
	assert.Contains(t, out.String(), "(11 skipped as duplicates)")

	authorCount, bookCount := countCatalog(t, dbPath)
	assert.Equal(t, int64(3), authorCount)
	assert.Equal(t, int64(4), bookCount)
}

func TestSeedCommand_InvalidCounts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")

	err := (&SeedCommand{DatabasePath: dbPath, Authors: 0, Books: 1}).Run(context.Background(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "--authors")

	err = (&SeedCommand{DatabasePath: dbPath, Authors: 1, Books: -1}).Run(context.Background(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "--books")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer

	root := NewRootCommand(BuildInfo{Version: "1.4.0", Commit: "abc123"})
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "library 1.4.0 (abc123)\n", out.String())
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand(BuildInfo{Version: "dev"})

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "seed", "version"})
}
