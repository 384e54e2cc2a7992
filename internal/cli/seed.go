package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/categories"
	"github.com/mrlokans/library/internal/entities"
)

// SeedCommand fills the catalog with sample authors, categories and books.
type SeedCommand struct {
	DatabasePath string
	Authors      int
	Books        int
	Verbose      bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

// Command exposes the seed command to cobra.
func (cmd *SeedCommand) Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "seed",
		Short: "Populate the catalog with sample data",
		Long: "Populate the catalog with sample authors, categories and books.\n\n" +
			"The first records are well-known public domain works; larger counts\n" +
			"are padded with generated entries. Existing records are kept and\n" +
			"duplicates are skipped.",
		Example: "  library seed\n  library seed --authors 50 --books 500 --db ./demo.db",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Run(c.Context(), c.OutOrStdout())
		},
	}

	c.Flags().StringVar(&cmd.DatabasePath, "db", "", "Path to the SQLite database (defaults to DATABASE_PATH)")
	c.Flags().IntVar(&cmd.Authors, "authors", len(sampleAuthors), "Number of authors to create")
	c.Flags().IntVar(&cmd.Books, "books", len(sampleBooks), "Number of books to create")
	c.Flags().BoolVarP(&cmd.Verbose, "verbose", "v", false, "Print every created record")
	return c
}

type sampleAuthor struct {
	name string
	born time.Time
}

type sampleBook struct {
	title     string
	author    int // index into sampleAuthors
	category  int // index into sampleCategories
	published time.Time
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var sampleAuthors = []sampleAuthor{
	{"George Orwell", day(1903, 6, 25)},
	{"Jane Austen", day(1775, 12, 16)},
	{"Mary Shelley", day(1797, 8, 30)},
	{"Alexandre Dumas", day(1802, 7, 24)},
	{"William Shakespeare", day(1564, 4, 23)},
	{"Sun Tzu", day(544, 1, 1)},
}

var sampleCategories = []string{
	"Fiction",
	"Classics",
	"Drama",
	"Philosophy",
}

var sampleBooks = []sampleBook{
	{"Animal Farm", 0, 0, day(1945, 8, 17)},
	{"Pride and Prejudice", 1, 1, day(1813, 1, 28)},
	{"Emma", 1, 1, day(1815, 12, 23)},
	{"Frankenstein", 2, 0, day(1818, 1, 1)},
	{"The Three Musketeers", 3, 0, day(1844, 3, 14)},
	{"The Count of Monte Cristo", 3, 1, day(1844, 8, 28)},
	{"Romeo and Juliet", 4, 2, day(1597, 1, 1)},
	{"Hamlet", 4, 2, day(1603, 1, 1)},
	{"The Art of War", 5, 3, day(1910, 1, 1)},
}

// Run creates the requested records and prints a summary to out.
func (cmd *SeedCommand) Run(ctx context.Context, out io.Writer) error {
	if cmd.Authors < 1 {
		return fmt.Errorf("--authors must be at least 1")
	}
	if cmd.Books < 0 {
		return fmt.Errorf("--books must not be negative")
	}

	dbCfg := config.NewConfig().Database
	if cmd.DatabasePath != "" {
		dbCfg.Driver = config.DatabaseDriverSQLite
		dbCfg.Path = cmd.DatabasePath
	}

	db, err := database.Open(dbCfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	s := &seeder{
		out:        out,
		verbose:    cmd.Verbose,
		authors:    authors.NewRepository(db.DB),
		books:      books.NewRepository(db.DB),
		categories: categories.NewRepository(db.DB),
	}
	return s.run(ctx, cmd.Authors, cmd.Books)
}

type seeder struct {
	out        io.Writer
	verbose    bool
	authors    *authors.Repository
	books      *books.Repository
	categories *categories.Repository

	created, skipped int
}

func (s *seeder) run(ctx context.Context, authorCount, bookCount int) error {
	authorIDs := make([]uint, 0, authorCount)
	for i := 0; i < authorCount; i++ {
		author := &entities.Author{
			Name:        fmt.Sprintf("Sample Author %03d", i+1),
			DateOfBirth: day(1900+i%100, time.Month(i%12+1), i%28+1),
		}
		if i < len(sampleAuthors) {
			author.Name = sampleAuthors[i].name
			author.DateOfBirth = sampleAuthors[i].born
		}

		id, err := s.ensureAuthor(ctx, author)
		if err != nil {
			return err
		}
		authorIDs = append(authorIDs, id)
	}

	categoryIDs, err := s.ensureCategories(ctx)
	if err != nil {
		return err
	}

	for i := 0; i < bookCount; i++ {
		book := &entities.Book{
			Title:         fmt.Sprintf("Sample Book %04d", i+1),
			ISBN:          fmt.Sprintf("97800000%05d", i+1),
			PublishedDate: day(1950+i%70, time.Month(i%12+1), i%28+1),
			AuthorID:      authorIDs[i%len(authorIDs)],
			CategoryID:    categoryIDs[i%len(categoryIDs)],
		}
		if i < len(sampleBooks) && sampleBooks[i].author < len(authorIDs) {
			sample := sampleBooks[i]
			book.Title = sample.title
			book.PublishedDate = sample.published
			book.AuthorID = authorIDs[sample.author]
			book.CategoryID = categoryIDs[sample.category]
		}

		if err := s.books.Create(ctx, book); err != nil {
			if errors.Is(err, database.ErrConflict) {
				s.skipped++
				continue
			}
			return fmt.Errorf("create book %q: %w", book.Title, err)
		}
		s.record("book", book.Title)
	}

	fmt.Fprintf(s.out, "Seeded %d records (%d skipped as duplicates)\n", s.created, s.skipped)
	return nil
}

// ensureAuthor creates the author or, when the name is taken, reuses the
// existing one.
func (s *seeder) ensureAuthor(ctx context.Context, author *entities.Author) (uint, error) {
	err := s.authors.Create(ctx, author)
	if err == nil {
		s.record("author", author.Name)
		return author.ID, nil
	}
	if !errors.Is(err, database.ErrConflict) {
		return 0, fmt.Errorf("create author %q: %w", author.Name, err)
	}

	s.skipped++
	existing, err := s.authors.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, a := range existing {
		if a.Name == author.Name {
			return a.ID, nil
		}
	}
	return 0, fmt.Errorf("author %q vanished during seeding", author.Name)
}

// ensureCategories creates the sample categories that do not exist yet.
// Category names are not unique, so existing ones are matched by name.
func (s *seeder) ensureCategories(ctx context.Context) ([]uint, error) {
	existing, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uint, len(existing))
	for _, c := range existing {
		if _, ok := byName[c.CategoryName]; !ok {
			byName[c.CategoryName] = c.ID
		}
	}

	ids := make([]uint, 0, len(sampleCategories))
	for _, name := range sampleCategories {
		if id, ok := byName[name]; ok {
			s.skipped++
			ids = append(ids, id)
			continue
		}
		category := &entities.Category{CategoryName: name}
		if err := s.categories.Create(ctx, category); err != nil {
			return nil, fmt.Errorf("create category %q: %w", name, err)
		}
		s.record("category", category.CategoryName)
		ids = append(ids, category.ID)
	}
	return ids, nil
}

func (s *seeder) record(kind, name string) {
	s.created++
	if s.verbose {
		fmt.Fprintf(s.out, "  + %s: %s\n", kind, name)
	}
}
