// Package authors provides database operations for the author collection.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	rows, total, err := repo.List(ctx, page)
package authors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/query"
	"github.com/mrlokans/library/internal/entities"
)

// Row is one line of the author listing.
type Row struct {
	ID        uint   `gorm:"column:id"`
	Name      string `gorm:"column:name"`
	IsActive  bool   `gorm:"column:is_active"`
	BookCount int64  `gorm:"column:book_count"`
}

// Changes holds the fields an edit may overwrite.
type Changes struct {
	Name        string
	DateOfBirth time.Time
}

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// bookCounts is joined onto the listing to attach each author's number of
// books.
const bookCounts = "(SELECT author_id, COUNT(*) AS book_count FROM books GROUP BY author_id) bc ON bc.author_id = authors.id"

// List returns one page of active authors ordered by ID, and the number of
// active authors overall.
func (r *Repository) List(ctx context.Context, page query.Page) ([]Row, int64, error) {
	base := query.Builder.Select().From("authors").Where(squirrel.Eq{"authors.is_active": true})

	total, err := query.Count(ctx, r.db, base)
	if err != nil {
		return nil, 0, fmt.Errorf("count authors: %w", err)
	}

	stmt := base.
		Columns(
			"authors.id AS id",
			"authors.name AS name",
			"authors.is_active AS is_active",
			"COALESCE(bc.book_count, 0) AS book_count",
		).
		LeftJoin(bookCounts).
		OrderBy("authors.id ASC")

	var rows []Row
	if err := query.Select(ctx, r.db, page.Apply(stmt), &rows); err != nil {
		return nil, 0, fmt.Errorf("list authors: %w", err)
	}
	return rows, total, nil
}

// ListAll returns every author, active or not, with ID and name only.
func (r *Repository) ListAll(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).Select("id", "name").Order("id ASC").Find(&authors).Error
	return authors, err
}

// Create inserts a new active author. A name already in use yields
// database.ErrConflict.
func (r *Repository) Create(ctx context.Context, author *entities.Author) error {
	author.ID = 0
	author.IsActive = true
	err := r.db.WithContext(ctx).Create(author).Error
	return database.TranslateWriteError(err, "create author")
}

// GetByID retrieves an author regardless of its active flag.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("author %d: %w", id, database.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Update overwrites name and date of birth.
func (r *Repository) Update(ctx context.Context, id uint, changes Changes) (*entities.Author, error) {
	author, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author.Name = changes.Name
	author.DateOfBirth = changes.DateOfBirth
	err = r.db.WithContext(ctx).Model(author).Select("name", "date_of_birth").Updates(author).Error
	if err != nil {
		return nil, database.TranslateWriteError(err, "update author")
	}
	return author, nil
}

// Delete removes an author. Authors that still have books are kept and
// database.ErrConflict is returned.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author entities.Author
		if err := tx.First(&author, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("author %d: %w", id, database.ErrNotFound)
			}
			return err
		}

		var books int64
		if err := tx.Model(&entities.Book{}).Where("author_id = ?", id).Count(&books).Error; err != nil {
			return err
		}
		if books > 0 {
			return &database.ReferencedError{Entity: "author", ID: id, Books: books}
		}

		err := tx.Delete(&entities.Author{}, id).Error
		return database.TranslateDeleteError(err, "author")
	})
}
