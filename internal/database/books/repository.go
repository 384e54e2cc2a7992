// Package books provides database operations for the book collection,
// including the filtered listing joined with author and category names.
package books

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

// Filter narrows the book listing. Empty fields impose no constraint;
// non-empty ones are case-insensitive substring matches, ANDed together.
type Filter struct {
	Title    string
	Category string
	Author   string
}

// Row is a book joined with the names of its author and category. The
// names are nil when the referenced row does not exist.
type Row struct {
	ID            uint      `gorm:"column:id"`
	Title         string    `gorm:"column:title"`
	ISBN          string    `gorm:"column:isbn"`
	PublishedDate time.Time `gorm:"column:published_date"`
	IsActive      bool      `gorm:"column:is_active"`
	CategoryID    uint      `gorm:"column:category_id"`
	AuthorID      uint      `gorm:"column:author_id"`
	CategoryName  *string   `gorm:"column:category_name"`
	AuthorName    *string   `gorm:"column:author_name"`
}

// Changes holds the fields an edit may overwrite. Author and category
// references cannot be changed.
type Changes struct {
	Title         string
	ISBN          string
	PublishedDate time.Time
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var rowColumns = []string{
	"books.id AS id",
	"books.title AS title",
	"books.isbn AS isbn",
	"books.published_date AS published_date",
	"books.is_active AS is_active",
	"books.category_id AS category_id",
	"books.author_id AS author_id",
	"categories.category_name AS category_name",
	"authors.name AS author_name",
}

func joined() squirrel.SelectBuilder {
	return query.Builder.Select().
		From("books").
		LeftJoin("categories ON categories.id = books.category_id").
		LeftJoin("authors ON authors.id = books.author_id")
}

// List returns one page of active books matching filter, newest published
// first, and the number of matching books overall.
func (r *Repository) List(ctx context.Context, filter Filter, page query.Page) ([]Row, int64, error) {
	base := joined().Where(squirrel.Eq{"books.is_active": true})
	if filter.Title != "" {
		base = base.Where(query.ContainsFold("books.title", filter.Title))
	}
	if filter.Category != "" {
		base = base.Where(query.ContainsFold("categories.category_name", filter.Category))
	}
	if filter.Author != "" {
		base = base.Where(query.ContainsFold("authors.name", filter.Author))
	}

	total, err := query.Count(ctx, r.db, base)
	if err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	// ID breaks ties between equal dates so pages never overlap.
	stmt := base.Columns(rowColumns...).OrderBy("books.published_date DESC", "books.id DESC")

	var rows []Row
	if err := query.Select(ctx, r.db, page.Apply(stmt), &rows); err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return rows, total, nil
}

// GetByID retrieves a book with joined names regardless of its active flag.
func (r *Repository) GetByID(ctx context.Context, id uint) (*Row, error) {
	var rows []Row
	stmt := joined().Columns(rowColumns...).Where(squirrel.Eq{"books.id": id})
	if err := query.Select(ctx, r.db, stmt, &rows); err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("book %d: %w", id, database.ErrNotFound)
	}
	return &rows[0], nil
}

// Create inserts a new active book. A duplicate ISBN yields
// database.ErrConflict; a missing author or category yields
// database.ErrInvalidReference.
func (r *Repository) Create(ctx context.Context, book *entities.Book) error {
	book.ID = 0
	book.IsActive = true
	book.Author = nil
	book.Category = nil
	err := r.db.WithContext(ctx).Create(book).Error
	return database.TranslateWriteError(err, "create book")
}

// Update overwrites title, ISBN and published date.
func (r *Repository) Update(ctx context.Context, id uint, changes Changes) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book %d: %w", id, database.ErrNotFound)
		}
		return nil, err
	}

	book.Title = changes.Title
	book.ISBN = changes.ISBN
	book.PublishedDate = changes.PublishedDate
	err := r.db.WithContext(ctx).Model(&book).Select("title", "isbn", "published_date").Updates(&book).Error
	if err != nil {
		return nil, database.TranslateWriteError(err, "update book")
	}
	return &book, nil
}

// Delete removes a book permanently.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return database.TranslateDeleteError(result.Error, "book")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, database.ErrNotFound)
	}
	return nil
}

// CountDangling counts books whose author or category row no longer exists.
func (r *Repository) CountDangling(ctx context.Context) (int64, error) {
	stmt := joined().Where(squirrel.Or{
		squirrel.Eq{"authors.id": nil},
		squirrel.Eq{"categories.id": nil},
	})
	total, err := query.Count(ctx, r.db, stmt)
	if err != nil {
		return 0, fmt.Errorf("count dangling books: %w", err)
	}
	return total, nil
}
