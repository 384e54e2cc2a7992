// Package categories provides database operations for the category collection.
package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/query"
	"github.com/mrlokans/library/internal/entities"
)

// Changes holds the fields an edit may overwrite.
type Changes struct {
	CategoryName string
	IsActive     bool
}

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of active categories ordered by ID, and the number
// of active categories overall.
func (r *Repository) List(ctx context.Context, page query.Page) ([]entities.Category, int64, error) {
	base := query.Builder.Select().From("categories").Where(squirrel.Eq{"categories.is_active": true})

	total, err := query.Count(ctx, r.db, base)
	if err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	stmt := base.Columns("categories.id AS id", "categories.category_name AS category_name", "categories.is_active AS is_active").
		OrderBy("categories.id ASC")

	var categories []entities.Category
	if err := query.Select(ctx, r.db, page.Apply(stmt), &categories); err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	return categories, total, nil
}

// ListAll returns every category, active or not, with ID and name only.
func (r *Repository) ListAll(ctx context.Context) ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.WithContext(ctx).Select("id", "category_name").Order("id ASC").Find(&categories).Error
	return categories, err
}

// Create inserts a new active category.
func (r *Repository) Create(ctx context.Context, category *entities.Category) error {
	category.ID = 0
	category.IsActive = true
	err := r.db.WithContext(ctx).Create(category).Error
	return database.TranslateWriteError(err, "create category")
}

// GetByID retrieves a category regardless of its active flag.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Category, error) {
	var category entities.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("category %d: %w", id, database.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Update overwrites name and active flag.
func (r *Repository) Update(ctx context.Context, id uint, changes Changes) (*entities.Category, error) {
	category, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.CategoryName = changes.CategoryName
	category.IsActive = changes.IsActive
	err = r.db.WithContext(ctx).Model(category).Select("category_name", "is_active").Updates(category).Error
	if err != nil {
		return nil, database.TranslateWriteError(err, "update category")
	}
	return category, nil
}

// Delete removes a category. Categories that still have books are kept
// and database.ErrConflict is returned.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category entities.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("category %d: %w", id, database.ErrNotFound)
			}
			return err
		}

		var books int64
		if err := tx.Model(&entities.Book{}).Where("category_id = ?", id).Count(&books).Error; err != nil {
			return err
		}
		if books > 0 {
			return &database.ReferencedError{Entity: "category", ID: id, Books: books}
		}

		err := tx.Delete(&entities.Category{}, id).Error
		return database.TranslateDeleteError(err, "category")
	})
}
