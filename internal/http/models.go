package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
)

// Date is a calendar date in request and response bodies. It accepts
// "2006-01-02", RFC 3339 and "2006-01-02T15:04:05"; it is written as RFC 3339.
type Date struct {
	time.Time
}

// ParseDate parses the date formats accepted in request bodies. Values
// without a zone are taken as UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("date is empty")
	}
	t, err := cast.ToTimeE(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}

// --- Authors ---

type AddAuthorRequest struct {
	Name        string `json:"name" binding:"required,max=256"`
	DateOfBirth *Date  `json:"dateOfBirth" binding:"required"`
}

type UpdateAuthorRequest struct {
	ID          uint   `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required,max=256"`
	DateOfBirth *Date  `json:"dateOfBirth" binding:"required"`
}

type AuthorResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	DateOfBirth Date   `json:"dateOfBirth"`
	IsActive    bool   `json:"isActive"`
}

type AuthorRow struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	BookCount int64  `json:"bookCount"`
}

type AuthorsPage struct {
	Authors     []AuthorRow `json:"authors"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
}

func newAuthorResponse(a *entities.Author) AuthorResponse {
	return AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		DateOfBirth: Date{a.DateOfBirth},
		IsActive:    a.IsActive,
	}
}

func newAuthorRows(rows []authors.Row) []AuthorRow {
	return lo.Map(rows, func(r authors.Row, _ int) AuthorRow {
		return AuthorRow{ID: r.ID, Name: r.Name, IsActive: r.IsActive, BookCount: r.BookCount}
	})
}

// --- Books ---

type AddBookRequest struct {
	Title         string `json:"title" binding:"required,max=512"`
	ISBN          string `json:"isbn" binding:"required,max=20"`
	PublishedDate *Date  `json:"publishedDate" binding:"required"`
	CategoriesID  uint   `json:"categoriesId" binding:"required"`
	AuthorsID     uint   `json:"authorsId" binding:"required"`
}

type UpdateBookRequest struct {
	ID            uint   `json:"id" binding:"required"`
	Title         string `json:"title" binding:"required,max=512"`
	ISBN          string `json:"isbn" binding:"required,max=20"`
	PublishedDate *Date  `json:"publishedDate" binding:"required"`
}

// DeleteRequest carries the identity for body-addressed deletes.
type DeleteRequest struct {
	ID uint `json:"id" binding:"required"`
}

// BookRow is a book with its joined names. A name is null when the
// referenced author or category no longer exists.
type BookRow struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	ISBN          string  `json:"isbn"`
	PublishedDate Date    `json:"publishedDate"`
	CategoryName  *string `json:"categoryName"`
	AuthorName    *string `json:"authorName"`
}

type BookDetails struct {
	BookRow
	IsActive     bool `json:"isActive"`
	CategoriesID uint `json:"categoriesId"`
	AuthorsID    uint `json:"authorsId"`
}

type BooksPage struct {
	Books          []BookRow `json:"books"`
	CurrentPage    int       `json:"currentPage"`
	TotalPages     int       `json:"totalPages"`
	SearchTitle    *string   `json:"searchTitle"`
	SearchCategory *string   `json:"searchCategory"`
	SearchAuthor   *string   `json:"searchAuthor"`
}

type CategoryOption struct {
	ID           uint   `json:"id"`
	CategoryName string `json:"categoryName"`
}

type AuthorOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// LookupResponse lists every category and author a new book may reference.
type LookupResponse struct {
	Categories []CategoryOption `json:"categories"`
	Authors    []AuthorOption   `json:"authors"`
}

func newBookRow(r books.Row) BookRow {
	return BookRow{
		ID:            r.ID,
		Title:         r.Title,
		ISBN:          r.ISBN,
		PublishedDate: Date{r.PublishedDate},
		CategoryName:  r.CategoryName,
		AuthorName:    r.AuthorName,
	}
}

func newBookRows(rows []books.Row) []BookRow {
	return lo.Map(rows, func(r books.Row, _ int) BookRow {
		return newBookRow(r)
	})
}

func newBookDetails(r *books.Row) BookDetails {
	return BookDetails{
		BookRow:      newBookRow(*r),
		IsActive:     r.IsActive,
		CategoriesID: r.CategoryID,
		AuthorsID:    r.AuthorID,
	}
}

// --- Categories ---

type AddCategoryRequest struct {
	CategoryName string `json:"categoryName" binding:"required,max=256"`
}

type UpdateCategoryRequest struct {
	ID           uint   `json:"id" binding:"required"`
	CategoryName string `json:"categoryName" binding:"required,max=256"`
	IsActive     bool   `json:"isActive"`
}

type CategoryResponse struct {
	ID           uint   `json:"id"`
	CategoryName string `json:"categoryName"`
	IsActive     bool   `json:"isActive"`
}

type CategoriesPage struct {
	Categories  []CategoryResponse `json:"categories"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
}

func newCategoryResponse(c entities.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, CategoryName: c.CategoryName, IsActive: c.IsActive}
}

func newCategoryResponses(categories []entities.Category) []CategoryResponse {
	return lo.Map(categories, func(c entities.Category, _ int) CategoryResponse {
		return newCategoryResponse(c)
	})
}
