package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/query"
	"github.com/mrlokans/library/internal/entities"
)

// BookStore defines the interface for book operations.
type BookStore interface {
	List(ctx context.Context, filter books.Filter, page query.Page) ([]books.Row, int64, error)
	Create(ctx context.Context, book *entities.Book) error
	GetByID(ctx context.Context, id uint) (*books.Row, error)
	Update(ctx context.Context, id uint, changes books.Changes) (*entities.Book, error)
	Delete(ctx context.Context, id uint) error
}

// AuthorLister lists every author for the add-book form.
type AuthorLister interface {
	ListAll(ctx context.Context) ([]entities.Author, error)
}

// CategoryLister lists every category for the add-book form.
type CategoryLister interface {
	ListAll(ctx context.Context) ([]entities.Category, error)
}

var bookMessages = storeMessages{
	resource:   "book",
	notFound:   "Book not found.",
	conflict:   "A book with this ISBN already exists.",
	invalidRef: "The referenced author or category does not exist.",
}

type BooksController struct {
	store           BookStore
	authors         AuthorLister
	categories      CategoryLister
	audit           *audit.Service
	defaultPageSize int
}

func NewBooksController(store BookStore, authors AuthorLister, categories CategoryLister, auditService *audit.Service, defaultPageSize int) *BooksController {
	return &BooksController{
		store:           store,
		authors:         authors,
		categories:      categories,
		audit:           auditService,
		defaultPageSize: defaultPageSize,
	}
}

// ListBooks handles GET /api/book/paginated-books
func (bc *BooksController) ListBooks(c *gin.Context) {
	page, ok := parsePage(c, bc.defaultPageSize)
	if !ok {
		return
	}

	filter := books.Filter{
		Title:    c.Query("searchTitle"),
		Category: c.Query("searchCategory"),
		Author:   c.Query("searchAuthor"),
	}

	rows, total, err := bc.store.List(c.Request.Context(), filter, page)
	if err != nil {
		respondStoreError(c, err, bookMessages)
		return
	}

	c.JSON(http.StatusOK, BooksPage{
		Books:          newBookRows(rows),
		CurrentPage:    page.Number,
		TotalPages:     page.TotalPages(total),
		SearchTitle:    optionalQuery(c, "searchTitle"),
		SearchCategory: optionalQuery(c, "searchCategory"),
		SearchAuthor:   optionalQuery(c, "searchAuthor"),
	})
}

// GetLookups handles GET /api/book/add
// Returns the categories and authors a new book can reference.
func (bc *BooksController) GetLookups(c *gin.Context) {
	var (
		categories []entities.Category
		authors    []entities.Author
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		categories, err = bc.categories.ListAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		authors, err = bc.authors.ListAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondInternalError(c, err, "book lookups")
		return
	}

	c.JSON(http.StatusOK, LookupResponse{
		Categories: lo.Map(categories, func(cat entities.Category, _ int) CategoryOption {
			return CategoryOption{ID: cat.ID, CategoryName: cat.CategoryName}
		}),
		Authors: lo.Map(authors, func(a entities.Author, _ int) AuthorOption {
			return AuthorOption{ID: a.ID, Name: a.Name}
		}),
	})
}

// AddBook handles POST /api/book/add
func (bc *BooksController) AddBook(c *gin.Context) {
	var req AddBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book := &entities.Book{
		Title:         req.Title,
		ISBN:          req.ISBN,
		PublishedDate: req.PublishedDate.Time,
		CategoryID:    req.CategoriesID,
		AuthorID:      req.AuthorsID,
	}
	if err := bc.store.Create(c.Request.Context(), book); err != nil {
		respondStoreError(c, err, bookMessages)
		return
	}

	bc.audit.LogCreate(c.Request.Context(), "book", book.ID, book.Title)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Book added successfully.", ID: book.ID})
}

// GetBook handles GET /api/book/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	row, err := bc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, bookMessages)
		return
	}

	c.JSON(http.StatusOK, newBookDetails(row))
}

// EditBook handles POST /api/book/edit
func (bc *BooksController) EditBook(c *gin.Context) {
	var req UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := bc.store.Update(c.Request.Context(), req.ID, books.Changes{
		Title:         req.Title,
		ISBN:          req.ISBN,
		PublishedDate: req.PublishedDate.Time,
	})
	if err != nil {
		respondStoreError(c, err, bookMessages)
		return
	}

	bc.audit.LogUpdate(c.Request.Context(), "book", book.ID, book.Title)
	respondSuccess(c, "Book updated successfully.")
}

// DeleteBook handles POST /api/book/delete
func (bc *BooksController) DeleteBook(c *gin.Context) {
	var req DeleteRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := bc.store.Delete(c.Request.Context(), req.ID); err != nil {
		respondStoreError(c, err, bookMessages)
		return
	}

	bc.audit.LogDelete(c.Request.Context(), "book", req.ID, fmt.Sprintf("#%d", req.ID))
	respondSuccess(c, "Book deleted successfully.")
}
