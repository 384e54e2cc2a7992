package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/query"
	"github.com/mrlokans/library/internal/entities"
)

// AuthorStore defines the interface for author operations.
type AuthorStore interface {
	List(ctx context.Context, page query.Page) ([]authors.Row, int64, error)
	Create(ctx context.Context, author *entities.Author) error
	GetByID(ctx context.Context, id uint) (*entities.Author, error)
	Update(ctx context.Context, id uint, changes authors.Changes) (*entities.Author, error)
	Delete(ctx context.Context, id uint) error
}

const authorExists = "An author with this name already exists."

var authorMessages = storeMessages{
	resource: "author",
	notFound: "Author not found.",
	conflict: authorExists,
}

type AuthorsController struct {
	store           AuthorStore
	audit           *audit.Service
	defaultPageSize int
}

func NewAuthorsController(store AuthorStore, auditService *audit.Service, defaultPageSize int) *AuthorsController {
	return &AuthorsController{
		store:           store,
		audit:           auditService,
		defaultPageSize: defaultPageSize,
	}
}

// ListAuthors handles GET /api/author/paginated-authors
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	page, ok := parsePage(c, ac.defaultPageSize)
	if !ok {
		return
	}

	rows, total, err := ac.store.List(c.Request.Context(), page)
	if err != nil {
		respondStoreError(c, err, authorMessages)
		return
	}

	c.JSON(http.StatusOK, AuthorsPage{
		Authors:     newAuthorRows(rows),
		CurrentPage: page.Number,
		TotalPages:  page.TotalPages(total),
	})
}

// AddAuthor handles POST /api/author/add-author
func (ac *AuthorsController) AddAuthor(c *gin.Context) {
	var req AddAuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	author := &entities.Author{Name: req.Name, DateOfBirth: req.DateOfBirth.Time}
	if err := ac.store.Create(c.Request.Context(), author); err != nil {
		// Duplicate names on create are a validation failure, not a conflict.
		if errors.Is(err, database.ErrConflict) {
			respondBadRequest(c, authorExists)
			return
		}
		respondStoreError(c, err, authorMessages)
		return
	}

	ac.audit.LogCreate(c.Request.Context(), "author", author.ID, author.Name)
	respondCreated(c, fmt.Sprintf("/api/author/%d", author.ID), newAuthorResponse(author))
}

// GetAuthor handles GET /api/author/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, authorMessages)
		return
	}

	c.JSON(http.StatusOK, newAuthorResponse(author))
}

// EditAuthor handles PUT /api/author/edit
func (ac *AuthorsController) EditAuthor(c *gin.Context) {
	var req UpdateAuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	author, err := ac.store.Update(c.Request.Context(), req.ID, authors.Changes{
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth.Time,
	})
	if err != nil {
		respondStoreError(c, err, authorMessages)
		return
	}

	ac.audit.LogUpdate(c.Request.Context(), "author", author.ID, author.Name)
	c.JSON(http.StatusOK, newAuthorResponse(author))
}

// DeleteAuthor handles DELETE /api/author/delete/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ac.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, authorMessages)
		return
	}

	ac.audit.LogDelete(c.Request.Context(), "author", id, fmt.Sprintf("#%d", id))
	respondSuccess(c, "Author deleted successfully.")
}
