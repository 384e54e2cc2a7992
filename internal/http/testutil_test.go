package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/database"
	auditRepo "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/categories"
	"github.com/mrlokans/library/internal/entities"
)

// catalog is a router backed by a real SQLite database.
type catalog struct {
	db         *database.Database
	router     *gin.Engine
	audit      *audit.Service
	authors    *authors.Repository
	books      *books.Repository
	categories *categories.Repository
}

func setupCatalog(t *testing.T) *catalog {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)

	cat := &catalog{
		db:         db,
		audit:      audit.NewService(auditRepo.NewRepository(db.DB)),
		authors:    authors.NewRepository(db.DB),
		books:      books.NewRepository(db.DB),
		categories: categories.NewRepository(db.DB),
	}
	t.Cleanup(func() {
		cat.audit.Wait()
		db.Close()
	})

	cat.router = NewRouter(RouterConfig{
		Database:        db,
		AuthorStore:     cat.authors,
		BookStore:       cat.books,
		CategoryStore:   cat.categories,
		AuthorLister:    cat.authors,
		CategoryLister:  cat.categories,
		AuditService:    cat.audit,
		AuditReader:     cat.audit,
		DefaultPageSize: 10,
		Version:         "test",
	})
	return cat
}

func (cat *catalog) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	cat.router.ServeHTTP(w, req)
	return w
}

func (cat *catalog) addAuthor(t *testing.T, name string) *entities.Author {
	t.Helper()
	author := &entities.Author{Name: name, DateOfBirth: time.Date(1903, 6, 25, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, cat.authors.Create(context.Background(), author))
	return author
}

func (cat *catalog) addCategory(t *testing.T, name string) *entities.Category {
	t.Helper()
	category := &entities.Category{CategoryName: name}
	require.NoError(t, cat.categories.Create(context.Background(), category))
	return category
}

func (cat *catalog) addBook(t *testing.T, title, isbn string, published time.Time, author *entities.Author, category *entities.Category) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:         title,
		ISBN:          isbn,
		PublishedDate: published,
		AuthorID:      author.ID,
		CategoryID:    category.ID,
	}
	require.NoError(t, cat.books.Create(context.Background(), book))
	return book
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}

