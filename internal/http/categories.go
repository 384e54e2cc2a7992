package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/database/categories"
	"github.com/mrlokans/library/internal/database/query"
	"github.com/mrlokans/library/internal/entities"
)

// CategoryStore defines the interface for category operations.
type CategoryStore interface {
	List(ctx context.Context, page query.Page) ([]entities.Category, int64, error)
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id uint) (*entities.Category, error)
	Update(ctx context.Context, id uint, changes categories.Changes) (*entities.Category, error)
	Delete(ctx context.Context, id uint) error
}

var categoryMessages = storeMessages{
	resource: "category",
	notFound: "Category not found.",
}

type CategoriesController struct {
	store           CategoryStore
	audit           *audit.Service
	defaultPageSize int
}

func NewCategoriesController(store CategoryStore, auditService *audit.Service, defaultPageSize int) *CategoriesController {
	return &CategoriesController{
		store:           store,
		audit:           auditService,
		defaultPageSize: defaultPageSize,
	}
}

// ListCategories handles GET /api/category/paginated-categories
func (cc *CategoriesController) ListCategories(c *gin.Context) {
	page, ok := parsePage(c, cc.defaultPageSize)
	if !ok {
		return
	}

	rows, total, err := cc.store.List(c.Request.Context(), page)
	if err != nil {
		respondStoreError(c, err, categoryMessages)
		return
	}

	c.JSON(http.StatusOK, CategoriesPage{
		Categories:  newCategoryResponses(rows),
		CurrentPage: page.Number,
		TotalPages:  page.TotalPages(total),
	})
}

// AddCategory handles POST /api/category/add
func (cc *CategoriesController) AddCategory(c *gin.Context) {
	var req AddCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category := &entities.Category{CategoryName: req.CategoryName}
	if err := cc.store.Create(c.Request.Context(), category); err != nil {
		respondStoreError(c, err, categoryMessages)
		return
	}

	cc.audit.LogCreate(c.Request.Context(), "category", category.ID, category.CategoryName)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Category added successfully.", ID: category.ID})
}

// GetCategory handles GET /api/category/:id
func (cc *CategoriesController) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, categoryMessages)
		return
	}

	c.JSON(http.StatusOK, newCategoryResponse(*category))
}

// EditCategory handles PUT /api/category/edit
func (cc *CategoriesController) EditCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := cc.store.Update(c.Request.Context(), req.ID, categories.Changes{
		CategoryName: req.CategoryName,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondStoreError(c, err, categoryMessages)
		return
	}

	cc.audit.LogUpdate(c.Request.Context(), "category", category.ID, category.CategoryName)
	respondSuccess(c, "Category updated successfully.")
}

// DeleteCategory handles DELETE /api/category/delete
// The identity is read from the request body.
func (cc *CategoriesController) DeleteCategory(c *gin.Context) {
	var req DeleteRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := cc.store.Delete(c.Request.Context(), req.ID); err != nil {
		respondStoreError(c, err, categoryMessages)
		return
	}

	cc.audit.LogDelete(c.Request.Context(), "category", req.ID, fmt.Sprintf("#%d", req.ID))
	respondSuccess(c, "Category deleted successfully.")
}
