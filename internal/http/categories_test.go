package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesController_AddCategory(t *testing.T) {
	cat := setupCatalog(t)

	w := cat.do(t, "POST", "/api/category/add", map[string]any{"categoryName": "Fiction"})
	requireStatus(t, w, http.StatusOK)

	resp := decode[SuccessResponse](t, w)
	assert.Equal(t, "Category added successfully.", resp.Message)
	require.NotZero(t, resp.ID)

	w = cat.do(t, "GET", fmt.Sprintf("/api/category/%d", resp.ID), nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, CategoryResponse{ID: resp.ID, CategoryName: "Fiction", IsActive: true}, decode[CategoryResponse](t, w))

	// Names are not unique.
	w = cat.do(t, "POST", "/api/category/add", map[string]any{"categoryName": "Fiction"})
	requireStatus(t, w, http.StatusOK)

	w = cat.do(t, "POST", "/api/category/add", map[string]any{"categoryName": ""})
	requireStatus(t, w, http.StatusBadRequest)
	resp2 := decode[ErrorResponse](t, w)
	require.Len(t, resp2.Errors, 1)
	assert.Equal(t, "The categoryName field is required.", resp2.Errors[0].Message)
}

func TestCategoriesController_ListCategories(t *testing.T) {
	cat := setupCatalog(t)
	for i := 1; i <= 7; i++ {
		cat.addCategory(t, fmt.Sprintf("Category %d", i))
	}
	hidden := cat.addCategory(t, "Hidden")

	w := cat.do(t, "PUT", "/api/category/edit", map[string]any{
		"id":           hidden.ID,
		"categoryName": "Hidden",
		"isActive":     false,
	})
	requireStatus(t, w, http.StatusOK)

	w = cat.do(t, "GET", "/api/category/paginated-categories?page=2&pageSize=3", nil)
	requireStatus(t, w, http.StatusOK)

	page := decode[CategoriesPage](t, w)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Categories, 3)
	assert.Equal(t, "Category 4", page.Categories[0].CategoryName)
	assert.Equal(t, "Category 6", page.Categories[2].CategoryName)

	w = cat.do(t, "GET", "/api/category/paginated-categories?page=3&pageSize=3", nil)
	requireStatus(t, w, http.StatusOK)
	page = decode[CategoriesPage](t, w)
	require.Len(t, page.Categories, 1)
	assert.Equal(t, "Category 7", page.Categories[0].CategoryName)

	// Inactive categories can still be fetched directly.
	w = cat.do(t, "GET", fmt.Sprintf("/api/category/%d", hidden.ID), nil)
	requireStatus(t, w, http.StatusOK)
	assert.False(t, decode[CategoryResponse](t, w).IsActive)
}

func TestCategoriesController_EditCategory(t *testing.T) {
	cat := setupCatalog(t)
	fiction := cat.addCategory(t, "Fictoin")

	w := cat.do(t, "PUT", "/api/category/edit", map[string]any{
		"id":           fiction.ID,
		"categoryName": "Fiction",
		"isActive":     true,
	})
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "Category updated successfully.", decode[SuccessResponse](t, w).Message)

	stored, err := cat.categories.GetByID(t.Context(), fiction.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fiction", stored.CategoryName)
	assert.True(t, stored.IsActive)

	w = cat.do(t, "PUT", "/api/category/edit", map[string]any{
		"id":           999,
		"categoryName": "Nothing",
	})
	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Category not found.", decode[ErrorResponse](t, w).Message)
}

func TestCategoriesController_DeleteCategory(t *testing.T) {
	cat := setupCatalog(t)
	fiction := cat.addCategory(t, "Fiction")
	empty := cat.addCategory(t, "Empty")
	cat.addBook(t, "1984", "111", date(1949, 6, 8), cat.addAuthor(t, "George Orwell"), fiction)

	w := cat.do(t, "DELETE", "/api/category/delete", map[string]any{"id": empty.ID})
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "Category deleted successfully.", decode[SuccessResponse](t, w).Message)

	w = cat.do(t, "DELETE", "/api/category/delete", map[string]any{"id": fiction.ID})
	requireStatus(t, w, http.StatusConflict)
	assert.Equal(t, "Category is referenced by 1 book(s) and cannot be deleted.", decode[ErrorResponse](t, w).Message)

	w = cat.do(t, "DELETE", "/api/category/delete", map[string]any{"id": empty.ID})
	requireStatus(t, w, http.StatusNotFound)
}

func TestCategoriesController_GetCategory(t *testing.T) {
	cat := setupCatalog(t)

	w := cat.do(t, "GET", "/api/category/3", nil)
	requireStatus(t, w, http.StatusNotFound)

	w = cat.do(t, "GET", "/api/category/-3", nil)
	requireStatus(t, w, http.StatusBadRequest)
}
