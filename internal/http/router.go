package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/config"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(gin.LoggerWithFormatter(accessLogFormat))
	router.Use(gin.Recovery())

	pageSize := cfg.DefaultPageSize
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")

	// Author endpoints
	if cfg.AuthorStore != nil {
		authorsController := NewAuthorsController(cfg.AuthorStore, cfg.AuditService, pageSize)
		author := api.Group("/author")
		author.GET("/paginated-authors", authorsController.ListAuthors)
		author.POST("/add-author", authorsController.AddAuthor)
		author.GET("/:id", authorsController.GetAuthor)
		author.PUT("/edit", authorsController.EditAuthor)
		author.DELETE("/delete/:id", authorsController.DeleteAuthor)
	}

	// Book endpoints
	if cfg.BookStore != nil {
		booksController := NewBooksController(cfg.BookStore, cfg.AuthorLister, cfg.CategoryLister, cfg.AuditService, pageSize)
		book := api.Group("/book")
		book.GET("/paginated-books", booksController.ListBooks)
		if cfg.AuthorLister != nil && cfg.CategoryLister != nil {
			book.GET("/add", booksController.GetLookups)
		}
		book.POST("/add", booksController.AddBook)
		book.GET("/:id", booksController.GetBook)
		book.POST("/edit", booksController.EditBook)
		book.POST("/delete", booksController.DeleteBook)
	}

	// Category endpoints
	if cfg.CategoryStore != nil {
		categoriesController := NewCategoriesController(cfg.CategoryStore, cfg.AuditService, pageSize)
		category := api.Group("/category")
		category.GET("/paginated-categories", categoriesController.ListCategories)
		category.POST("/add", categoriesController.AddCategory)
		category.GET("/:id", categoriesController.GetCategory)
		category.PUT("/edit", categoriesController.EditCategory)
		category.DELETE("/delete", categoriesController.DeleteCategory)
	}

	// Audit trail
	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader, pageSize)
		api.GET("/audit", auditController.GetAuditEvents)
	}

	// Task management endpoints
	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient, cfg.AuditRetentionDays)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
