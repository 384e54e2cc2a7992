// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup for SQLite or PostgreSQL, migrations
//	├── errors.go        # Repository errors and driver error translation
//	├── query/           # Pagination and squirrel/gorm glue shared by listings
//	├── authors/         # Author listing and CRUD
//	├── books/           # Book listing with joined names, filters and CRUD
//	├── categories/      # Category listing and CRUD
//	└── audit/           # Audit trail of catalog changes
//
// # Using Sub-packages
//
//	db, err := database.Open(cfg.Database)
//
//	authorsRepo := authors.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	page, err := query.NewPage(1, 10)
//	rows, total, err := booksRepo.List(ctx, books.Filter{Author: "orwell"}, page)
//
// # Errors
//
// Repositories wrap ErrNotFound, ErrConflict, ErrInvalidArgument and
// ErrInvalidReference. Uniqueness of author names and ISBNs is enforced by
// unique indexes, so a concurrent duplicate insert still fails with
// ErrConflict.
//
// # Interface Implementations
//
//   - authors.Repository: implements http.AuthorStore
//   - books.Repository: implements http.BookStore
//   - categories.Repository: implements http.CategoryStore
//   - audit.Repository: implements audit.Store and tasks.AuditCleaner
package database
