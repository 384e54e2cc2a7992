// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help contributors find
// extension points and see which concrete type backs each of them.
//
// # Interface Categories
//
// ## Catalog Store Interfaces
//
//   - AuthorStore: Author listing and CRUD (internal/http/authors.go)
//   - BookStore: Book listing with filters and CRUD (internal/http/books.go)
//   - CategoryStore: Category listing and CRUD (internal/http/categories.go)
//   - AuthorLister, CategoryLister: Add-book lookups (internal/http/books.go)
//
// All of them are implemented by the repositories under internal/database/.
//
// ## Audit Interfaces
//
//   - audit.Store: Persistence for audit events (internal/audit/service.go)
//   - AuditReader: Paginated audit trail for the API (internal/http/audit.go)
//
// ## Task Interfaces
//
//   - AuditEventCleaner: Deletes expired audit events (internal/tasks/cleanup_audit.go)
//   - MaintenanceLogger: Records task outcomes in the audit trail (internal/tasks/cleanup_audit.go)
//   - DanglingReferenceCounter: Finds books with missing references (internal/tasks/dangling_references.go)
//   - TaskClient: Enqueue and inspect tasks over HTTP (internal/http/tasks.go)
//   - TaskEnqueuer: Scheduled enqueueing (internal/scheduler/audit_cleanup.go)
//
// # Adding a New Catalog Resource
//
// To add a new resource (e.g., publishers):
//
//  1. Add the entity to internal/entities/ and to the AutoMigrate list in
//     internal/database/database.go
//
//  2. Create sub-package: internal/database/publishers/
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//     func (r *Repository) List(ctx context.Context, page query.Page) ([]entities.Publisher, int64, error)
//
//  3. Define the store interface and controller in internal/http/, then
//     register the routes in router.go
//
//  4. Add compile-time check:
//
//     var _ http.PublisherStore = (*publishers.Repository)(nil)
//
// # Adding a New Maintenance Task
//
//  1. Define the task type and its backlite.QueueConfig in internal/tasks/
//
//  2. Write a processor over a narrow interface and a NewXQueue constructor
//
//  3. Register the queue in entrypoint.go and expose it in internal/http/tasks.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
