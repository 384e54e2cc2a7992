package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/library/internal/audit"
	auditRepo "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/categories"
	"github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/tasks"
)

// =============================================================================
// Catalog Stores
// =============================================================================

var _ http.AuthorStore = (*authors.Repository)(nil)
var _ http.BookStore = (*books.Repository)(nil)
var _ http.CategoryStore = (*categories.Repository)(nil)

// Add-book lookups
var _ http.AuthorLister = (*authors.Repository)(nil)
var _ http.CategoryLister = (*categories.Repository)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ audit.Store = (*auditRepo.Repository)(nil)
var _ http.AuditReader = (*audit.Service)(nil)

// =============================================================================
// Background Maintenance
// =============================================================================

var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ tasks.MaintenanceLogger = (*audit.Service)(nil)
var _ tasks.DanglingReferenceCounter = (*books.Repository)(nil)

// Task queue client
var _ http.TaskClient = (*tasks.Client)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)
