package http

import (
	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Catalog stores
	AuthorStore   AuthorStore
	BookStore     BookStore
	CategoryStore CategoryStore

	// Lookup lists for the add-book form. Usually the author and category
	// stores themselves.
	AuthorLister   AuthorLister
	CategoryLister CategoryLister

	// Audit trail (optional)
	AuditService *audit.Service
	AuditReader  AuditReader

	// Task queue client (optional)
	TaskClient         TaskClient
	AuditRetentionDays int

	// Listing defaults
	DefaultPageSize int

	// Application info
	Version string
}
