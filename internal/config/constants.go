package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./library.db"

	// DefaultPageSize is used by listings when the request omits pageSize
	DefaultPageSize = 10
)
