package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriverName is go-sqlite3 with a Unicode-aware lower(). The built-in
// one only folds ASCII, so "Élan" and "élan" would not match in listings.
const sqliteDriverName = "sqlite3_catalog"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

// unicodeLower lowers TEXT values and passes everything else through. NULL
// arrives as a nil byte slice and is returned as NULL.
func unicodeLower(v any) any {
	switch val := v.(type) {
	case string:
		return strings.ToLower(val)
	case []byte:
		if val == nil {
			return nil
		}
		return val
	default:
		return v
	}
}
