// Package query holds the pieces shared by every paginated listing: page
// arithmetic, case-insensitive substring predicates and the glue that runs
// squirrel-built statements through gorm.
//
// Statements are built with the "?" placeholder format. gorm rebinds the
// placeholders for the active dialect, so the same builder output runs on
// SQLite and PostgreSQL.
package query

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/database"
)

// Builder is the statement builder used by all repositories.
var Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Page is a one-based page request.
type Page struct {
	Number int
	Size   int
}

// NewPage validates a page request. Page numbers below one are accepted and
// behave like the first page; a non-positive size is an error.
func NewPage(number, size int) (Page, error) {
	if size <= 0 {
		return Page{}, fmt.Errorf("pageSize must be at least 1: %w", database.ErrInvalidArgument)
	}
	return Page{Number: number, Size: size}, nil
}

// Offset is the number of rows to skip, never negative. Offsets that do not
// fit in an int saturate at math.MaxInt, which still lands past the last row.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	skipped := p.Number - 1
	if skipped > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return skipped * p.Size
}

// TotalPages is ceil(total / size).
func (p Page) TotalPages(total int64) int {
	if p.Size <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.Size)))
}

// Apply adds LIMIT and OFFSET for the page.
func (p Page) Apply(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return b.Limit(uint64(p.Size)).Offset(uint64(p.Offset()))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern turns a search term into a substring LIKE pattern, escaping
// the LIKE wildcards so the term matches literally.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// ContainsFold matches rows whose column contains term, ignoring case. The
// term is lowered here with Unicode rules; the column relies on the store's
// LOWER, which the SQLite driver registered by the database package replaces
// with a Unicode-aware one.
func ContainsFold(column, term string) squirrel.Sqlizer {
	return squirrel.Expr("LOWER("+column+") LIKE ? ESCAPE '\\'", LikePattern(strings.ToLower(term)))
}

// Select runs b and scans every row into dest.
func Select(ctx context.Context, db *gorm.DB, b squirrel.SelectBuilder, dest any) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return db.WithContext(ctx).Raw(sql, args...).Scan(dest).Error
}

// Count runs SELECT COUNT(*) over the FROM, JOIN and WHERE parts of b.
// b must not carry ORDER BY, LIMIT or OFFSET.
func Count(ctx context.Context, db *gorm.DB, b squirrel.SelectBuilder) (int64, error) {
	sql, args, err := b.RemoveColumns().Columns("COUNT(*)").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var total int64
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
