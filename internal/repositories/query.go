package repositories

import "strings"

// likePattern builds a case-insensitive substring pattern for use with
// `lower(col) LIKE ?`. Works identically on PostgreSQL and SQLite.
func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

// sortClause resolves a requested sort field against an allow-list of
// queryable columns. Unrecognized fields fall back to sorting by name and
// unrecognized orders fall back to ascending.
func sortClause(columns map[string]string, sortBy, sortOrder string) string {
	col, ok := columns[sortBy]
	if !ok {
		col = "name"
	}
	dir := "asc"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "desc"
	}
	return col + " " + dir
}

// normalizePage clamps page and limit to sane values (defaults 1 and 10).
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
