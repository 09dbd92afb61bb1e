package store

import "strings"

// joinColumns renders a column list for a RETURNING clause.
func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

// prefixColumns qualifies every column with a table alias, for queries
// that join multiple tables.
func prefixColumns(alias string, columns []string) []string {
	prefixed := make([]string, len(columns))
	for i, column := range columns {
		prefixed[i] = alias + "." + column
	}
	return prefixed
}
