package store

import "strings"

// joinColumns renders a column list for RETURNING clauses.
func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

// orderBy translates an API ordering token ("title", "-created_at") into an
// ORDER BY expression, accepting only whitelisted columns. The bool result
// reports whether the token was accepted.
//
// A stable tiebreaker on the primary key is appended by the callers, not
// here, so paginated results never shuffle between pages.
func orderBy(token string, allowed map[string]string) (string, bool) {
	if token == "" {
		return "", false
	}

	direction := " ASC"
	if strings.HasPrefix(token, "-") {
		token = strings.TrimPrefix(token, "-")
		direction = " DESC"
	}

	column, ok := allowed[token]
	if !ok {
		return "", false
	}

	return column + direction, true
}
