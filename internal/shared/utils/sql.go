package utils

import "strings"

// JoinWithAnd joins a slice of SQL conditions with AND
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins a slice of SQL conditions with OR
func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutralizes LIKE/ILIKE pattern metacharacters in user input
// so a filter value like "100%" matches literally instead of acting as a
// wildcard.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
