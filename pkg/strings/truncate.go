// Package strings holds small text helpers shared by the console client,
// the reconciler logs and the table printers.
package strings

import (
	"strconv"
	"strings"
)

// DefaultMaxLen is the column width used for free text in tables.
const DefaultMaxLen = 60

// MinTruncateLen is the smallest maxLen Truncate honours. Anything smaller
// leaves no room for content plus "...".
const MinTruncateLen = 4

// Truncate collapses all whitespace in s into single spaces and shortens the
// result to maxLen runes, ending it with "..." when something was cut.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// JoinLimited joins items with ", " and, when there are more than limit
// items, replaces the tail with a "(+N more)" suffix. A limit below one
// keeps every item.
func JoinLimited(items []string, limit int) string {
	if limit < 1 || len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:limit], ", ") + ", (+" + strconv.Itoa(len(items)-limit) + " more)"
}
