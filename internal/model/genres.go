package model

import "strings"

// JoinGenres serialises a genre list into the stored space-delimited form.
// Entries are trimmed and empty ones dropped.  Multi-word genres lose their
// boundaries; the storage format cannot represent them.
func JoinGenres(genres []string) string {
	parts := make([]string, 0, len(genres))
	for _, g := range genres {
		parts = append(parts, strings.Fields(g)...)
	}
	return strings.Join(parts, " ")
}

// SplitGenres turns the stored string back into a list.  It never returns nil
// so JSON output is always an array.
func SplitGenres(s string) []string {
	f := strings.Fields(s)
	if f == nil {
		return []string{}
	}
	return f
}
