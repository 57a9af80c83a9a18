package repository

import (
	"math"
	"strings"
)

// DefaultPageSize is used when a caller asks for a page size below one.
const DefaultPageSize = 10

// Page selects a 1-based page of a fixed size.
type Page struct {
	Number int
	Size   int
}

// NewPage normalises out-of-range input: pages start at 1 and sizes at
// DefaultPageSize.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset is the number of rows skipped before this page.  It is only
// meaningful when the page is not unreachable.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// unreachable reports whether the offset of p overflows an int.  No table
// holds that many rows, so such a page is past the end.
func (p Page) unreachable() bool { return p.Size > 0 && p.Number-1 > math.MaxInt/p.Size }

// likeEscape is the escape character declared in every LIKE clause.  A
// backslash would need different quoting in MySQL and SQLite.
const likeEscape = "!"

// containsPattern builds a lower-cased LIKE pattern matching term anywhere.
// Wildcards inside term are matched literally.
func containsPattern(term string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
