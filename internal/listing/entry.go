// Package listing assembles the remote index into an in-memory collection and
// filters and paginates it.
package listing

import (
	"slices"
	"strings"
)

// Entry is one catalog item: the index name and reference URL plus the
// categories taken from its detail record.
type Entry struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	URL        string   `json:"url"`
	Categories []string `json:"categories"`

	// HydrationErr is set only by tolerant assembly, for an entry whose
	// detail fetch failed.
	HydrationErr error `json:"-"`
}

// Hydrated reports whether the entry's detail fetch succeeded.
func (e Entry) Hydrated() bool { return e.HydrationErr == nil }

// HasCategory reports whether category is among the entry's categories,
// ignoring case.
func (e Entry) HasCategory(category string) bool {
	return slices.ContainsFunc(e.Categories, func(c string) bool {
		return strings.EqualFold(c, category)
	})
}
