package listing

import "strings"

// Filter returns the entries whose name contains search (case-insensitive)
// and, when category is non-empty, that carry category. Order is preserved.
// An empty search and category return every entry.
func Filter(entries []Entry, search, category string) []Entry {
	search = strings.ToLower(search)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if search != "" && !strings.Contains(strings.ToLower(e.Name), search) {
			continue
		}
		if category != "" && !e.HasCategory(category) {
			continue
		}
		out = append(out, e)
	}
	return out
}
