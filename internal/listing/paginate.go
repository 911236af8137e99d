package listing

// DefaultPageSize is the number of items on one page.
const DefaultPageSize = 24

// Page is one window of a filtered collection.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	PageSize   int  `json:"page_size"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`

	// Reset is set when the requested page was past the end and page 1 was
	// returned instead.
	Reset bool `json:"reset,omitempty"`
}

// TotalPages returns ceil(n/size), or 0 for an empty collection.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (n + size - 1) / size
}

// Paginate returns page number page of items. Pages are 1-based. A page below
// 1 is clamped to 1 and a page past the last one resets to 1. An empty
// collection reports one page with navigation disabled.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(items), size)
	p := Page[T]{TotalItems: len(items), PageSize: size, TotalPages: max(total, 1)}

	switch {
	case page < 1:
		page = 1
	case page > p.TotalPages:
		page = 1
		p.Reset = true
	}
	p.Number = page

	start := (page - 1) * size
	end := min(start+size, len(items))
	p.Items = make([]T, 0, end-start)
	p.Items = append(p.Items, items[start:end]...)

	p.HasPrev = page > 1
	p.HasNext = page < total
	return p
}
