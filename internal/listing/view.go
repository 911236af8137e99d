package listing

// View is the browsing state over a collection: the search text, the selected
// category and the current page. Changing the search or category returns to
// page 1.
type View struct {
	search   string
	category string
	page     int
	size     int
}

// NewView creates a View on page 1. size <= 0 uses DefaultPageSize.
func NewView(size int) *View {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &View{page: 1, size: size}
}

func (v *View) Search() string { return v.search }
func (v *View) Category() string { return v.category }
func (v *View) PageNumber() int { return v.page }

// SetSearch replaces the search text and returns to page 1.
func (v *View) SetSearch(s string) {
	v.search = s
	v.page = 1
}

// SetCategory selects a category ("" for all) and returns to page 1.
func (v *View) SetCategory(c string) {
	v.category = c
	v.page = 1
}

// GoTo moves to page n. Out-of-range pages are corrected by Current.
func (v *View) GoTo(n int) { v.page = n }

// Current filters entries and returns the current page, correcting the stored
// page when it was out of range.
func (v *View) Current(entries []Entry) Page[Entry] {
	p := Paginate(Filter(entries, v.search, v.category), v.page, v.size)
	v.page = p.Number
	return p
}

// NextPage advances one page when there is a next page and reports whether
// it moved.
func (v *View) NextPage(entries []Entry) bool {
	if !v.Current(entries).HasNext {
		return false
	}
	v.page++
	return true
}

// PrevPage goes back one page when not on the first and reports whether it
// moved.
func (v *View) PrevPage(entries []Entry) bool {
	if !v.Current(entries).HasPrev {
		return false
	}
	v.page--
	return true
}
