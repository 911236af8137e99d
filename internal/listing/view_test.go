package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func many(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		cat := "water"
		if i%2 == 0 {
			cat = "fire"
		}
		out[i] = Entry{ID: i + 1, Name: "mon", Categories: []string{cat}}
	}
	return out
}

func TestView_Navigation(t *testing.T) {
	entries := many(50)
	v := NewView(24)

	assert.False(t, v.PrevPage(entries), "prev on first page")
	assert.Equal(t, 1, v.PageNumber())

	assert.True(t, v.NextPage(entries))
	assert.True(t, v.NextPage(entries))
	assert.Equal(t, 3, v.PageNumber())
	assert.False(t, v.NextPage(entries), "next on last page")
	assert.Equal(t, 3, v.PageNumber())

	assert.True(t, v.PrevPage(entries))
	assert.Equal(t, 2, v.PageNumber())
}

func TestView_CriteriaResetPage(t *testing.T) {
	entries := many(50)
	v := NewView(24)
	v.GoTo(2)

	v.SetSearch("mon")
	assert.Equal(t, 1, v.PageNumber())

	v.GoTo(2)
	v.SetCategory("fire")
	assert.Equal(t, 1, v.PageNumber())

	p := v.Current(entries)
	assert.Equal(t, 25, p.TotalItems)
	assert.Equal(t, 2, p.TotalPages)
}

func TestView_CurrentCorrectsStalePage(t *testing.T) {
	v := NewView(24)
	v.GoTo(3)

	p := v.Current(many(10))
	assert.True(t, p.Reset)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, v.PageNumber())
}

func TestView_EmptyCollection(t *testing.T) {
	v := NewView(24)
	p := v.Current(nil)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
	assert.False(t, v.NextPage(nil))
}
