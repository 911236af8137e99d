package api

import (
	"github.com/joestump/dexview/internal/catalog"
	"github.com/joestump/dexview/internal/detail"
	"github.com/joestump/dexview/internal/listing"
)

// --- Listing types ---

// EntryResponse is one card in the listing.
type EntryResponse struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	ImageURL   string   `json:"image_url"`
	Categories []string `json:"categories"`
	Favorite   bool     `json:"favorite"`
}

// PageInfo describes the position of a page in the filtered collection.
type PageInfo struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	PageSize   int  `json:"page_size"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

func pageInfo[T any](p listing.Page[T]) PageInfo {
	return PageInfo{
		Page:       p.Number,
		TotalPages: p.TotalPages,
		TotalItems: p.TotalItems,
		PageSize:   p.PageSize,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
}

// ListingResponse is the response for GET /api/v1/pokemon.
type ListingResponse struct {
	Items    []EntryResponse `json:"items"`
	Search   string          `json:"q"`
	Category string          `json:"type"`
	PageInfo
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// CategoriesResponse is the response for GET /api/v1/types.
type CategoriesResponse struct {
	Categories []string `json:"types"`
	Error      string   `json:"error,omitempty"`
}

// RefreshResponse is the response for POST /api/v1/catalog/refresh.
type RefreshResponse struct {
	Loading bool `json:"loading"`
}

// --- Detail types ---

// StatResponse is one stat bar.
type StatResponse struct {
	Name    string  `json:"name"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
}

// DetailResponse is a full detail record as rendered by the detail view.
type DetailResponse struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	ImageURL   string         `json:"image_url"`
	Categories []string       `json:"categories"`
	Stats      []StatResponse `json:"stats"`
	Abilities  []string       `json:"abilities"`
	Favorite   bool           `json:"favorite"`
}

func toDetailResponse(d *catalog.Detail, favorite bool) DetailResponse {
	resp := DetailResponse{
		ID:         d.ID,
		Name:       d.Name,
		ImageURL:   d.Image(),
		Categories: d.Categories,
		Stats:      make([]StatResponse, 0, len(d.Stats)),
		Abilities:  d.Abilities,
		Favorite:   favorite,
	}
	for _, s := range d.Stats {
		resp.Stats = append(resp.Stats, StatResponse{Name: s.Name, Value: s.Value, Percent: s.Percent()})
	}
	return resp
}

// DetailStateResponse is the detail loader state.
type DetailStateResponse struct {
	Status   detail.Status   `json:"status"`
	ID       int             `json:"id,omitempty"`
	Token    string          `json:"token,omitempty"`
	Loading  bool            `json:"loading"`
	NotFound bool            `json:"not_found"`
	Record   *DetailResponse `json:"record,omitempty"`
}

// --- Favorites types ---

// FavoritesResponse lists the favorite IDs.
type FavoritesResponse struct {
	IDs []int `json:"ids"`
}

// ToggleResponse is the response for POST /api/v1/favorites/{id}/toggle.
type ToggleResponse struct {
	ID       int   `json:"id"`
	Favorite bool  `json:"favorite"`
	IDs      []int `json:"ids"`
}

// FavoritesPageResponse is the favorites view: full records of the stored IDs.
type FavoritesPageResponse struct {
	Items []DetailResponse `json:"items"`
	PageInfo
	Error string `json:"error,omitempty"`
}
