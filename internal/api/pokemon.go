package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/dexview/internal/catalog"
	"github.com/joestump/dexview/internal/listing"
	"github.com/joestump/dexview/internal/store"
)

// pokemonAPIHandler serves the listing, the category vocabulary and direct
// detail pages.
type pokemonAPIHandler struct {
	catalog   *listing.Catalog
	favorites *store.FavoritesStore
	details   DetailSource
	pageSize  int
	log       *zap.Logger
}

func registerPokemonRoutes(r chi.Router, h *pokemonAPIHandler) {
	r.Get("/pokemon", h.List)
	r.Get("/pokemon/{id}", h.Get)
	r.Get("/types", h.Types)
	r.Post("/catalog/refresh", h.Refresh)
}

// List returns one page of the filtered catalog.
// GET /api/v1/pokemon?q=&type=&page=
//
// @Summary      List catalog entries
// @Tags         Pokemon
// @Produce      json
// @Param        q     query  string  false  "Name substring"
// @Param        type  query  string  false  "Category"
// @Param        page  query  int     false  "1-based page"
// @Success      200   {object}  ListingResponse
// @Router       /pokemon [get]
func (h *pokemonAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.catalog.Snapshot()

	v := listing.NewView(h.pageSize)
	v.SetSearch(r.URL.Query().Get("q"))
	v.SetCategory(r.URL.Query().Get("type"))
	v.GoTo(parsePage(r))
	page := v.Current(snap.Entries)

	resp := ListingResponse{
		Items:    make([]EntryResponse, 0, len(page.Items)),
		Search:   v.Search(),
		Category: v.Category(),
		PageInfo: pageInfo(page),
		Loading:  snap.Loading,
		Error:    errorString(snap.Err),
	}
	for _, e := range page.Items {
		resp.Items = append(resp.Items, EntryResponse{
			ID:         e.ID,
			Name:       e.Name,
			ImageURL:   catalog.ArtworkURL(e.ID),
			Categories: e.Categories,
			Favorite:   h.favorites.Contains(e.ID),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Types returns the category vocabulary for the filter control.
// GET /api/v1/types
func (h *pokemonAPIHandler) Types(w http.ResponseWriter, r *http.Request) {
	snap := h.catalog.Snapshot()
	writeJSON(w, http.StatusOK, CategoriesResponse{
		Categories: snap.Categories,
		Error:      errorString(snap.CategoriesErr),
	})
}

// Get fetches one detail record directly, bypassing the loader.
// GET /api/v1/pokemon/{id}
//
// @Summary      Get a detail record
// @Tags         Pokemon
// @Produce      json
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  DetailResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /pokemon/{id} [get]
func (h *pokemonAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	d, err := h.details.FetchDetailByID(r.Context(), id)
	if err != nil {
		h.log.Warn("fetch detail", zap.Int("id", id), zap.Error(err))
		writeRemoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDetailResponse(d, h.favorites.Contains(id)))
}

// Refresh re-fetches the index and re-assembles the catalog in the background.
// POST /api/v1/catalog/refresh
func (h *pokemonAPIHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.catalog.RefreshAsync(context.WithoutCancel(r.Context()))
	writeJSON(w, http.StatusAccepted, RefreshResponse{Loading: true})
}
