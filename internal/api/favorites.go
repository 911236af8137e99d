package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/dexview/internal/detail"
	"github.com/joestump/dexview/internal/listing"
	"github.com/joestump/dexview/internal/store"
)

type favoritesAPIHandler struct {
	favorites *store.FavoritesStore
	details   DetailSource
	pageSize  int
	log       *zap.Logger
}

func registerFavoritesRoutes(r chi.Router, h *favoritesAPIHandler) {
	r.Get("/favorites", h.List)
	r.Post("/favorites/{id}/toggle", h.Toggle)
	r.Get("/favorites/pokemon", h.Pokemon)
}

// List returns the favorite IDs.
// GET /api/v1/favorites
func (h *favoritesAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FavoritesResponse{IDs: h.favorites.Snapshot().IDs()})
}

// Toggle adds or removes one favorite and returns the resulting set.
// POST /api/v1/favorites/{id}/toggle
//
// @Summary      Toggle a favorite
// @Tags         Favorites
// @Produce      json
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  ToggleResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /favorites/{id}/toggle [post]
func (h *favoritesAPIHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	set, err := h.favorites.Toggle(r.Context(), id)
	if err != nil {
		h.log.Error("toggle favorite", zap.Int("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save favorites", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{ID: id, Favorite: set.Contains(id), IDs: set.IDs()})
}

// Pokemon returns the favorites view: the full record of every favorite,
// paginated. One failed fetch fails the whole view.
// GET /api/v1/favorites/pokemon?page=
func (h *favoritesAPIHandler) Pokemon(w http.ResponseWriter, r *http.Request) {
	ids := h.favorites.Snapshot().IDs()

	records, err := detail.FetchMany(r.Context(), h.details, ids)
	if err != nil {
		h.log.Warn("fetch favorites", zap.Ints("ids", ids), zap.Error(err))
		page := listing.Paginate([]DetailResponse{}, 1, h.pageSize)
		writeJSON(w, http.StatusOK, FavoritesPageResponse{
			Items:    page.Items,
			PageInfo: pageInfo(page),
			Error:    "not found",
		})
		return
	}

	items := make([]DetailResponse, 0, len(records))
	for _, d := range records {
		items = append(items, toDetailResponse(d, true))
	}
	page := listing.Paginate(items, parsePage(r), h.pageSize)
	writeJSON(w, http.StatusOK, FavoritesPageResponse{Items: page.Items, PageInfo: pageInfo(page)})
}
