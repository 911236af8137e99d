package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/dexview/internal/detail"
	"github.com/joestump/dexview/internal/store"
)

// detailAPIHandler drives the single detail loader shared by API clients.
type detailAPIHandler struct {
	loader    *detail.Loader
	favorites *store.FavoritesStore
}

func registerDetailRoutes(r chi.Router, h *detailAPIHandler) {
	r.Post("/detail/{id}", h.Open)
	r.Get("/detail", h.Get)
	r.Delete("/detail", h.Close)
}

// Open loads a detail record into the loader and returns the resulting state.
// A failed fetch is reported as status "not_found", not as an HTTP error.
// POST /api/v1/detail/{id}
func (h *detailAPIHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if _, err := h.loader.Open(r.Context(), id); errors.Is(err, detail.ErrSuperseded) {
		writeError(w, http.StatusConflict, "superseded by a newer open", "SUPERSEDED")
		return
	}
	writeJSON(w, http.StatusOK, h.state())
}

// Get returns the loader state.
// GET /api/v1/detail
func (h *detailAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state())
}

// Close discards the open record.
// DELETE /api/v1/detail
func (h *detailAPIHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.loader.Close()
	writeJSON(w, http.StatusOK, h.state())
}

func (h *detailAPIHandler) state() DetailStateResponse {
	st := h.loader.State()
	resp := DetailStateResponse{
		Status:   st.Status,
		ID:       st.ID,
		Token:    st.Token,
		Loading:  st.Loading(),
		NotFound: st.NotFound(),
	}
	if st.Record != nil {
		rec := toDetailResponse(st.Record, h.favorites.Contains(st.ID))
		resp.Record = &rec
	}
	return resp
}
