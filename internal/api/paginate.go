package api

import (
	"net/http"
	"strconv"
)

// parsePage reads the 1-based page query parameter. A missing or malformed
// value means page 1; range checks happen in listing.Paginate.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

// parseID reads the {id} path parameter.
func parseID(w http.ResponseWriter, raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer", "BAD_REQUEST")
		return 0, false
	}
	return id, true
}
