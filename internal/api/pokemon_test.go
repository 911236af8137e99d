package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/joestump/dexview/internal/api"
	"github.com/joestump/dexview/internal/testutil"
)

func TestPokemon_List_FirstPage(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())
	refresh(t, env)

	var resp api.ListingResponse
	rec := do(t, env, "GET", "/api/v1/pokemon", http.StatusOK, &resp)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(resp.Items))
	}
	if resp.Items[0].Name != "bulbasaur" || resp.Items[1].Name != "charmander" {
		t.Errorf("items = %v, want bulbasaur, charmander", resp.Items)
	}
	if resp.TotalPages != 3 || resp.TotalItems != 5 {
		t.Errorf("pages = %d/%d items, want 3/5", resp.TotalPages, resp.TotalItems)
	}
	if resp.HasPrev || !resp.HasNext {
		t.Errorf("has_prev=%v has_next=%v, want false/true", resp.HasPrev, resp.HasNext)
	}
	if resp.Loading || resp.Error != "" {
		t.Errorf("loading=%v error=%q, want false and empty", resp.Loading, resp.Error)
	}
	if resp.Items[0].ImageURL == "" {
		t.Error("image_url is empty")
	}
}

func TestPokemon_List_Filtered(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())
	refresh(t, env)

	var resp api.ListingResponse
	do(t, env, "GET", "/api/v1/pokemon?q=CHAR&type=fire", http.StatusOK, &resp)

	if resp.TotalItems != 2 || resp.TotalPages != 1 {
		t.Fatalf("total = %d items / %d pages, want 2/1", resp.TotalItems, resp.TotalPages)
	}
	if resp.Search != "CHAR" || resp.Category != "fire" {
		t.Errorf("echoed criteria = %q/%q", resp.Search, resp.Category)
	}
	for _, it := range resp.Items {
		if it.Categories[0] != "fire" {
			t.Errorf("%s has categories %v", it.Name, it.Categories)
		}
	}
}

func TestPokemon_List_PageOutOfRangeResets(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())
	refresh(t, env)

	var resp api.ListingResponse
	do(t, env, "GET", "/api/v1/pokemon?page=9", http.StatusOK, &resp)
	if resp.Page != 1 {
		t.Errorf("page = %d, want 1", resp.Page)
	}

	do(t, env, "GET", "/api/v1/pokemon?page=3", http.StatusOK, &resp)
	if resp.Page != 3 || len(resp.Items) != 1 || resp.HasNext {
		t.Errorf("last page = %d with %d items, has_next=%v", resp.Page, len(resp.Items), resp.HasNext)
	}
}

func TestPokemon_List_Empty(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())
	refresh(t, env)

	var resp api.ListingResponse
	do(t, env, "GET", "/api/v1/pokemon?q=mewtwo", http.StatusOK, &resp)
	if len(resp.Items) != 0 || resp.TotalPages != 1 || resp.HasNext || resp.HasPrev {
		t.Errorf("empty listing = %+v", resp)
	}
}

func TestPokemon_List_ReportsError(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())
	env.Remote.FailDetail(7, http.StatusInternalServerError)
	_ = env.Catalog.Refresh(t.Context())

	var resp api.ListingResponse
	do(t, env, "GET", "/api/v1/pokemon", http.StatusOK, &resp)
	if resp.Error == "" {
		t.Error("error is empty after a failed assembly")
	}
	if len(resp.Items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(resp.Items))
	}
}

func TestPokemon_List_FavoriteFlag(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())
	refresh(t, env)
	if _, err := env.Favorites.Toggle(t.Context(), 4); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	var resp api.ListingResponse
	do(t, env, "GET", "/api/v1/pokemon", http.StatusOK, &resp)
	if resp.Items[0].Favorite || !resp.Items[1].Favorite {
		t.Errorf("favorite flags = %v/%v, want false/true", resp.Items[0].Favorite, resp.Items[1].Favorite)
	}
}

func TestPokemon_Types(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())
	refresh(t, env)

	var resp api.CategoriesResponse
	do(t, env, "GET", "/api/v1/types", http.StatusOK, &resp)
	if len(resp.Categories) != len(testutil.StarterTypes()) {
		t.Errorf("types = %v", resp.Categories)
	}
}

func TestPokemon_Get(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())

	var resp api.DetailResponse
	do(t, env, "GET", "/api/v1/pokemon/25", http.StatusOK, &resp)
	if resp.Name != "pikachu" {
		t.Errorf("name = %q, want pikachu", resp.Name)
	}
	if len(resp.Stats) != 3 {
		t.Fatalf("len(stats) = %d, want 3", len(resp.Stats))
	}
	if resp.Stats[2].Name != "speed" || resp.Stats[2].Percent != 45 {
		t.Errorf("speed stat = %+v, want 90 -> 45%%", resp.Stats[2])
	}
}

func TestPokemon_Get_Placeholder(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())

	var resp api.DetailResponse
	do(t, env, "GET", "/api/v1/pokemon/5", http.StatusOK, &resp)
	if resp.ImageURL != "/placeholder.png" {
		t.Errorf("image_url = %q, want placeholder", resp.ImageURL)
	}
}

func TestPokemon_Get_NotFound(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())

	var resp api.ErrorResponse
	do(t, env, "GET", "/api/v1/pokemon/151", http.StatusNotFound, &resp)
	if resp.Code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", resp.Code)
	}
}

func TestPokemon_Get_BadID(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())
	do(t, env, "GET", "/api/v1/pokemon/pikachu", http.StatusBadRequest, nil)
}

func TestPokemon_Get_RemoteDown(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())
	env.Remote.FailDetail(1, http.StatusServiceUnavailable)

	var resp api.ErrorResponse
	do(t, env, "GET", "/api/v1/pokemon/1", http.StatusBadGateway, &resp)
	if resp.Code != "REMOTE_UNAVAILABLE" {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestCatalog_Refresh(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())

	var resp api.RefreshResponse
	do(t, env, "POST", "/api/v1/catalog/refresh", http.StatusAccepted, &resp)
	if !resp.Loading {
		t.Error("loading = false, want true")
	}

	deadline := time.Now().Add(2 * time.Second)
	for !env.Catalog.Snapshot().Ready() {
		if time.Now().After(deadline) {
			t.Fatal("catalog not refreshed")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if n := len(env.Catalog.Snapshot().Entries); n != 5 {
		t.Errorf("entries = %d, want 5", n)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())

	var info map[string]string
	do(t, env, "GET", "/health", http.StatusOK, &info)
	if info["version"] == "" {
		t.Errorf("health = %v, want a version", info)
	}

	rec := do(t, env, "GET", "/metrics", http.StatusOK, nil)
	if rec.Body.Len() == 0 {
		t.Error("metrics body is empty")
	}
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())
	var resp api.ErrorResponse
	do(t, env, "GET", "/api/v1/nope", http.StatusNotFound, &resp)
	if resp.Code != "NOT_FOUND" {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestPlaceholderImage(t *testing.T) {
	env := newTestEnv(t, testutil.Starters())

	rec := do(t, env, "GET", "/placeholder.png", http.StatusOK, nil)
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
}
