package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joestump/dexview/internal/api"
	"github.com/joestump/dexview/internal/catalog"
	"github.com/joestump/dexview/internal/detail"
	"github.com/joestump/dexview/internal/listing"
	"github.com/joestump/dexview/internal/store"
	"github.com/joestump/dexview/internal/testutil"
)

// testEnv holds the router and its collaborators for API integration tests.
type testEnv struct {
	Router    http.Handler
	Remote    *testutil.Remote
	Catalog   *listing.Catalog
	Favorites *store.FavoritesStore
	Loader    *detail.Loader
}

// newTestEnv wires the full router against a fake remote and an in-memory
// SQLite favorites store. The catalog is not refreshed.
func newTestEnv(t *testing.T, pokemon []testutil.Pokemon) *testEnv {
	t.Helper()
	rm := testutil.NewRemote(t, pokemon, testutil.StarterTypes())
	client := catalog.New(catalog.Options{BaseURL: rm.BaseURL(), Timeout: 5 * time.Second, Backoff: time.Millisecond})

	favs := store.NewFavoritesStore(store.NewKVStore(testutil.NewTestDB(t)), nil)
	favs.Load(context.Background())

	cat := listing.NewCatalog(client, listing.NewAggregator(client, 4, nil), listing.CatalogOptions{}, nil)
	loader := detail.NewLoader(client, nil)

	router := api.NewRouter(api.Deps{
		Catalog:   cat,
		Favorites: favs,
		Loader:    loader,
		Details:   client,
		PageSize:  2,
	})
	return &testEnv{Router: router, Remote: rm, Catalog: cat, Favorites: favs, Loader: loader}
}

// refresh assembles the catalog and fails the test on error.
func refresh(t *testing.T, env *testEnv) {
	t.Helper()
	if err := env.Catalog.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
}

// do serves one request and decodes the JSON body into out when non-nil.
func do(t *testing.T, env *testEnv, method, target string, wantStatus int, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != wantStatus {
		t.Fatalf("%s %s: status = %d, want %d; body: %s", method, target, rec.Code, wantStatus, rec.Body.String())
	}
	if out != nil {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec
}
