package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Pokemon is one item served by the fake remote.
type Pokemon struct {
	ID        int
	Name      string
	Types     []string
	Abilities []string
	Stats     map[string]int
	Artwork   string // empty means front_default is null
}

// Remote is an httptest server speaking the remote catalog's JSON shapes
// under /api/v2. Failures and delays can be injected per item.
type Remote struct {
	Server *httptest.Server

	mu        sync.Mutex
	pokemon   []Pokemon
	types     []string
	failIndex int
	failTypes int
	fail      map[int]int
	flaky     map[int]int
	delay     map[int]time.Duration
	hits      map[string]int
}

// NewRemote starts a fake remote serving pokemon (in index order) and types.
func NewRemote(t *testing.T, pokemon []Pokemon, types []string) *Remote {
	t.Helper()
	rm := &Remote{
		pokemon: pokemon,
		types:   types,
		fail:    map[int]int{},
		flaky:   map[int]int{},
		delay:   map[int]time.Duration{},
		hits:    map[string]int{},
	}

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(rm.count)
	r.Get("/api/v2/pokemon", rm.index)
	r.Get("/api/v2/pokemon/{id}", rm.detail)
	r.Get("/api/v2/type", rm.typeList)

	rm.Server = httptest.NewServer(r)
	t.Cleanup(rm.Server.Close)
	return rm
}

// BaseURL is the value to configure as the client's base URL.
func (rm *Remote) BaseURL() string { return rm.Server.URL + "/api/v2" }

// DetailURL is the reference URL the index hands out for id.
func (rm *Remote) DetailURL(id int) string {
	return fmt.Sprintf("%s/pokemon/%d/", rm.BaseURL(), id)
}

// FailDetail makes every detail request for id answer with status.
func (rm *Remote) FailDetail(id, status int) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.fail[id] = status
}

// FlakyDetail makes the next n detail requests for id answer 503.
func (rm *Remote) FlakyDetail(id, n int) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.flaky[id] = n
}

// DelayDetail holds detail responses for id for d, or until the client gives up.
func (rm *Remote) DelayDetail(id int, d time.Duration) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.delay[id] = d
}

// FailIndex makes index requests answer with status; 0 restores them.
func (rm *Remote) FailIndex(status int) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.failIndex = status
}

// FailTypes makes type-list requests answer with status; 0 restores them.
func (rm *Remote) FailTypes(status int) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.failTypes = status
}

// Hits returns how many requests reached path (without trailing slash).
func (rm *Remote) Hits(path string) int {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.hits[path]
}

func (rm *Remote) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rm.mu.Lock()
		rm.hits[strings.TrimSuffix(r.URL.Path, "/")]++
		rm.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (rm *Remote) index(w http.ResponseWriter, r *http.Request) {
	rm.mu.Lock()
	status := rm.failIndex
	rm.mu.Unlock()
	if status != 0 {
		http.Error(w, "index unavailable", status)
		return
	}

	limit, offset := len(rm.pokemon), 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		offset = v
	}

	results := []map[string]string{}
	for i := offset; i < len(rm.pokemon) && i < offset+limit; i++ {
		p := rm.pokemon[i]
		results = append(results, map[string]string{"name": p.Name, "url": rm.DetailURL(p.ID)})
	}
	writeJSON(w, map[string]any{"count": len(rm.pokemon), "next": nil, "results": results})
}

func (rm *Remote) typeList(w http.ResponseWriter, r *http.Request) {
	rm.mu.Lock()
	status := rm.failTypes
	rm.mu.Unlock()
	if status != 0 {
		http.Error(w, "types unavailable", status)
		return
	}

	results := []map[string]string{}
	for i, name := range rm.types {
		results = append(results, map[string]string{
			"name": name,
			"url":  fmt.Sprintf("%s/type/%d/", rm.BaseURL(), i+1),
		})
	}
	writeJSON(w, map[string]any{"count": len(rm.types), "next": nil, "results": results})
}

func (rm *Remote) detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	rm.mu.Lock()
	status := rm.fail[id]
	delay := rm.delay[id]
	if rm.flaky[id] > 0 {
		rm.flaky[id]--
		status = http.StatusServiceUnavailable
	}
	rm.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if status != 0 {
		http.Error(w, "detail unavailable", status)
		return
	}

	for _, p := range rm.pokemon {
		if p.ID == id {
			writeJSON(w, detailJSON(p))
			return
		}
	}
	http.Error(w, "Not Found", http.StatusNotFound)
}

func detailJSON(p Pokemon) map[string]any {
	var artwork any
	if p.Artwork != "" {
		artwork = p.Artwork
	}
	types := []map[string]any{}
	for i, t := range p.Types {
		types = append(types, map[string]any{"slot": i + 1, "type": map[string]string{"name": t, "url": ""}})
	}
	abilities := []map[string]any{}
	for _, a := range p.Abilities {
		abilities = append(abilities, map[string]any{"ability": map[string]string{"name": a, "url": ""}, "is_hidden": false})
	}
	stats := []map[string]any{}
	for _, name := range []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"} {
		if v, ok := p.Stats[name]; ok {
			stats = append(stats, map[string]any{"base_stat": v, "effort": 0, "stat": map[string]string{"name": name, "url": ""}})
		}
	}
	return map[string]any{
		"id":     p.ID,
		"name":   p.Name,
		"height": 7,
		"sprites": map[string]any{
			"front_default": nil,
			"other": map[string]any{
				"official-artwork": map[string]any{"front_default": artwork, "front_shiny": nil},
				"home":             map[string]any{"front_default": nil},
			},
		},
		"types":     types,
		"stats":     stats,
		"abilities": abilities,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Starters is a small fixed catalog used across tests.
func Starters() []Pokemon {
	return []Pokemon{
		{ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"}, Abilities: []string{"overgrow", "chlorophyll"},
			Stats: map[string]int{"hp": 45, "attack": 49}, Artwork: "https://img.example/1.png"},
		{ID: 4, Name: "charmander", Types: []string{"fire"}, Abilities: []string{"blaze"},
			Stats: map[string]int{"hp": 39, "attack": 52}, Artwork: "https://img.example/4.png"},
		{ID: 5, Name: "charmeleon", Types: []string{"fire"}, Abilities: []string{"blaze"},
			Stats: map[string]int{"hp": 58, "attack": 64}},
		{ID: 7, Name: "squirtle", Types: []string{"water"}, Abilities: []string{"torrent"},
			Stats: map[string]int{"hp": 44, "attack": 48}, Artwork: "https://img.example/7.png"},
		{ID: 25, Name: "pikachu", Types: []string{"electric"}, Abilities: []string{"static"},
			Stats: map[string]int{"hp": 35, "attack": 55, "speed": 90}, Artwork: "https://img.example/25.png"},
	}
}

// StarterTypes is the type vocabulary matching Starters.
func StarterTypes() []string {
	return []string{"normal", "fire", "water", "grass", "electric", "poison"}
}
