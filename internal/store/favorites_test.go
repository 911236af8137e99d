package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/joestump/dexview/internal/store"
	"github.com/joestump/dexview/internal/testutil"
)

// memKV is an in-memory KV that can be told to fail writes.
type memKV struct {
	mu      sync.Mutex
	data    map[string]string
	failPut bool
	puts    int
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errors.New("disk full")
	}
	m.puts++
	m.data[key] = value
	return nil
}

func TestFavorites_Load_Absent(t *testing.T) {
	fs := store.NewFavoritesStore(newMemKV(), nil)

	got := fs.Load(context.Background())
	if got.Len() != 0 {
		t.Errorf("Len = %d, want 0", got.Len())
	}
}

func TestFavorites_Load_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "definitely not json"},
		{name: "object", raw: `{"ids":[1,2]}`},
		{name: "strings", raw: `["1","2"]`},
		{name: "floats", raw: `[1.5]`},
		{name: "truncated", raw: `[1,2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMemKV()
			kv.data[store.FavoritesKey] = tt.raw
			fs := store.NewFavoritesStore(kv, nil)

			got := fs.Load(context.Background())
			if got.Len() != 0 {
				t.Errorf("Len = %d, want 0", got.Len())
			}
			if fs.Contains(1) {
				t.Error("Contains(1) = true after malformed load")
			}
		})
	}
}

func TestFavorites_Load_Duplicates(t *testing.T) {
	kv := newMemKV()
	kv.data[store.FavoritesKey] = "[7,7,3]"
	fs := store.NewFavoritesStore(kv, nil)

	got := fs.Load(context.Background())
	if !got.Equal(store.NewFavoriteSet(3, 7)) {
		t.Errorf("set = %v, want {3,7}", got.IDs())
	}
}

func TestFavorites_Toggle_Scenario(t *testing.T) {
	kv := newMemKV()
	fs := store.NewFavoritesStore(kv, nil)
	ctx := context.Background()
	fs.Load(ctx)

	set, err := fs.Toggle(ctx, 25)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !set.Equal(store.NewFavoriteSet(25)) {
		t.Errorf("after first toggle = %v, want {25}", set.IDs())
	}
	if kv.data[store.FavoritesKey] != "[25]" {
		t.Errorf("persisted = %q, want %q", kv.data[store.FavoritesKey], "[25]")
	}

	set, err = fs.Toggle(ctx, 25)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("after second toggle = %v, want {}", set.IDs())
	}
	if kv.data[store.FavoritesKey] != "[]" {
		t.Errorf("persisted = %q, want %q", kv.data[store.FavoritesKey], "[]")
	}
	if kv.puts != 2 {
		t.Errorf("puts = %d, want 2 (write-through on every toggle)", kv.puts)
	}
}

func TestFavorites_Toggle_Idempotent(t *testing.T) {
	ctx := context.Background()
	start := store.NewFavoriteSet(1, 4, 7)

	for _, id := range []int{1, 4, 99, 0, -3} {
		fs := store.NewFavoritesStore(newMemKV(), nil)
		if err := fs.Replace(ctx, start); err != nil {
			t.Fatalf("Replace: %v", err)
		}
		if _, err := fs.Toggle(ctx, id); err != nil {
			t.Fatalf("Toggle(%d): %v", id, err)
		}
		got, err := fs.Toggle(ctx, id)
		if err != nil {
			t.Fatalf("Toggle(%d): %v", id, err)
		}
		if !got.Equal(start) {
			t.Errorf("toggle(%d) twice = %v, want %v", id, got.IDs(), start.IDs())
		}
	}
}

func TestFavorites_Toggle_PersistFailure(t *testing.T) {
	kv := newMemKV()
	fs := store.NewFavoritesStore(kv, nil)
	ctx := context.Background()
	fs.Load(ctx)
	if _, err := fs.Toggle(ctx, 1); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	kv.failPut = true
	set, err := fs.Toggle(ctx, 2)
	if err == nil {
		t.Fatal("expected error from failing persist")
	}
	if !set.Equal(store.NewFavoriteSet(1)) {
		t.Errorf("set = %v, want {1} unchanged", set.IDs())
	}
	if fs.Contains(2) {
		t.Error("Contains(2) = true after failed persist")
	}
}

func TestFavorites_RoundTrip_SQL(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	sets := []store.FavoriteSet{
		store.NewFavoriteSet(),
		store.NewFavoriteSet(25),
		store.NewFavoriteSet(1, 4, 7, 150, 1025),
	}
	for _, want := range sets {
		writer := store.NewFavoritesStore(store.NewKVStore(db), nil)
		if err := writer.Replace(ctx, want); err != nil {
			t.Fatalf("Replace: %v", err)
		}

		reader := store.NewFavoritesStore(store.NewKVStore(db), nil)
		got := reader.Load(ctx)
		if !got.Equal(want) {
			t.Errorf("load(persist(%v)) = %v", want.IDs(), got.IDs())
		}
	}
}

func TestFavorites_ConcurrentToggles(t *testing.T) {
	fs := store.NewFavoritesStore(newMemKV(), nil)
	ctx := context.Background()
	fs.Load(ctx)

	var wg sync.WaitGroup
	for id := 1; id <= 50; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := fs.Toggle(ctx, id); err != nil {
				t.Errorf("Toggle(%d): %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	if got := fs.Snapshot().Len(); got != 50 {
		t.Errorf("Len = %d, want 50", got)
	}
}

func TestFavoriteSet_JSON(t *testing.T) {
	b, err := store.NewFavoriteSet().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(b) != "[]" {
		t.Errorf("empty set = %s, want []", b)
	}

	var s store.FavoriteSet
	if err := s.UnmarshalJSON([]byte("null")); err != nil {
		t.Fatalf("UnmarshalJSON(null): %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}
