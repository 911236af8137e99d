package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/joestump/dexview/internal/logging"
	"github.com/joestump/dexview/internal/metrics"
)

// FavoritesKey is the KV key holding the JSON array of favorite IDs.
const FavoritesKey = "favorites"

// MalformedPersistedStateError reports durable favorites data that could not
// be decoded. FavoritesStore.Load recovers from it by starting empty.
type MalformedPersistedStateError struct {
	Key string
	Err error
}

func (e *MalformedPersistedStateError) Error() string {
	return fmt.Sprintf("malformed persisted state under %q: %v", e.Key, e.Err)
}

func (e *MalformedPersistedStateError) Unwrap() error { return e.Err }

// FavoriteSet is a set of item IDs. Insertion order is kept but carries no
// meaning; compare sets with Equal.
type FavoriteSet struct {
	ids []int
}

// NewFavoriteSet builds a set from ids, dropping duplicates.
func NewFavoriteSet(ids ...int) FavoriteSet {
	var s FavoriteSet
	for _, id := range ids {
		if !s.Contains(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// Contains reports whether id is in the set.
func (s FavoriteSet) Contains(id int) bool { return slices.Contains(s.ids, id) }

// Len returns the number of IDs in the set.
func (s FavoriteSet) Len() int { return len(s.ids) }

// IDs returns a copy of the IDs in insertion order. Never nil.
func (s FavoriteSet) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Equal reports whether both sets hold the same IDs, ignoring order.
func (s FavoriteSet) Equal(o FavoriteSet) bool {
	if len(s.ids) != len(o.ids) {
		return false
	}
	for _, id := range s.ids {
		if !o.Contains(id) {
			return false
		}
	}
	return true
}

// toggled returns a new set with id removed if present, appended otherwise.
func (s FavoriteSet) toggled(id int) FavoriteSet {
	if i := slices.Index(s.ids, id); i >= 0 {
		return FavoriteSet{ids: slices.Delete(s.IDs(), i, i+1)}
	}
	return FavoriteSet{ids: append(s.IDs(), id)}
}

// MarshalJSON encodes the set as a JSON array of integers.
func (s FavoriteSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON decodes a JSON array of integers. null decodes to the empty set.
func (s *FavoriteSet) UnmarshalJSON(b []byte) error {
	var ids []int
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*s = NewFavoriteSet(ids...)
	return nil
}

// FavoritesStore owns the favorite set and is its only writer. Every mutation
// is written through to the KV before the call returns.
type FavoritesStore struct {
	kv  KV
	log *zap.Logger

	mu  sync.Mutex
	set FavoriteSet
}

// NewFavoritesStore creates a FavoritesStore over kv. Call Load before use.
func NewFavoritesStore(kv KV, log *zap.Logger) *FavoritesStore {
	return &FavoritesStore{kv: kv, log: logging.OrNop(log)}
}

// Load reads the persisted set. It never fails: a missing key, unreadable
// storage or malformed content all yield the empty set.
func (s *FavoritesStore) Load(ctx context.Context) FavoriteSet {
	set, err := s.read(ctx)
	if err != nil {
		var malformed *MalformedPersistedStateError
		if errors.As(err, &malformed) {
			s.log.Warn("discarding malformed favorites", zap.Error(err))
		} else {
			s.log.Error("read favorites", zap.Error(err))
		}
		set = FavoriteSet{}
	}

	s.mu.Lock()
	s.set = set
	s.mu.Unlock()
	metrics.Favorites.Set(float64(set.Len()))
	return set
}

func (s *FavoritesStore) read(ctx context.Context) (FavoriteSet, error) {
	raw, err := s.kv.Get(ctx, FavoritesKey)
	if errors.Is(err, ErrNotFound) {
		return FavoriteSet{}, nil
	}
	if err != nil {
		return FavoriteSet{}, err
	}
	var set FavoriteSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return FavoriteSet{}, &MalformedPersistedStateError{Key: FavoritesKey, Err: err}
	}
	return set, nil
}

// Snapshot returns the current set.
func (s *FavoritesStore) Snapshot() FavoriteSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FavoriteSet{ids: s.set.IDs()}
}

// Contains reports whether id is currently a favorite.
func (s *FavoritesStore) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Contains(id)
}

// Toggle adds id if absent or removes it if present, persists the full set
// and returns it. On a persist failure the set is left unchanged.
func (s *FavoritesStore) Toggle(ctx context.Context, id int) (FavoriteSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.set.toggled(id)
	if err := s.persist(ctx, next); err != nil {
		metrics.FavoriteTogglesTotal.WithLabelValues("failed").Inc()
		return FavoriteSet{ids: s.set.IDs()}, err
	}
	action := "added"
	if !next.Contains(id) {
		action = "removed"
	}
	metrics.FavoriteTogglesTotal.WithLabelValues(action).Inc()
	s.log.Debug("favorite toggled", zap.Int("id", id), zap.String("action", action))

	s.set = next
	return FavoriteSet{ids: next.IDs()}, nil
}

// Replace overwrites the whole set and persists it.
func (s *FavoritesStore) Replace(ctx context.Context, set FavoriteSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := NewFavoriteSet(set.ids...)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.set = next
	return nil
}

func (s *FavoritesStore) persist(ctx context.Context, set FavoriteSet) error {
	b, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.kv.Put(ctx, FavoritesKey, string(b)); err != nil {
		return fmt.Errorf("persist favorites: %w", err)
	}
	metrics.Favorites.Set(float64(set.Len()))
	return nil
}
