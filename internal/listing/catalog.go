package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/joestump/dexview/internal/catalog"
	"github.com/joestump/dexview/internal/logging"
	"github.com/joestump/dexview/internal/metrics"
)

// DefaultIndexLimit is requested from the index endpoint; it must exceed the
// size of the remote catalog so one request returns everything.
const DefaultIndexLimit = 2000

// ErrNotReady is returned by lookups made before the first successful refresh.
var ErrNotReady = errors.New("catalog not loaded")

// Remote is the subset of the catalog client used to build the collection.
type Remote interface {
	DetailFetcher
	FetchIndex(ctx context.Context, limit, offset int) ([]catalog.IndexEntry, error)
	FetchCategories(ctx context.Context) ([]string, error)
}

// CatalogOptions configures a Catalog.
type CatalogOptions struct {
	IndexLimit int
	Tolerant   bool // keep entries whose hydration failed
}

// Snapshot is a consistent view of the collection and its load state.
type Snapshot struct {
	Entries       []Entry
	Categories    []string
	Loading       bool
	Err           error
	CategoriesErr error
	RefreshedAt   time.Time
}

// Ready reports whether a collection has been assembled at least once.
func (s Snapshot) Ready() bool { return !s.RefreshedAt.IsZero() }

// Catalog holds the assembled collection and the category vocabulary, and
// rebuilds them from the remote on Refresh. Readers always see either the
// previous or the next complete collection.
type Catalog struct {
	remote   Remote
	agg      *Aggregator
	limit    int
	tolerant bool
	log      *zap.Logger

	flight singleflight.Group

	mu      sync.RWMutex
	snap    Snapshot
	pending int // callers waiting on a refresh
}

// NewCatalog creates an empty Catalog. Nothing is fetched until Refresh.
func NewCatalog(remote Remote, agg *Aggregator, opts CatalogOptions, log *zap.Logger) *Catalog {
	if opts.IndexLimit <= 0 {
		opts.IndexLimit = DefaultIndexLimit
	}
	return &Catalog{
		remote:   remote,
		agg:      agg,
		limit:    opts.IndexLimit,
		tolerant: opts.Tolerant,
		log:      logging.OrNop(log),
		snap:     Snapshot{Entries: []Entry{}, Categories: []string{}},
	}
}

// Snapshot returns the current state. The slices must not be modified.
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Refresh fetches the index, assembles it and fetches the category vocabulary.
// Concurrent callers share a single in-flight refresh and its result.
// On failure the previous collection is kept and the error recorded on the
// snapshot. A category failure leaves the previous vocabulary in place and
// does not fail the refresh.
func (c *Catalog) Refresh(ctx context.Context) error {
	res := <-c.join(ctx)
	c.endLoading()
	return res.Err
}

// RefreshAsync marks the catalog loading immediately and runs Refresh in the
// background, joining a refresh already in flight. The returned channel
// receives the result and is then closed. Loading stays set until every
// caller has received its result.
func (c *Catalog) RefreshAsync(ctx context.Context) <-chan error {
	ch := c.join(ctx)
	done := make(chan error, 1)
	go func() {
		defer close(done)
		res := <-ch
		c.endLoading()
		done <- res.Err
	}()
	return done
}

// join marks the caller as waiting and attaches it to the in-flight refresh,
// starting one if none is running. The caller must call endLoading once the
// result has been received.
func (c *Catalog) join(ctx context.Context) <-chan singleflight.Result {
	c.beginLoading()
	return c.flight.DoChan("refresh", func() (any, error) {
		return nil, c.refresh(ctx)
	})
}

func (c *Catalog) refresh(ctx context.Context) error {
	start := time.Now()
	entries, err := c.build(ctx)
	categories, catErr := c.remote.FetchCategories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if catErr != nil {
		c.log.Warn("fetch categories", zap.Error(catErr))
		c.snap.CategoriesErr = catErr
	} else {
		c.snap.Categories = categories
		c.snap.CategoriesErr = nil
	}

	if err != nil {
		c.log.Error("refresh catalog", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		c.snap.Err = err
		return err
	}

	c.snap.Entries = entries
	c.snap.Err = nil
	c.snap.RefreshedAt = time.Now()
	metrics.CatalogEntries.Set(float64(len(entries)))
	c.log.Info("catalog refreshed",
		zap.Int("entries", len(entries)),
		zap.Int("categories", len(c.snap.Categories)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (c *Catalog) build(ctx context.Context) ([]Entry, error) {
	index, err := c.remote.FetchIndex(ctx, c.limit, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}
	if !c.tolerant {
		return c.agg.Assemble(ctx, index)
	}

	entries, err := c.agg.AssembleTolerant(ctx, index)
	var partial *PartialHydrationError
	if errors.As(err, &partial) && entries != nil {
		c.log.Warn("catalog assembled with missing categories",
			zap.Int("failed", partial.Failed), zap.Int("total", partial.Total))
		return entries, nil
	}
	return entries, err
}

func (c *Catalog) beginLoading() {
	c.mu.Lock()
	c.pending++
	c.snap.Loading = true
	c.mu.Unlock()
}

func (c *Catalog) endLoading() {
	c.mu.Lock()
	c.pending--
	c.snap.Loading = c.pending > 0
	c.mu.Unlock()
}

// Lookup returns the entry with id.
func (c *Catalog) Lookup(id int) (Entry, error) {
	snap := c.Snapshot()
	if !snap.Ready() {
		return Entry{}, ErrNotReady
	}
	for _, e := range snap.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, catalog.ErrNotFound
}
