package listing

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/joestump/dexview/internal/catalog"
	"github.com/joestump/dexview/internal/logging"
	"github.com/joestump/dexview/internal/metrics"
)

// DefaultConcurrency bounds in-flight detail fetches during assembly.
const DefaultConcurrency = 16

// DetailFetcher fetches one detail record by ID or reference URL.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, ref string) (*catalog.Detail, error)
}

// Aggregator hydrates index entries with their detail records.
type Aggregator struct {
	details     DetailFetcher
	concurrency int
	log         *zap.Logger
}

// NewAggregator creates an Aggregator. concurrency <= 0 uses DefaultConcurrency.
func NewAggregator(details DetailFetcher, concurrency int, log *zap.Logger) *Aggregator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Aggregator{details: details, concurrency: concurrency, log: logging.OrNop(log)}
}

// Assemble fetches the detail of every index entry concurrently and returns
// the entries in index order. The first failed fetch cancels the others and
// Assemble returns a *PartialHydrationError with no entries.
func (a *Aggregator) Assemble(ctx context.Context, index []catalog.IndexEntry) ([]Entry, error) {
	entries, err := a.prepare(index)
	if err != nil {
		metrics.AssemblyTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	var failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i := range entries {
		g.Go(func() error {
			d, err := a.details.FetchDetail(gctx, entries[i].URL)
			if err != nil {
				if gctx.Err() == nil {
					failed.Add(1)
				}
				return fmt.Errorf("hydrate %q: %w", entries[i].Name, err)
			}
			entries[i].Categories = d.Categories
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.AssemblyTotal.WithLabelValues("failed").Inc()
		return nil, &PartialHydrationError{Failed: int(failed.Load()), Total: len(entries), Err: err}
	}

	metrics.AssemblyTotal.WithLabelValues("ok").Inc()
	a.log.Debug("assembled listing", zap.Int("entries", len(entries)))
	return entries, nil
}

// AssembleTolerant is like Assemble but never drops entries: an entry whose
// fetch failed keeps HydrationErr and no categories. The returned error is a
// *PartialHydrationError combining every failure, or nil.
func (a *Aggregator) AssembleTolerant(ctx context.Context, index []catalog.IndexEntry) ([]Entry, error) {
	entries, err := a.prepare(index)
	if err != nil {
		metrics.AssemblyTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i := range entries {
		g.Go(func() error {
			d, err := a.details.FetchDetail(gctx, entries[i].URL)
			if err != nil {
				entries[i].HydrationErr = fmt.Errorf("hydrate %q: %w", entries[i].Name, err)
				return nil
			}
			entries[i].Categories = d.Categories
			return nil
		})
	}
	_ = g.Wait()

	var errs error
	failed := 0
	for _, e := range entries {
		if e.HydrationErr != nil {
			failed++
			errs = multierr.Append(errs, e.HydrationErr)
		}
	}
	if failed > 0 {
		metrics.AssemblyTotal.WithLabelValues("partial").Inc()
		a.log.Warn("assembled listing with failures",
			zap.Int("entries", len(entries)), zap.Int("failed", failed))
		return entries, &PartialHydrationError{Failed: failed, Total: len(entries), Err: errs}
	}
	metrics.AssemblyTotal.WithLabelValues("ok").Inc()
	return entries, nil
}

// prepare turns index rows into entries, taking name and URL from the index.
func (a *Aggregator) prepare(index []catalog.IndexEntry) ([]Entry, error) {
	entries := make([]Entry, len(index))
	for i, ie := range index {
		id, err := ie.ID()
		if err != nil {
			return nil, fmt.Errorf("index entry %q: %w", ie.Name, err)
		}
		entries[i] = Entry{ID: id, Name: ie.Name, URL: ie.URL, Categories: []string{}}
	}
	return entries, nil
}
