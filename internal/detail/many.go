package detail

import (
	"context"
	"fmt"
	"slices"

	"github.com/sourcegraph/conc/pool"

	"github.com/joestump/dexview/internal/catalog"
)

// DefaultBatchConcurrency bounds in-flight fetches in FetchMany.
const DefaultBatchConcurrency = 8

type indexed struct {
	i int
	d *catalog.Detail
}

// FetchMany fetches the detail record of every id concurrently and returns
// them in ids order. Any failure cancels the rest and fails the whole batch.
func FetchMany(ctx context.Context, fetch Fetcher, ids []int) ([]*catalog.Detail, error) {
	if len(ids) == 0 {
		return []*catalog.Detail{}, nil
	}

	p := pool.NewWithResults[indexed]().
		WithContext(ctx).
		WithMaxGoroutines(DefaultBatchConcurrency).
		WithCancelOnError()
	for i, id := range ids {
		p.Go(func(ctx context.Context) (indexed, error) {
			d, err := fetch.FetchDetailByID(ctx, id)
			if err != nil {
				return indexed{}, fmt.Errorf("fetch detail %d: %w", id, err)
			}
			return indexed{i: i, d: d}, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b indexed) int { return a.i - b.i })
	out := make([]*catalog.Detail, len(results))
	for j, r := range results {
		out[j] = r.d
	}
	return out, nil
}
