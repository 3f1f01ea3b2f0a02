package geocode

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ResolveAll resolves the given keys concurrently and merges results by
// town key. Failed lookups are omitted from the result; individual
// failures never fail the batch.
func ResolveAll(ctx context.Context, c Client, keys []string, concurrency int) map[string]Coordinates {
	if len(keys) == 0 {
		return nil
	}
	if concurrency <= 0 {
		concurrency = 8
	}

	var mu sync.Mutex
	resolved := make(map[string]Coordinates, len(keys))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for _, key := range keys {
		eg.Go(func() error {
			coords, err := c.Resolve(gCtx, key)
			if err != nil {
				return nil //nolint:nilerr // failed keys are simply left out
			}
			mu.Lock()
			resolved[key] = coords
			mu.Unlock()
			return nil
		})
	}

	_ = eg.Wait()
	return resolved
}
