// Package ensemble runs one job per seed across a bounded set of goroutines.
package ensemble

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// Job renders one member of the ensemble.
type Job[T any] func(ctx context.Context, index int, seed int64) (T, error)

type Ensemble struct {
	numRuns   int
	seedStart int64
	workers   int
}

// New returns an ensemble of numRuns members seeded seedStart, seedStart+1,
// and so on. workers <= 0 uses GOMAXPROCS.
func New(numRuns int, seedStart int64, workers int) *Ensemble {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, workers: workers}
}

func (e *Ensemble) Seed(index int) int64 { return e.seedStart + int64(index) }

func (e *Ensemble) Len() int { return e.numRuns }

// Run calls job for every member and returns the results in index order.
// Every member runs even if some fail; the failures are joined.
func Run[T any](ctx context.Context, e *Ensemble, job Job[T]) ([]T, error) {
	results := make([]T, e.numRuns)
	errs := make([]error, e.numRuns)

	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				errs[idx] = fmt.Errorf("run %d: %w", idx, ctx.Err())
				return
			}
			defer func() { <-sem }()

			res, err := job(ctx, idx, e.Seed(idx))
			if err != nil {
				errs[idx] = fmt.Errorf("run %d (seed %d): %w", idx, e.Seed(idx), err)
				return
			}
			results[idx] = res
		}(i)
	}

	wg.Wait()

	return results, errors.Join(errs...)
}
