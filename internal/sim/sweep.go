package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/linkage/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Factory builds an independent simulator for one seed.
type Factory func(seed int64) (*Simulator, error)

type SweepResult struct {
	Seed int64
	*Result
	// Err holds a per-seed simulation fault; it does not abort the sweep.
	Err error
}

// Sweep runs one simulator per seed, at most parallel at a time, each for
// ticks frames. Every goroutine owns its simulator and state. Results come
// back in seed order. Factory failures and cancellation abort the sweep.
func Sweep(ctx context.Context, seeds []int64, parallel, ticks int, factory Factory) ([]SweepResult, error) {
	results := make([]SweepResult, len(seeds))

	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i, seed := range seeds {
		g.Go(func() error {
			s, err := factory(seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}

			res, err := s.Run(gctx, &ManualClock{}, ticks)
			results[i] = SweepResult{Seed: seed, Result: res}

			var simErr *dynamo.SimulationError
			if errors.As(err, &simErr) {
				results[i].Err = err
				return nil
			}
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
