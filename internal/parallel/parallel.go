// Package parallel runs independent jobs, such as separate trajectories,
// on a bounded number of goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	NumWorkers int // Maximum concurrent jobs; 1 or less runs sequentially.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	return Config{NumWorkers: runtime.NumCPU()}
}

// For executes f(ctx, i) for i in [0, n).
//
// The first error cancels the context passed to the remaining jobs and is
// returned. Jobs not yet started when ctx is cancelled are skipped.
func For(ctx context.Context, n int, f func(ctx context.Context, i int) error, cfg Config) error {
	if cfg.NumWorkers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.NumWorkers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return f(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
