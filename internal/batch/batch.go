// Package batch shifts many independent lines concurrently.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"shift/internal/ctxlog"
	"shift/internal/shift"

	"golang.org/x/sync/errgroup"
)

// Lines transforms every line with its own Shifter, so the result of one
// line never depends on the state left by another. The output has the same
// order as lines. The first failure cancels the remaining work.
func Lines(ctx context.Context, lines []string, opts shift.Options, rng *shift.Range, workers int) ([]string, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger := ctxlog.Get(ctx)
	logger.Debug("shifting lines", "lines", len(lines), "workers", workers, "direction", opts.Direction.String())

	out := make([]string, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := shift.New(rng).Transform(line, opts)
			if err != nil {
				return fmt.Errorf("batch: line %d: %w", i+1, err)
			}
			out[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
