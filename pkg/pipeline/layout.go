package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/grid"
	"github.com/matzehuels/gridtower/pkg/layout"
	"github.com/matzehuels/gridtower/pkg/observability"
)

// =============================================================================
// Batch Packing
// =============================================================================

// Pack runs the generate-and-pack retry loop for the datum at index and
// returns the packed batch. It uses the datum's own random stream, so the
// result equals the placement GenerateDatum would produce for index.
func (r *Runner) Pack(ctx context.Context, index int) (*layout.Placement, DatumStats, error) {
	return r.pack(ctx, index, newRNG(DatumSeed(r.opts.Seed, index)))
}

func (r *Runner) pack(ctx context.Context, index int, rng *rand.Rand) (*layout.Placement, DatumStats, error) {
	hooks := observability.Generation()
	start := time.Now()

	gen := grid.NewGenerator(r.opts.Grid, rng)
	packer := layout.NewPacker(r.opts.Layout, rng)

	stats := DatumStats{Bounds: r.opts.Bounds, MaxGrids: r.opts.MaxGrids}
	var lastErr error
	for attempt := 1; attempt <= r.opts.BatchAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		stats.BatchAttempts = attempt

		n := between(rng, r.opts.MinGrids, stats.MaxGrids)
		grids := make([]grid.Grid, n)
		for i := range grids {
			grids[i] = gen.Create(fmt.Sprintf("Grid_%d", i+1), stats.Bounds)
		}
		hooks.OnBatchAttempt(ctx, index, attempt, n)

		p, err := packer.Place(grids)
		if err == nil {
			stats.Positions = p.TotalAttempts()
			stats.Shrinks = p.TotalShrinks()
			stats.PackTime = time.Since(start)
			hooks.OnPlacement(ctx, index, stats.Positions, stats.Shrinks)
			hooks.OnBatchComplete(ctx, index, attempt, stats.PackTime, nil)
			if stats.Shrinks > 0 {
				r.Logger.Debug("packed with shrinking", "datum", index, "attempt", attempt, "shrinks", stats.Shrinks)
			}
			return p, stats, nil
		}
		if errors.Is(err, errors.ErrCodeConfiguration) {
			hooks.OnBatchComplete(ctx, index, attempt, time.Since(start), err)
			return nil, stats, err
		}

		lastErr = err
		r.Logger.Debug("batch failed",
			"datum", index,
			"attempt", attempt,
			"grids", n,
			"max_grids", stats.MaxGrids,
			"max_width", stats.Bounds.MaxWidth,
			"max_height", stats.Bounds.MaxHeight,
			"err", err)
		stats.Bounds, stats.MaxGrids = narrow(stats.Bounds, r.opts.MinGrids, stats.MaxGrids)
	}

	stats.PackTime = time.Since(start)
	err := errors.Wrap(errors.ErrCodeBatchFailure, lastErr,
		"datum %d: no packing after %d batch attempts", index, r.opts.BatchAttempts)
	hooks.OnBatchComplete(ctx, index, stats.BatchAttempts, stats.PackTime, err)
	return nil, stats, err
}

// narrow eases the next batch after a packing failure: one grid fewer while
// more than minGrids+1 are allowed, and one cell less on each axis while the
// range spans more than two cells.
func narrow(b grid.Bounds, minGrids, maxGrids int) (grid.Bounds, int) {
	if maxGrids > minGrids+1 {
		maxGrids--
	}
	if b.MaxWidth > b.MinWidth+2 {
		b.MaxWidth--
	}
	if b.MaxHeight > b.MinHeight+2 {
		b.MaxHeight--
	}
	return b, maxGrids
}

// between draws uniformly from [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
