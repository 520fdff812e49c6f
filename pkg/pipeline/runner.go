package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/observability"
	"github.com/matzehuels/gridtower/pkg/question"
)

// datumNamespace scopes datum IDs so the same seed and index always map to
// the same UUID.
var datumNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/gridtower/datum"))

// Runner executes the pipeline with a fixed set of options.
//
// A Runner holds no per-datum state. Every datum builds its own generator,
// packer and random stream, so GenerateDatum may be called from many
// goroutines at once.
type Runner struct {
	opts     Options
	composer *question.Composer
	Logger   *log.Logger
}

// NewRunner applies defaults, validates opts and returns a runner.
func NewRunner(opts Options) (*Runner, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		opts:     opts,
		composer: question.NewComposer(opts.Questions),
		Logger:   opts.Logger,
	}, nil
}

// Options returns the effective options.
func (r *Runner) Options() Options { return r.opts }

// GenerateDatum produces the datum at index: pack a batch, render it and
// compose the questions.
func (r *Runner) GenerateDatum(ctx context.Context, index int) (*Datum, error) {
	seed := DatumSeed(r.opts.Seed, index)
	rng := newRNG(seed)

	p, stats, err := r.pack(ctx, index, rng)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, err := r.Render(ctx, p)
	if err != nil {
		return nil, err
	}
	stats.RenderTime = time.Since(renderStart)

	meta, parts, err := r.composer.Compose(rng, question.Scene{Grids: p.Grids, Palette: r.opts.Grid.Palette})
	if err != nil {
		return nil, err
	}

	return &Datum{
		ID:        DatumID(r.opts.Seed, index),
		Index:     index,
		Seed:      seed,
		Placement: p,
		Question:  meta.Question,
		Answer:    meta.Answer,
		Parts:     parts,
		Artifacts: artifacts,
		Stats:     stats,
	}, nil
}

// Generate produces datums 0..n-1 on a bounded worker pool and hands each one
// to sink. Sink calls are serialized but arrive in completion order.
//
// A datum whose batch loop fails is skipped and logged. A configuration error
// aborts the run since no later datum could succeed either. A sink error also
// aborts the run.
func (r *Runner) Generate(ctx context.Context, n int, sink func(*Datum) error) (RunStats, error) {
	start := time.Now()
	stats := RunStats{Requested: n}
	hooks := observability.Generation()

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i := range n {
		g.Go(func() error {
			d, err := r.GenerateDatum(ctx, i)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if errors.Is(err, errors.ErrCodeConfiguration) {
					return err
				}
				hooks.OnDatumSkipped(ctx, i, err)
				r.Logger.Warn("skipping datum", "index", i, "err", err)
				mu.Lock()
				stats.Skipped++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			if err := sink(d); err != nil {
				return fmt.Errorf("datum %d: %w", i, err)
			}
			hooks.OnDatumGenerated(ctx, i)
			stats.Generated++
			return nil
		})
	}

	err := g.Wait()
	stats.Duration = time.Since(start)
	if err != nil {
		return stats, err
	}

	r.Logger.Info("generation complete",
		"generated", stats.Generated,
		"skipped", stats.Skipped,
		"duration", stats.Duration)
	return stats, nil
}

// DatumSeed returns the seed of the datum at index.
func DatumSeed(seed uint64, index int) uint64 {
	return seed + uint64(index)
}

// DatumID returns the stable identifier of the datum at index.
func DatumID(seed uint64, index int) string {
	return uuid.NewSHA1(datumNamespace, fmt.Appendf(nil, "%d/%d", seed, index)).String()
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
