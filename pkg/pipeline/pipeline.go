// Package pipeline provides the dataset generation pipeline for Gridtower.
//
// This package implements the complete generate → pack → render → ask
// pipeline used by every CLI command. By centralizing this logic, the
// sample, layout and generate commands share one retry policy and one
// seeding scheme.
//
// # Architecture
//
// Producing one datum consists of four stages:
//
//  1. Generate: draw a grid count and that many grids within the size bounds
//  2. Pack: place the batch on the canvas (see pkg/layout)
//  3. Render: draw the packed canvas in the requested formats
//  4. Ask: compose questions and answers about the grids
//
// Stages 1 and 2 run inside a retry loop. When the packer reports a batch
// failure the bounds are narrowed (one grid fewer, one cell smaller on each
// axis, never below the configured floors) and a fresh batch is drawn. A
// configuration error aborts the datum immediately.
//
// # Usage
//
//	runner, err := pipeline.NewRunner(pipeline.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d, err := runner.GenerateDatum(ctx, 0)
//	png := d.Artifacts["png"]
//
// Many datums in parallel:
//
//	stats, err := runner.Generate(ctx, 100, func(d *pipeline.Datum) error {
//	    return writer.Add(d)
//	})
//
// Each datum draws from its own random stream seeded with Seed+index, so a
// dataset is reproducible regardless of worker count or scheduling.
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/grid"
	"github.com/matzehuels/gridtower/pkg/layout"
	"github.com/matzehuels/gridtower/pkg/question"
	"github.com/matzehuels/gridtower/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and config files
// =============================================================================

const (
	// DefaultMinGrids is the smallest number of grids per datum.
	DefaultMinGrids = 4

	// DefaultMaxGrids is the largest number of grids per datum.
	DefaultMaxGrids = 7

	// DefaultBatchAttempts bounds the generate-and-pack retry loop.
	DefaultBatchAttempts = 10

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for dataset generation.
type Options struct {
	Grid      grid.Config     `json:"-"`
	Layout    layout.Config   `json:"layout"`
	Questions question.Config `json:"questions"`
	Bounds    grid.Bounds     `json:"bounds"`

	MinGrids      int `json:"min_grids"`
	MaxGrids      int `json:"max_grids"`
	BatchAttempts int `json:"batch_attempts"`

	Seed    uint64   `json:"seed"`
	Workers int      `json:"workers"`
	Formats []string `json:"formats"`

	// Runtime options (not serialized)
	RenderOptions []render.Option `json:"-"`
	Logger        *log.Logger     `json:"-"`
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	o := Options{
		Grid:   grid.DefaultConfig(),
		Layout: layout.DefaultConfig(),
	}
	o.SetDefaults()
	return o
}

// SetDefaults fills zero-valued fields. A zero layout config is replaced by
// layout.DefaultConfig so the shrink policy defaults to on.
func (o *Options) SetDefaults() {
	o.Grid.SetDefaults()
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	} else {
		o.Layout.SetDefaults()
	}
	o.Questions.SetDefaults()
	if o.Bounds == (grid.Bounds{}) {
		o.Bounds = grid.DefaultBounds()
	}
	if o.MinGrids == 0 {
		o.MinGrids = DefaultMinGrids
	}
	if o.MaxGrids == 0 {
		o.MaxGrids = max(DefaultMaxGrids, o.MinGrids)
	}
	if o.BatchAttempts == 0 {
		o.BatchAttempts = DefaultBatchAttempts
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every section. Configuration problems that make packing
// impossible are reported as CONFIGURATION_ERROR; everything else as
// INVALID_CONFIG.
func (o *Options) Validate() error {
	if err := o.Grid.Validate(); err != nil {
		return err
	}
	if err := o.Layout.Validate(o.Grid.MinTileSize); err != nil {
		return err
	}
	if err := o.Questions.Validate(); err != nil {
		return err
	}
	if err := o.Bounds.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "bounds")
	}
	if o.MinGrids < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "min grids must be at least 1, got %d", o.MinGrids)
	}
	if o.MaxGrids < o.MinGrids {
		return errors.New(errors.ErrCodeInvalidConfig, "max grids %d < min grids %d", o.MaxGrids, o.MinGrids)
	}
	if o.BatchAttempts < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "batch attempts must be at least 1, got %d", o.BatchAttempts)
	}
	if o.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be at least 1, got %d", o.Workers)
	}
	return ValidateFormats(o.Formats)
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Datum is one generated example: the packed grids, their rendering and the
// composed questions.
type Datum struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Seed  uint64 `json:"seed"`

	Placement *layout.Placement `json:"placement"`

	Question string        `json:"question"`
	Answer   string        `json:"answer"`
	Parts    []question.QA `json:"parts"`

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte `json:"-"`

	Stats DatumStats `json:"stats"`
}

// Grids returns the packed grids.
func (d *Datum) Grids() []grid.Grid {
	if d.Placement == nil {
		return nil
	}
	return d.Placement.Grids
}

// DatumStats contains per-datum statistics.
type DatumStats struct {
	BatchAttempts int           `json:"batch_attempts"`
	Positions     int           `json:"positions"`
	Shrinks       int           `json:"shrinks"`
	Bounds        grid.Bounds   `json:"bounds"`
	MaxGrids      int           `json:"max_grids"`
	PackTime      time.Duration `json:"pack_time"`
	RenderTime    time.Duration `json:"render_time"`
}

// RunStats summarizes a Generate call.
type RunStats struct {
	Requested int
	Generated int
	Skipped   int
	Duration  time.Duration
}
