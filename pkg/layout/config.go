package layout

import (
	"github.com/matzehuels/gridtower/pkg/errors"
)

// Default packer settings.
const (
	DefaultCanvasWidth     = 1000
	DefaultCanvasHeight    = 1000
	DefaultMargin          = 10
	DefaultMaxAttempts     = 100
	DefaultMaxShrinkCycles = 10
	DefaultMinShrinkSize   = 3
)

// Config holds the canvas geometry and the retry policy.
type Config struct {
	CanvasWidth  int
	CanvasHeight int

	// Margin is the pixel gap kept around every footprint, applied to both
	// the canvas-edge check and the pairwise overlap check.
	Margin int

	// MaxAttempts is the number of random positions tried per grid size.
	MaxAttempts int

	// ShrinkOnFailure shrinks a grid that exhausted its attempts instead of
	// failing the batch right away.
	ShrinkOnFailure bool

	// MaxShrinkCycles bounds how often a single grid is shrunk.
	MaxShrinkCycles int

	// MinShrinkSize is the floor, in cells, shrinking never goes below.
	MinShrinkSize int

	// SortByArea places larger grids first. Order only affects the
	// likelihood of late failures, not correctness.
	SortByArea bool
}

// DefaultConfig returns a 1000×1000 canvas with a 10px margin, 100 attempts
// per size and up to 10 shrink cycles down to 3 cells.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:     DefaultCanvasWidth,
		CanvasHeight:    DefaultCanvasHeight,
		Margin:          DefaultMargin,
		MaxAttempts:     DefaultMaxAttempts,
		ShrinkOnFailure: true,
		MaxShrinkCycles: DefaultMaxShrinkCycles,
		MinShrinkSize:   DefaultMinShrinkSize,
		SortByArea:      true,
	}
}

// SetDefaults fills zero-valued numeric fields. Boolean policies are left
// as given.
func (c *Config) SetDefaults() {
	if c.CanvasWidth == 0 {
		c.CanvasWidth = DefaultCanvasWidth
	}
	if c.CanvasHeight == 0 {
		c.CanvasHeight = DefaultCanvasHeight
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.MinShrinkSize == 0 {
		c.MinShrinkSize = DefaultMinShrinkSize
	}
}

// Validate checks the settings. minTile is the smallest tile size the
// generator can produce; a canvas that cannot hold a single 1×1 grid at that
// tile size plus margins is reported as CONFIGURATION_ERROR.
func (c Config) Validate(minTile int) error {
	if c.CanvasWidth < 1 || c.CanvasHeight < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas %dx%d must be positive", c.CanvasWidth, c.CanvasHeight)
	}
	if c.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin must be non-negative, got %d", c.Margin)
	}
	if c.MaxAttempts < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.MaxShrinkCycles < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max shrink cycles must be non-negative, got %d", c.MaxShrinkCycles)
	}
	if c.MinShrinkSize < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "min shrink size must be at least 1, got %d", c.MinShrinkSize)
	}
	need := minTile + 2*c.Margin
	if need > c.CanvasWidth || need > c.CanvasHeight {
		return errors.New(errors.ErrCodeConfiguration,
			"canvas %dx%d cannot hold a single %dpx tile with %dpx margins",
			c.CanvasWidth, c.CanvasHeight, minTile, c.Margin)
	}
	return nil
}
