package grid

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/palette"
)

// Default values for the content generator.
const (
	// DefaultMinTileSize is the smallest tile edge in pixels.
	DefaultMinTileSize = 20

	// DefaultMaxTileSize is the largest tile edge in pixels.
	DefaultMaxTileSize = 50

	// DefaultTileBudget is the pixel budget divided by the larger grid
	// dimension to obtain the tile size.
	DefaultTileBudget = 160

	// DefaultTileNoise is the half-width of the multiplicative noise band,
	// i.e. tile sizes are scaled by U[1-noise, 1+noise].
	DefaultTileNoise = 0.2
)

// Config holds the content generator settings. It is treated as immutable
// once passed to NewGenerator.
type Config struct {
	MinTileSize int
	MaxTileSize int
	TileBudget  int
	TileNoise   float64
	Weighting   SizeWeighting
	Colors      ColorModel
	Palette     palette.Palette
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		MinTileSize: DefaultMinTileSize,
		MaxTileSize: DefaultMaxTileSize,
		TileBudget:  DefaultTileBudget,
		TileNoise:   DefaultTileNoise,
		Weighting:   InversePower(1),
		Colors:      DefaultMarkov(),
		Palette:     palette.Default(),
	}
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	if c.MinTileSize == 0 {
		c.MinTileSize = DefaultMinTileSize
	}
	if c.MaxTileSize == 0 {
		c.MaxTileSize = DefaultMaxTileSize
	}
	if c.TileBudget == 0 {
		c.TileBudget = DefaultTileBudget
	}
	if c.Weighting == nil {
		c.Weighting = InversePower(1)
	}
	if c.Colors == nil {
		c.Colors = DefaultMarkov()
	}
	if c.Palette.Len() == 0 {
		c.Palette = palette.Default()
	}
}

// Validate checks the tile band and noise factor.
func (c Config) Validate() error {
	if c.MinTileSize < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "min tile size must be at least 1, got %d", c.MinTileSize)
	}
	if c.MaxTileSize < c.MinTileSize {
		return errors.New(errors.ErrCodeInvalidConfig, "max tile size %d < min tile size %d", c.MaxTileSize, c.MinTileSize)
	}
	if c.TileBudget < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "tile budget must be positive, got %d", c.TileBudget)
	}
	if c.TileNoise < 0 || c.TileNoise >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "tile noise must be in [0, 1), got %g", c.TileNoise)
	}
	if c.Palette.Len() < 2 {
		return errors.New(errors.ErrCodeInvalidPalette, "palette is empty")
	}
	return nil
}

// Generator creates grids. It is not safe for concurrent use; give each
// goroutine its own Generator and random stream.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator returns a generator drawing randomness from rng. Zero-valued
// config fields are replaced by defaults.
func NewGenerator(cfg Config, rng *rand.Rand) *Generator {
	cfg.SetDefaults()
	return &Generator{cfg: cfg, rng: rng}
}

// Config returns the generator's effective configuration.
func (g *Generator) Config() Config { return g.cfg }

// Create generates one grid without a position. Bounds must satisfy
// min <= max on both axes; that is the caller's responsibility.
func (g *Generator) Create(name string, b Bounds) Grid {
	width := SampleSize(g.rng, b.MinWidth, b.MaxWidth, g.cfg.Weighting)
	height := SampleSize(g.rng, b.MinHeight, b.MaxHeight, g.cfg.Weighting)
	tile := TileSizeFor(g.rng, width, height, g.cfg)
	return Grid{
		Name:     name,
		Width:    width,
		Height:   height,
		TileSize: tile,
		Cells:    g.cfg.Colors.Fill(g.rng, g.cfg.Palette, width, height),
	}
}

// TileSizeFor computes budget/max(width, height), scales it by a noise factor
// drawn from U[1-noise, 1+noise] and clamps the result to the tile band.
func TileSizeFor(rng *rand.Rand, width, height int, cfg Config) int {
	base := float64(cfg.TileBudget) / float64(max(width, height, 1))
	factor := 1 + cfg.TileNoise*(2*rng.Float64()-1)
	size := int(math.Round(base * factor))
	return max(cfg.MinTileSize, min(size, cfg.MaxTileSize))
}
