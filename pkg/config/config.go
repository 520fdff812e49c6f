// Package config loads generation settings from a TOML or YAML file and maps
// them onto [pipeline.Options].
//
// Every field is optional. Zero values keep the pipeline defaults, so a file
// only needs to name what it changes:
//
//	seed = 7
//	formats = ["png", "json"]
//
//	[grids]
//	min = 3
//	max = 5
//
//	[canvas]
//	width = 800
//	height = 800
//	shrink = false
//
//	[palette]
//	dominant = "Navy"
//	colors = [
//	  { name = "Navy", hex = "#001f3f" },
//	  { name = "Orange", hex = "#ff851b" },
//	]
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/grid"
	"github.com/matzehuels/gridtower/pkg/palette"
	"github.com/matzehuels/gridtower/pkg/pipeline"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// File is the on-disk configuration.
type File struct {
	Seed          uint64   `toml:"seed" yaml:"seed"`
	Workers       int      `toml:"workers" yaml:"workers" validate:"gte=0"`
	BatchAttempts int      `toml:"batch_attempts" yaml:"batch_attempts" validate:"gte=0"`
	Formats       []string `toml:"formats" yaml:"formats" validate:"dive,oneof=png svg json"`

	Grids     GridCount    `toml:"grids" yaml:"grids"`
	Bounds    *grid.Bounds `toml:"bounds" yaml:"bounds" validate:"omitempty"`
	Canvas    Canvas       `toml:"canvas" yaml:"canvas"`
	Tiles     Tiles        `toml:"tiles" yaml:"tiles"`
	Colors    Colors       `toml:"colors" yaml:"colors"`
	Palette   Palette      `toml:"palette" yaml:"palette"`
	Questions Questions    `toml:"questions" yaml:"questions"`
}

// GridCount is the range the number of grids per datum is drawn from.
type GridCount struct {
	Min int `toml:"min" yaml:"min" validate:"gte=0"`
	Max int `toml:"max" yaml:"max" validate:"omitempty,gtefield=Min"`
}

// Canvas configures the layout packer.
type Canvas struct {
	Width           int   `toml:"width" yaml:"width" validate:"gte=0"`
	Height          int   `toml:"height" yaml:"height" validate:"gte=0"`
	Margin          *int  `toml:"margin" yaml:"margin" validate:"omitempty,gte=0"`
	MaxAttempts     int   `toml:"max_attempts" yaml:"max_attempts" validate:"gte=0"`
	Shrink          *bool `toml:"shrink" yaml:"shrink"`
	MaxShrinkCycles *int  `toml:"max_shrink_cycles" yaml:"max_shrink_cycles" validate:"omitempty,gte=0"`
	MinShrinkSize   int   `toml:"min_shrink_size" yaml:"min_shrink_size" validate:"gte=0"`
	SortByArea      *bool `toml:"sort_by_area" yaml:"sort_by_area"`
}

// Tiles configures pixel tile sizing.
type Tiles struct {
	Min    int      `toml:"min" yaml:"min" validate:"gte=0"`
	Max    int      `toml:"max" yaml:"max" validate:"omitempty,gtefield=Min"`
	Budget int      `toml:"budget" yaml:"budget" validate:"gte=0"`
	Noise  *float64 `toml:"noise" yaml:"noise" validate:"omitempty,gte=0,lt=1"`

	// Weighting is "power", "log" or "uniform"; Exponent parameterizes it.
	Weighting string  `toml:"weighting" yaml:"weighting" validate:"omitempty,oneof=power log uniform"`
	Exponent  float64 `toml:"exponent" yaml:"exponent" validate:"gte=0"`
}

// Colors selects the cell color model.
type Colors struct {
	Model        string   `toml:"model" yaml:"model" validate:"omitempty,oneof=markov independent"`
	Neighbor     string   `toml:"neighbor" yaml:"neighbor" validate:"omitempty,oneof=above left random"`
	BaseDominant *float64 `toml:"base_dominant" yaml:"base_dominant" validate:"omitempty,gte=0,lte=1"`
	Self         *float64 `toml:"self" yaml:"self" validate:"omitempty,gte=0"`
	Dominant     *float64 `toml:"dominant" yaml:"dominant" validate:"omitempty,gte=0"`
	Other        *float64 `toml:"other" yaml:"other" validate:"omitempty,gte=0"`
}

// Palette names a built-in palette or lists custom colors.
type Palette struct {
	Name     string       `toml:"name" yaml:"name" validate:"omitempty,oneof=default arc"`
	Dominant string       `toml:"dominant" yaml:"dominant" validate:"required_with=Colors"`
	Colors   []ColorEntry `toml:"colors" yaml:"colors" validate:"omitempty,min=2,dive"`
}

// ColorEntry is one custom palette color.
type ColorEntry struct {
	Name string `toml:"name" yaml:"name" validate:"required"`
	Hex  string `toml:"hex" yaml:"hex" validate:"required,hexcolor"`
}

// Questions sets how many questions of each kind are asked. A non-empty
// questions table replaces the whole question config.
type Questions struct {
	SimpleMin    int `toml:"simple_min" yaml:"simple_min" validate:"gte=0"`
	SimpleMax    int `toml:"simple_max" yaml:"simple_max" validate:"gtefield=SimpleMin"`
	ComplexMin   int `toml:"complex_min" yaml:"complex_min" validate:"gte=0"`
	ComplexMax   int `toml:"complex_max" yaml:"complex_max" validate:"gtefield=ComplexMin"`
	AggregateMax int `toml:"aggregate_max" yaml:"aggregate_max" validate:"gte=0"`
}

// Load reads path, decoding TOML or YAML by extension, and validates it.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (must be .toml, .yaml or .yml)", ext)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the struct tags.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return errors.Wrap(errors.ErrCodeInvalidConfig, err,
				"%s fails %q", fe.Namespace(), tagDescription(fe))
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}
	return nil
}

func tagDescription(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// Apply overlays the file onto opts. Unset fields leave opts untouched.
func (f *File) Apply(opts *pipeline.Options) error {
	if f.Seed != 0 {
		opts.Seed = f.Seed
	}
	if f.Workers != 0 {
		opts.Workers = f.Workers
	}
	if f.BatchAttempts != 0 {
		opts.BatchAttempts = f.BatchAttempts
	}
	if len(f.Formats) > 0 {
		opts.Formats = append([]string(nil), f.Formats...)
	}
	if f.Grids.Min != 0 {
		opts.MinGrids = f.Grids.Min
	}
	if f.Grids.Max != 0 {
		opts.MaxGrids = f.Grids.Max
	}
	if f.Bounds != nil {
		opts.Bounds = *f.Bounds
	}

	f.applyCanvas(opts)
	f.applyTiles(opts)
	f.applyColors(opts)
	if err := f.applyPalette(opts); err != nil {
		return err
	}
	if f.Questions != (Questions{}) {
		q := f.Questions
		opts.Questions.SimpleMin, opts.Questions.SimpleMax = q.SimpleMin, q.SimpleMax
		opts.Questions.ComplexMin, opts.Questions.ComplexMax = q.ComplexMin, q.ComplexMax
		opts.Questions.AggregateMax = q.AggregateMax
	}
	return nil
}

func (f *File) applyCanvas(opts *pipeline.Options) {
	c, l := f.Canvas, &opts.Layout
	if c.Width != 0 {
		l.CanvasWidth = c.Width
	}
	if c.Height != 0 {
		l.CanvasHeight = c.Height
	}
	if c.Margin != nil {
		l.Margin = *c.Margin
	}
	if c.MaxAttempts != 0 {
		l.MaxAttempts = c.MaxAttempts
	}
	if c.Shrink != nil {
		l.ShrinkOnFailure = *c.Shrink
	}
	if c.MaxShrinkCycles != nil {
		l.MaxShrinkCycles = *c.MaxShrinkCycles
	}
	if c.MinShrinkSize != 0 {
		l.MinShrinkSize = c.MinShrinkSize
	}
	if c.SortByArea != nil {
		l.SortByArea = *c.SortByArea
	}
}

func (f *File) applyTiles(opts *pipeline.Options) {
	t, g := f.Tiles, &opts.Grid
	if t.Min != 0 {
		g.MinTileSize = t.Min
	}
	if t.Max != 0 {
		g.MaxTileSize = t.Max
	}
	if t.Budget != 0 {
		g.TileBudget = t.Budget
	}
	if t.Noise != nil {
		g.TileNoise = *t.Noise
	}
	switch t.Weighting {
	case "power":
		g.Weighting = grid.InversePower(orDefault(t.Exponent, 1))
	case "log":
		g.Weighting = grid.InverseLog(t.Exponent)
	case "uniform":
		g.Weighting = grid.Uniform()
	}
}

func (f *File) applyColors(opts *pipeline.Options) {
	c := f.Colors
	switch c.Model {
	case "independent":
		m := grid.Independent{Dominant: grid.DefaultMarkov().BaseDominant}
		if c.BaseDominant != nil {
			m.Dominant = *c.BaseDominant
		}
		opts.Grid.Colors = m
		return
	case "":
		if c == (Colors{}) {
			return
		}
	}

	m := grid.DefaultMarkov()
	if p, ok := grid.ParseNeighborPolicy(c.Neighbor); ok {
		m.Neighbor = p
	}
	setFloat(&m.BaseDominant, c.BaseDominant)
	setFloat(&m.Self, c.Self)
	setFloat(&m.Dominant, c.Dominant)
	setFloat(&m.Other, c.Other)
	opts.Grid.Colors = m
}

func (f *File) applyPalette(opts *pipeline.Options) error {
	p := f.Palette
	if len(p.Colors) == 0 {
		if p.Name == "" {
			return nil
		}
		pal, err := palette.ByName(p.Name)
		if err != nil {
			return err
		}
		opts.Grid.Palette = pal
		return nil
	}

	colors := make([]palette.Color, len(p.Colors))
	for i, c := range p.Colors {
		col, err := palette.ParseHex(c.Name, c.Hex)
		if err != nil {
			return err
		}
		colors[i] = col
	}
	pal, err := palette.New(colors, p.Dominant)
	if err != nil {
		return err
	}
	opts.Grid.Palette = pal
	return nil
}

// Options returns the pipeline options described by the file, on top of
// the defaults.
func (f *File) Options() (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if err := f.Apply(&opts); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func orDefault(v, d float64) float64 {
	if v == 0 {
		return d
	}
	return v
}
