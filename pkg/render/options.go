package render

import (
	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/fonts"
	"github.com/matzehuels/gridtower/pkg/grid"
	"github.com/matzehuels/gridtower/pkg/palette"
)

// Background is the default canvas color.
var Background = palette.Color{Name: "Background", R: 245, G: 245, B: 245}

// Option configures the PNG and SVG renderers.
type Option func(*renderer)

type renderer struct {
	background palette.Color
	labels     bool
	labelSize  float64
	borders    bool
}

// WithBackground sets the canvas color.
func WithBackground(c palette.Color) Option { return func(r *renderer) { r.background = c } }

// WithLabels toggles the grid names drawn above each grid (default on).
func WithLabels(show bool) Option { return func(r *renderer) { r.labels = show } }

// WithLabelSize sets the label font size in pixels.
func WithLabelSize(px float64) Option { return func(r *renderer) { r.labelSize = px } }

// WithBorders outlines every tile with a thin gray line.
func WithBorders() Option { return func(r *renderer) { r.borders = true } }

func newRenderer(opts ...Option) renderer {
	r := renderer{background: Background, labels: true, labelSize: fonts.DefaultLabelSize}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// checkDrawable verifies that every grid is placed and uses only palette
// labels.
func checkDrawable(grids []grid.Grid, pal palette.Palette) error {
	for _, g := range grids {
		if !g.Placed() {
			return errors.New(errors.ErrCodeInvalidInput, "grid %s has no position", g.Name)
		}
		for _, row := range g.Cells {
			for _, c := range row {
				if !pal.Contains(c) {
					return errors.New(errors.ErrCodeInvalidPalette, "grid %s uses color %q outside the palette", g.Name, c)
				}
			}
		}
	}
	return nil
}

// tiles calls fn for every tile of g with its pixel origin.
func tiles(g grid.Grid, fn func(x, y int, label string)) {
	for r, row := range g.Cells {
		for c, label := range row {
			fn(g.Position.X+c*g.TileSize, g.Position.Y+r*g.TileSize, label)
		}
	}
}
