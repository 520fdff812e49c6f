// Package palette defines the fixed finite color palettes grid cells are
// drawn from.
//
// A palette is an ordered list of labeled RGB colors with exactly one label
// designated dominant. The dominant label is the background color that the
// content generator samples with elevated probability.
//
// Palettes are values: once built with [New] (or [Default] / [ARC]) they are
// never mutated, so a single palette can be shared across goroutines.
package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/gridtower/pkg/errors"
)

// Color is one labeled palette entry.
type Color struct {
	Name    string `json:"name"`
	R, G, B uint8
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Palette is an ordered set of colors with one dominant label.
type Palette struct {
	colors   []Color
	index    map[string]int
	dominant string
}

// New builds a palette. Names must be unique and non-empty, and dominant must
// name one of the colors.
func New(colors []Color, dominant string) (Palette, error) {
	if len(colors) < 2 {
		return Palette{}, errors.New(errors.ErrCodeInvalidPalette, "palette needs at least 2 colors, got %d", len(colors))
	}
	index := make(map[string]int, len(colors))
	for i, c := range colors {
		if err := errors.ValidateColorName(c.Name); err != nil {
			return Palette{}, err
		}
		if _, dup := index[c.Name]; dup {
			return Palette{}, errors.New(errors.ErrCodeInvalidPalette, "duplicate color %q", c.Name)
		}
		index[c.Name] = i
	}
	if _, ok := index[dominant]; !ok {
		return Palette{}, errors.New(errors.ErrCodeInvalidPalette, "dominant color %q not in palette", dominant)
	}
	return Palette{
		colors:   append([]Color(nil), colors...),
		index:    index,
		dominant: dominant,
	}, nil
}

// MustNew is like New but panics on error. Intended for package-level palettes.
func MustNew(colors []Color, dominant string) Palette {
	p, err := New(colors, dominant)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseHex builds a Color from a label and a "#rrggbb" (or "#rgb") string.
func ParseHex(name, hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "color %q", name)
	}
	r, g, b := c.RGB255()
	return Color{Name: name, R: r, G: g, B: b}, nil
}

// Len returns the number of colors.
func (p Palette) Len() int { return len(p.colors) }

// Dominant returns the dominant (background) label.
func (p Palette) Dominant() string { return p.dominant }

// DominantIndex returns the position of the dominant label.
func (p Palette) DominantIndex() int { return p.index[p.dominant] }

// Colors returns a copy of the palette entries in order.
func (p Palette) Colors() []Color { return append([]Color(nil), p.colors...) }

// Names returns the labels in palette order.
func (p Palette) Names() []string {
	names := make([]string, len(p.colors))
	for i, c := range p.colors {
		names[i] = c.Name
	}
	return names
}

// Name returns the label at position i.
func (p Palette) Name(i int) string { return p.colors[i].Name }

// Index returns the position of name, or -1 if absent.
func (p Palette) Index(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	return -1
}

// Contains reports whether name is a palette label.
func (p Palette) Contains(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Lookup returns the color for name.
func (p Palette) Lookup(name string) (Color, bool) {
	i, ok := p.index[name]
	if !ok {
		return Color{}, false
	}
	return p.colors[i], true
}

// RGB returns the RGB triple for name. Unknown labels map to black.
func (p Palette) RGB(name string) (r, g, b uint8) {
	c, _ := p.Lookup(name)
	return c.R, c.G, c.B
}

// String implements fmt.Stringer.
func (p Palette) String() string {
	return fmt.Sprintf("palette(%d colors, dominant=%s)", len(p.colors), p.dominant)
}

// Default returns the eight-color palette with Black dominant.
func Default() Palette { return defaultPalette }

// ARC returns the ten-color ARC-style palette with Black dominant.
func ARC() Palette { return arcPalette }

var defaultPalette = MustNew([]Color{
	{Name: "Black", R: 0, G: 0, B: 0},
	{Name: "White", R: 255, G: 255, B: 255},
	{Name: "Red", R: 255, G: 0, B: 0},
	{Name: "Green", R: 0, G: 255, B: 0},
	{Name: "Blue", R: 0, G: 0, B: 255},
	{Name: "Yellow", R: 255, G: 255, B: 0},
	{Name: "Cyan", R: 0, G: 255, B: 255},
	{Name: "Magenta", R: 255, G: 0, B: 255},
}, "Black")

var arcPalette = MustNew([]Color{
	{Name: "Magenta", R: 255, G: 0, B: 255},
	{Name: "Dark Red", R: 139, G: 0, B: 0},
	{Name: "Red", R: 255, G: 0, B: 0},
	{Name: "Orange", R: 255, G: 165, B: 0},
	{Name: "Yellow", R: 255, G: 255, B: 0},
	{Name: "Green", R: 0, G: 128, B: 0},
	{Name: "Light Blue", R: 173, G: 216, B: 230},
	{Name: "Blue", R: 0, G: 0, B: 255},
	{Name: "Gray", R: 128, G: 128, B: 128},
	{Name: "Black", R: 0, G: 0, B: 0},
}, "Black")

// ByName returns a built-in palette by name ("default" or "arc").
func ByName(name string) (Palette, error) {
	switch name {
	case "", "default":
		return Default(), nil
	case "arc":
		return ARC(), nil
	}
	return Palette{}, errors.New(errors.ErrCodeInvalidPalette, "unknown palette %q (must be one of: default, arc)", name)
}
