// Package fonts provides the embedded font used for grid labels.
//
// Labels are set in Go Regular, which ships with golang.org/x/image, so
// rendering needs no fonts installed on the host.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultLabelSize is the label font size in points (pixels at 72 DPI).
const DefaultLabelSize = 14

// FontFamily is the CSS font-family for SVG labels. Viewers without Go
// Regular fall back to a sans-serif face of similar width.
const FontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// TTF returns the raw font data.
func TTF() []byte {
	return goregular.TTF
}

// The parsed font is shared; faces are not.
var (
	parsed    *opentype.Font
	parseErr  error
	parseOnce sync.Once
)

// LabelFace returns a new face of the given size. A face keeps glyph buffers
// and must not be shared between goroutines, so every render asks for its own.
func LabelFace(size float64) (font.Face, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
