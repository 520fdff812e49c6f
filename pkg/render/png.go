package render

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/fonts"
	"github.com/matzehuels/gridtower/pkg/grid"
	"github.com/matzehuels/gridtower/pkg/palette"
)

const labelGap = 5

// RenderPNG rasterizes placed grids onto a width×height canvas.
func RenderPNG(grids []grid.Grid, width, height int, pal palette.Palette, opts ...Option) ([]byte, error) {
	if width < 1 || height < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas %dx%d must be positive", width, height)
	}
	if err := checkDrawable(grids, pal); err != nil {
		return nil, err
	}
	r := newRenderer(opts...)

	dc := gg.NewContext(width, height)
	if r.labels {
		face, err := fonts.LabelFace(r.labelSize)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load label font")
		}
		defer face.Close()
		dc.SetFontFace(face)
	}
	dc.SetRGB255(int(r.background.R), int(r.background.G), int(r.background.B))
	dc.Clear()

	for _, g := range grids {
		ts := float64(g.TileSize)
		tiles(g, func(x, y int, label string) {
			cr, cg, cb := pal.RGB(label)
			dc.SetRGB255(int(cr), int(cg), int(cb))
			dc.DrawRectangle(float64(x), float64(y), ts, ts)
			dc.Fill()
		})
		if r.borders {
			dc.SetRGB255(128, 128, 128)
			dc.SetLineWidth(1)
			tiles(g, func(x, y int, _ string) {
				dc.DrawRectangle(float64(x)+0.5, float64(y)+0.5, ts-1, ts-1)
				dc.Stroke()
			})
		}
		if r.labels {
			fw, _ := g.Footprint()
			dc.SetRGB(0, 0, 0)
			dc.DrawStringAnchored(g.Name, float64(g.Position.X)+float64(fw)/2, float64(g.Position.Y-labelGap), 0.5, 0)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
