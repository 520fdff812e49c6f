package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/fonts"
	"github.com/matzehuels/gridtower/pkg/grid"
	"github.com/matzehuels/gridtower/pkg/palette"
)

// RenderSVG draws placed grids as SVG markup. One <g> element per grid
// carries the grid name as its id.
func RenderSVG(grids []grid.Grid, width, height int, pal palette.Palette, opts ...Option) ([]byte, error) {
	if width < 1 || height < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas %dx%d must be positive", width, height)
	}
	if err := checkDrawable(grids, pal); err != nil {
		return nil, err
	}
	r := newRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="%s"/>`+"\n", width, height, r.background.Hex())

	stroke := ""
	if r.borders {
		stroke = ` stroke="#808080" stroke-width="1"`
	}
	for _, g := range grids {
		fmt.Fprintf(&buf, `  <g id="%s">`+"\n", html.EscapeString(g.Name))
		tiles(g, func(x, y int, label string) {
			c, _ := pal.Lookup(label)
			fmt.Fprintf(&buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="%s"%s/>`+"\n",
				x, y, g.TileSize, g.TileSize, c.Hex(), stroke)
		})
		if r.labels {
			fw, _ := g.Footprint()
			fmt.Fprintf(&buf, `    <text x="%d" y="%d" text-anchor="middle" font-family="%s" font-size="%g">%s</text>`+"\n",
				g.Position.X+fw/2, g.Position.Y-labelGap, fonts.FontFamily, r.labelSize, html.EscapeString(g.Name))
		}
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}
