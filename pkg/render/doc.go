// Package render draws packed grids onto the canvas.
//
// # Overview
//
// A packed [layout.Placement] is turned into one of three outputs:
//
//   - PNG: raster image drawn with fogleman/gg ([RenderPNG])
//   - SVG: the same drawing as vector markup ([RenderSVG])
//   - JSON: canvas geometry plus every positioned grid ([RenderLayoutJSON])
//
// Every tile is a square of the grid's tile size whose top-left corner is
// the grid position plus (column, row) times the tile size, filled with the
// palette color of its label. The canvas background defaults to a light gray
// (245, 245, 245) and each grid's name is drawn centered above it.
//
//	png, err := render.RenderPNG(placement.Grids, cfg.CanvasWidth, cfg.CanvasHeight, pal,
//	    render.WithBorders(),
//	)
//
// All renderers reject grids without a position and labels outside the
// palette; nothing is drawn in that case.
//
// [layout.Placement]: github.com/matzehuels/gridtower/pkg/layout.Placement
package render
