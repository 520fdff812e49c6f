package render

import (
	"encoding/json"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/layout"
)

type jsonOutput struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Margin int        `json:"margin"`
	Grids  []jsonGrid `json:"grids"`
}

type jsonGrid struct {
	Name      string     `json:"name"`
	X         int        `json:"x"`
	Y         int        `json:"y"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	TileSize  int        `json:"tile_size"`
	PixelW    int        `json:"pixel_width"`
	PixelH    int        `json:"pixel_height"`
	Requested *jsonSize  `json:"requested,omitempty"`
	Attempts  int        `json:"attempts"`
	Shrinks   int        `json:"shrinks,omitempty"`
	Cells     [][]string `json:"cells"`
}

type jsonSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RenderLayoutJSON exports the canvas geometry and every positioned grid.
// Grids that were shrunk during packing carry their requested size.
func RenderLayoutJSON(p *layout.Placement, cfg layout.Config) ([]byte, error) {
	if p == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no placement")
	}
	out := jsonOutput{
		Width:  cfg.CanvasWidth,
		Height: cfg.CanvasHeight,
		Margin: cfg.Margin,
		Grids:  make([]jsonGrid, 0, len(p.Grids)),
	}
	for i, g := range p.Grids {
		if !g.Placed() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "grid %s has no position", g.Name)
		}
		fw, fh := g.Footprint()
		jg := jsonGrid{
			Name:     g.Name,
			X:        g.Position.X,
			Y:        g.Position.Y,
			Width:    g.Width,
			Height:   g.Height,
			TileSize: g.TileSize,
			PixelW:   fw,
			PixelH:   fh,
			Cells:    g.Cells,
		}
		if i < len(p.Outcomes) {
			jg.Attempts = p.Outcomes[i].Attempts
			jg.Shrinks = p.Outcomes[i].Shrinks
		}
		if i < len(p.Requests) {
			if req := p.Requests[i]; req.Width != g.Width || req.Height != g.Height {
				jg.Requested = &jsonSize{Width: req.Width, Height: req.Height}
			}
		}
		out.Grids = append(out.Grids, jg)
	}
	return json.MarshalIndent(out, "", "  ")
}
