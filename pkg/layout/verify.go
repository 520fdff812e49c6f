package layout

import (
	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/grid"
)

// Verify checks a packing against the placement invariants: every grid has a
// position, every footprint lies on the canvas, and no two margin-padded
// footprints share interior area.
func Verify(grids []grid.Grid, cfg Config) error {
	rects := make([]Rect, len(grids))
	for i, g := range grids {
		r, ok := Footprint(g)
		if !ok {
			return errors.New(errors.ErrCodeInternal, "grid %s has no position", g.Name)
		}
		if !r.Within(cfg.CanvasWidth, cfg.CanvasHeight) {
			return errors.New(errors.ErrCodeInternal, "grid %s at %v leaves the %dx%d canvas",
				g.Name, r, cfg.CanvasWidth, cfg.CanvasHeight)
		}
		rects[i] = r.Pad(cfg.Margin)
	}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				return errors.New(errors.ErrCodeInternal, "grids %s and %s overlap", grids[i].Name, grids[j].Name)
			}
		}
	}
	return nil
}
