package layout

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/grid"
)

// Request records the size a grid was submitted with, before any shrinking.
type Request struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	TileSize int    `json:"tile_size"`
}

// Outcome records how much work placing one grid took.
type Outcome struct {
	Attempts int `json:"attempts"`
	Shrinks  int `json:"shrinks"`
}

// Placement is a successful packing. Grids, Requests and Outcomes are index
// aligned with the input slice.
type Placement struct {
	Grids    []grid.Grid `json:"grids"`
	Requests []Request   `json:"requests"`
	Outcomes []Outcome   `json:"outcomes"`
}

// TotalAttempts returns the number of random positions tried.
func (p *Placement) TotalAttempts() int {
	n := 0
	for _, o := range p.Outcomes {
		n += o.Attempts
	}
	return n
}

// TotalShrinks returns the number of shrink steps across all grids.
func (p *Placement) TotalShrinks() int {
	n := 0
	for _, o := range p.Outcomes {
		n += o.Shrinks
	}
	return n
}

// Packer places grids on the canvas. It is not safe for concurrent use; each
// generation run owns one Packer and one random stream.
type Packer struct {
	cfg Config
	rng *rand.Rand
}

// NewPacker returns a packer drawing positions from rng.
func NewPacker(cfg Config, rng *rand.Rand) *Packer {
	cfg.SetDefaults()
	return &Packer{cfg: cfg, rng: rng}
}

// Config returns the packer's effective configuration.
func (p *Packer) Config() Config { return p.cfg }

// Place assigns a position to every grid, or fails as a whole. The input
// grids are not modified.
func (p *Packer) Place(grids []grid.Grid) (*Placement, error) {
	out := &Placement{
		Grids:    make([]grid.Grid, len(grids)),
		Requests: make([]Request, len(grids)),
		Outcomes: make([]Outcome, len(grids)),
	}
	for i, g := range grids {
		out.Requests[i] = Request{Name: g.Name, Width: g.Width, Height: g.Height, TileSize: g.TileSize}
	}

	// Fail fast before spending any attempts on a hopeless batch.
	for _, g := range grids {
		if err := p.checkFits(g); err != nil {
			return nil, err
		}
	}

	occupied := make([]Rect, 0, len(grids))
	for _, i := range p.order(grids) {
		placed, outcome, err := p.placeOne(grids[i], occupied)
		out.Outcomes[i] = outcome
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeBatchFailure, err,
				"placed %d of %d grids", len(occupied), len(grids))
		}
		occupied = append(occupied, p.padded(placed))
		out.Grids[i] = placed
	}
	return out, nil
}

// order returns the placement order as indices into grids.
func (p *Packer) order(grids []grid.Grid) []int {
	idx := make([]int, len(grids))
	for i := range idx {
		idx[i] = i
	}
	if p.cfg.SortByArea {
		slices.SortStableFunc(idx, func(a, b int) int {
			return cmp.Compare(pixelArea(grids[b]), pixelArea(grids[a]))
		})
	}
	return idx
}

// placeOne finds a position for g, shrinking a working copy when allowed.
func (p *Packer) placeOne(g grid.Grid, occupied []Rect) (grid.Grid, Outcome, error) {
	var outcome Outcome
	work := g.Crop(g.Width, g.Height)

	for {
		if p.fits(work) {
			for range p.cfg.MaxAttempts {
				outcome.Attempts++
				pos := p.randomPosition(work)
				candidate := footprint(work, pos).Pad(p.cfg.Margin)
				if collides(candidate, occupied) {
					continue
				}
				work.Position = &pos
				return work, outcome, nil
			}
		}

		next, ok := p.shrink(work, outcome.Shrinks)
		if !ok {
			return grid.Grid{}, outcome, errors.New(errors.ErrCodePackingExhausted,
				"grid %s: no free position after %d attempts (size %dx%d, %d shrinks)",
				g.Name, outcome.Attempts, work.Width, work.Height, outcome.Shrinks)
		}
		work = next
		outcome.Shrinks++
	}
}

// shrink returns g reduced by one cell per axis, or false when the policy or
// the floor forbids further shrinking.
func (p *Packer) shrink(g grid.Grid, done int) (grid.Grid, bool) {
	if !p.cfg.ShrinkOnFailure || done >= p.cfg.MaxShrinkCycles {
		return g, false
	}
	w := shrinkDim(g.Width, p.cfg.MinShrinkSize)
	h := shrinkDim(g.Height, p.cfg.MinShrinkSize)
	if w == g.Width && h == g.Height {
		return g, false
	}
	return g.Crop(w, h), true
}

// shrinkDim reduces n by one unless that would cross floor. Dimensions that
// already start below the floor stay where they are.
func shrinkDim(n, floor int) int {
	if n-1 < floor {
		return n
	}
	return n - 1
}

// minReachable returns the smallest dimensions shrinking can produce for g.
func (p *Packer) minReachable(g grid.Grid) (w, h int) {
	if !p.cfg.ShrinkOnFailure {
		return g.Width, g.Height
	}
	reach := func(n int) int {
		floor := min(n, p.cfg.MinShrinkSize)
		return max(floor, n-p.cfg.MaxShrinkCycles)
	}
	return reach(g.Width), reach(g.Height)
}

// checkFits reports CONFIGURATION_ERROR when g cannot fit the empty canvas
// even at its smallest reachable size.
func (p *Packer) checkFits(g grid.Grid) error {
	w, h := p.minReachable(g)
	fw, fh := w*g.TileSize+2*p.cfg.Margin, h*g.TileSize+2*p.cfg.Margin
	if fw > p.cfg.CanvasWidth || fh > p.cfg.CanvasHeight {
		return errors.New(errors.ErrCodeConfiguration,
			"grid %s needs at least %dx%d px with margins, canvas is %dx%d",
			g.Name, fw, fh, p.cfg.CanvasWidth, p.cfg.CanvasHeight)
	}
	return nil
}

// fits reports whether g at its current size fits the empty canvas.
func (p *Packer) fits(g grid.Grid) bool {
	fw, fh := g.Footprint()
	return fw+2*p.cfg.Margin <= p.cfg.CanvasWidth && fh+2*p.cfg.Margin <= p.cfg.CanvasHeight
}

// randomPosition draws a top-left corner such that the padded footprint
// stays on the canvas. The caller guarantees the grid fits.
func (p *Packer) randomPosition(g grid.Grid) grid.Point {
	fw, fh := g.Footprint()
	m := p.cfg.Margin
	return grid.Point{
		X: m + p.rng.IntN(p.cfg.CanvasWidth-fw-2*m+1),
		Y: m + p.rng.IntN(p.cfg.CanvasHeight-fh-2*m+1),
	}
}

func (p *Packer) padded(g grid.Grid) Rect {
	return footprint(g, *g.Position).Pad(p.cfg.Margin)
}

// footprint returns the unpadded pixel rectangle of g at pos.
func footprint(g grid.Grid, pos grid.Point) Rect {
	fw, fh := g.Footprint()
	return Rect{X0: pos.X, Y0: pos.Y, X1: pos.X + fw, Y1: pos.Y + fh}
}

// Footprint returns the pixel rectangle of a placed grid.
func Footprint(g grid.Grid) (Rect, bool) {
	if g.Position == nil {
		return Rect{}, false
	}
	return footprint(g, *g.Position), true
}

func collides(r Rect, occupied []Rect) bool {
	for _, o := range occupied {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}

func pixelArea(g grid.Grid) int {
	w, h := g.Footprint()
	return w * h
}
