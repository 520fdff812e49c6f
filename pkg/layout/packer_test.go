package layout

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/grid"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func solid(name string, w, h, tile int) grid.Grid {
	cells := make([][]string, h)
	for r := range cells {
		cells[r] = make([]string, w)
		for c := range cells[r] {
			cells[r][c] = fmt.Sprintf("C%d", (r+c)%3)
		}
	}
	return grid.Grid{Name: name, Width: w, Height: h, TileSize: tile, Cells: cells}
}

func generate(t *testing.T, seed uint64, n int, b grid.Bounds) []grid.Grid {
	t.Helper()
	gen := grid.NewGenerator(grid.DefaultConfig(), newRNG(seed))
	out := make([]grid.Grid, n)
	for i := range out {
		out[i] = gen.Create(fmt.Sprintf("Grid_%d", i+1), b)
	}
	return out
}

func TestPlaceSmallBatch(t *testing.T) {
	grids := generate(t, 1, 3, grid.Bounds{MinWidth: 3, MaxWidth: 5, MinHeight: 3, MaxHeight: 5})
	cfg := DefaultConfig()

	got, err := NewPacker(cfg, newRNG(2)).Place(grids)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(got.Grids) != 3 {
		t.Fatalf("placed %d grids, want 3", len(got.Grids))
	}
	if err := Verify(got.Grids, cfg); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	seen := map[grid.Point]bool{}
	for i, g := range got.Grids {
		if g.Name != grids[i].Name {
			t.Errorf("grid %d: name %q, want input order %q", i, g.Name, grids[i].Name)
		}
		if seen[*g.Position] {
			t.Errorf("duplicate position %v", *g.Position)
		}
		seen[*g.Position] = true
		if g.Position.X < cfg.Margin || g.Position.Y < cfg.Margin {
			t.Errorf("%s at %v is inside the margin", g.Name, *g.Position)
		}
	}
	if got.TotalAttempts() < 3 {
		t.Errorf("TotalAttempts = %d, want >= 3", got.TotalAttempts())
	}
}

func TestPlaceOversizedIsConfigurationError(t *testing.T) {
	grids := []grid.Grid{solid("Grid_1", 200, 200, 20)}

	got, err := NewPacker(DefaultConfig(), newRNG(1)).Place(grids)
	if got != nil {
		t.Fatalf("expected no placement, got %+v", got)
	}
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Fatalf("error code = %s, want %s (%v)", errors.GetCode(err), errors.ErrCodeConfiguration, err)
	}
}

func TestPlaceConfigurationErrorPrecedesPacking(t *testing.T) {
	// The oversized grid comes last; it must still be reported as a
	// configuration problem rather than a packing failure.
	grids := []grid.Grid{solid("Grid_1", 4, 4, 20), solid("Grid_2", 80, 80, 20)}
	cfg := DefaultConfig()
	cfg.SortByArea = false

	_, err := NewPacker(cfg, newRNG(1)).Place(grids)
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Fatalf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeConfiguration)
	}
}

func TestPlaceReachableByShrinkingIsNotConfigurationError(t *testing.T) {
	// 52 cells at 20px is 1040px; three shrink steps bring it within the
	// 980px usable width.
	grids := []grid.Grid{solid("Grid_1", 52, 10, 20)}

	got, err := NewPacker(DefaultConfig(), newRNG(3)).Place(grids)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	g := got.Grids[0]
	if g.Width != 49 || g.Height != 7 {
		t.Errorf("placed size %dx%d, want 49x7", g.Width, g.Height)
	}
	if got.Outcomes[0].Shrinks != 3 {
		t.Errorf("shrinks = %d, want 3", got.Outcomes[0].Shrinks)
	}
	if got.Requests[0].Width != 52 {
		t.Errorf("request width = %d, want 52", got.Requests[0].Width)
	}
}

func TestPlaceCrowdedBatch(t *testing.T) {
	grids := generate(t, 7, 20, grid.Bounds{MinWidth: 15, MaxWidth: 20, MinHeight: 15, MaxHeight: 20})
	cfg := DefaultConfig()

	got, err := NewPacker(cfg, newRNG(8)).Place(grids)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeBatchFailure) {
			t.Fatalf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeBatchFailure)
		}
		if !errors.Has(err, errors.ErrCodePackingExhausted) {
			t.Errorf("batch failure does not carry %s: %v", errors.ErrCodePackingExhausted, err)
		}
		if got != nil {
			t.Errorf("failed batch returned a placement")
		}
		return
	}
	if err := Verify(got.Grids, cfg); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestPlaceWithoutShrinkFailsImmediately(t *testing.T) {
	// Two 80px squares can never share a 100px canvas.
	grids := []grid.Grid{solid("Grid_1", 8, 8, 10), solid("Grid_2", 8, 8, 10)}
	cfg := Config{CanvasWidth: 100, CanvasHeight: 100, MaxAttempts: 25, MinShrinkSize: 3}

	_, err := NewPacker(cfg, newRNG(1)).Place(grids)
	if !errors.Is(err, errors.ErrCodeBatchFailure) {
		t.Fatalf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeBatchFailure)
	}
	if !errors.Has(err, errors.ErrCodePackingExhausted) {
		t.Errorf("cause chain lacks %s: %v", errors.ErrCodePackingExhausted, err)
	}
}

func TestPlaceShrinksUntilItFits(t *testing.T) {
	// The 100x50 banner pins the top or bottom of the canvas, leaving a
	// strip 25 to 50px tall. The 60px square only fits once shrunk.
	grids := []grid.Grid{solid("Grid_1", 10, 5, 10), solid("Grid_2", 6, 6, 10)}
	cfg := Config{
		CanvasWidth:     100,
		CanvasHeight:    100,
		MaxAttempts:     500,
		ShrinkOnFailure: true,
		MaxShrinkCycles: 10,
		MinShrinkSize:   1,
		SortByArea:      true,
	}

	got, err := NewPacker(cfg, newRNG(11)).Place(grids)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if err := Verify(got.Grids, cfg); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	shrunk := got.Grids[1]
	if shrunk.Width >= 6 || got.Outcomes[1].Shrinks == 0 {
		t.Fatalf("Grid_2 placed at %dx%d after %d shrinks, want it shrunk", shrunk.Width, shrunk.Height, got.Outcomes[1].Shrinks)
	}
	if shrunk.Width != shrunk.Height {
		t.Errorf("shrinking a square produced %dx%d", shrunk.Width, shrunk.Height)
	}
	for r := range shrunk.Height {
		for c := range shrunk.Width {
			if shrunk.Cells[r][c] != grids[1].Cells[r][c] {
				t.Fatalf("cell %d,%d = %s, want top-left sub-matrix value %s", r, c, shrunk.Cells[r][c], grids[1].Cells[r][c])
			}
		}
	}
	if got.TotalShrinks() != got.Outcomes[1].Shrinks {
		t.Errorf("TotalShrinks = %d, want %d", got.TotalShrinks(), got.Outcomes[1].Shrinks)
	}
}

func TestShrinkRespectsFloor(t *testing.T) {
	p := NewPacker(Config{ShrinkOnFailure: true, MaxShrinkCycles: 10, MinShrinkSize: 3}, newRNG(1))

	g, ok := p.shrink(solid("Grid_1", 4, 3, 10), 0)
	if !ok {
		t.Fatal("expected 4x3 to shrink")
	}
	if g.Width != 3 || g.Height != 3 {
		t.Errorf("shrunk to %dx%d, want 3x3", g.Width, g.Height)
	}
	if _, ok := p.shrink(g, 1); ok {
		t.Error("3x3 shrunk below the floor")
	}
	if _, ok := p.shrink(solid("Grid_2", 2, 2, 10), 0); ok {
		t.Error("grid already below the floor was shrunk")
	}
	if _, ok := p.shrink(solid("Grid_3", 9, 9, 10), 10); ok {
		t.Error("shrink allowed past MaxShrinkCycles")
	}
}

func TestPlaceDeterministic(t *testing.T) {
	b := grid.Bounds{MinWidth: 3, MaxWidth: 10, MinHeight: 3, MaxHeight: 10}
	grids := generate(t, 5, 6, b)

	a, errA := NewPacker(DefaultConfig(), newRNG(42)).Place(grids)
	c, errC := NewPacker(DefaultConfig(), newRNG(42)).Place(grids)
	if errA != nil || errC != nil {
		t.Fatalf("Place: %v / %v", errA, errC)
	}
	if diff := cmp.Diff(a, c); diff != "" {
		t.Errorf("same seed, different placement (-first +second):\n%s", diff)
	}
}

func TestPlaceDoesNotMutateInput(t *testing.T) {
	grids := generate(t, 9, 5, grid.Bounds{MinWidth: 3, MaxWidth: 8, MinHeight: 3, MaxHeight: 8})
	grids[0].Position = &grid.Point{X: 1, Y: 1}
	before := make([]grid.Grid, len(grids))
	for i, g := range grids {
		before[i] = g.Clone()
	}

	got, err := NewPacker(DefaultConfig(), newRNG(1)).Place(grids)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if diff := cmp.Diff(before, grids); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
	got.Grids[1].Cells[0][0] = "changed"
	if grids[1].Cells[0][0] == "changed" {
		t.Error("placement shares cell storage with the input")
	}
}

func TestPlaceEmpty(t *testing.T) {
	got, err := NewPacker(DefaultConfig(), newRNG(1)).Place(nil)
	if err != nil {
		t.Fatalf("Place(nil): %v", err)
	}
	if len(got.Grids) != 0 {
		t.Errorf("placed %d grids from empty input", len(got.Grids))
	}
}

func TestOrderLargestFirst(t *testing.T) {
	grids := []grid.Grid{
		solid("small", 3, 3, 20),
		solid("large", 10, 10, 20),
		solid("tied_a", 5, 5, 20),
		solid("tied_b", 5, 5, 20),
	}
	p := NewPacker(DefaultConfig(), newRNG(1))
	if diff := cmp.Diff([]int{1, 2, 3, 0}, p.order(grids)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	p = NewPacker(Config{}, newRNG(1))
	if diff := cmp.Diff([]int{0, 1, 2, 3}, p.order(grids)); diff != "" {
		t.Errorf("unsorted order mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		tile int
		code errors.Code
	}{
		{"default", DefaultConfig(), 20, ""},
		{"zero canvas", Config{CanvasHeight: 10, MaxAttempts: 1, MinShrinkSize: 1}, 1, errors.ErrCodeInvalidConfig},
		{"negative margin", Config{CanvasWidth: 10, CanvasHeight: 10, Margin: -1, MaxAttempts: 1, MinShrinkSize: 1}, 1, errors.ErrCodeInvalidConfig},
		{"no attempts", Config{CanvasWidth: 10, CanvasHeight: 10, MinShrinkSize: 1}, 1, errors.ErrCodeInvalidConfig},
		{"tile too large", DefaultConfig(), 990, errors.ErrCodeConfiguration},
		{"tile exactly fits", DefaultConfig(), 980, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.tile)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Fatalf("code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestVerifyDetectsProblems(t *testing.T) {
	cfg := Config{CanvasWidth: 100, CanvasHeight: 100, Margin: 5}
	at := func(g grid.Grid, x, y int) grid.Grid {
		g.Position = &grid.Point{X: x, Y: y}
		return g
	}

	if err := Verify([]grid.Grid{solid("a", 2, 2, 10)}, cfg); err == nil {
		t.Error("unplaced grid accepted")
	}
	if err := Verify([]grid.Grid{at(solid("a", 2, 2, 10), 90, 0)}, cfg); err == nil {
		t.Error("grid leaving the canvas accepted")
	}
	// 20px squares 5px apart: padded rects [0,30) and [25,55) overlap.
	if err := Verify([]grid.Grid{at(solid("a", 2, 2, 10), 5, 5), at(solid("b", 2, 2, 10), 30, 5)}, cfg); err == nil {
		t.Error("grids closer than twice the margin accepted")
	}
	// Exactly 2*margin apart: padded rects touch along an edge.
	if err := Verify([]grid.Grid{at(solid("a", 2, 2, 10), 5, 5), at(solid("b", 2, 2, 10), 35, 5)}, cfg); err != nil {
		t.Errorf("touching padded rects rejected: %v", err)
	}
}
