package grid

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fixture builds a grid from rows of single-letter labels.
func fixture(rows ...string) Grid {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		for _, ch := range r {
			cells[i] = append(cells[i], string(ch))
		}
	}
	return Grid{Name: "Grid_1", Width: len(cells[0]), Height: len(cells), TileSize: 20, Cells: cells}
}

func TestCounts(t *testing.T) {
	g := fixture(
		"KRR",
		"KKB",
		"RKK",
	)

	if got := g.Count("K"); got != 5 {
		t.Errorf("Count(K) = %d, want 5", got)
	}
	if got := g.CountInRow(0, "R"); got != 2 {
		t.Errorf("CountInRow(0, R) = %d, want 2", got)
	}
	if got := g.CountInColumn(0, "K"); got != 2 {
		t.Errorf("CountInColumn(0, K) = %d, want 2", got)
	}
	if got := g.RowsWith("R"); got != 2 {
		t.Errorf("RowsWith(R) = %d, want 2", got)
	}
	if got := g.ColumnsWith("B"); got != 1 {
		t.Errorf("ColumnsWith(B) = %d, want 1", got)
	}
	if g.Present("Y") {
		t.Error("Present(Y) = true, want false")
	}
	if got := g.UniqueColors(); !slices.Equal(got, []string{"K", "R", "B"}) {
		t.Errorf("UniqueColors() = %v", got)
	}
	if got := g.PairCount("K", "K"); got != 2 {
		t.Errorf("PairCount(K, K) = %d, want 2", got)
	}
	if got := g.Corners(); got != [4]string{"K", "R", "R", "K"} {
		t.Errorf("Corners() = %v", got)
	}
}

func TestRunLengths(t *testing.T) {
	g := fixture(
		"AAB",
		"CCC",
	)
	if diff := cmp.Diff([]int{2, 1, 3}, g.RunLengths()); diff != "" {
		t.Errorf("RunLengths mismatch (-want +got):\n%s", diff)
	}
}

func TestLargestRegion(t *testing.T) {
	tests := []struct {
		name      string
		grid      Grid
		wantArea  int
		wantColor string
	}{
		{"single cell", fixture("A"), 1, "A"},
		{"snake", fixture("AAB", "BAB", "BAA"), 5, "A"},
		{"diagonal does not connect", fixture("AB", "BA"), 1, "A"},
		{"tie keeps first", fixture("AABB"), 2, "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			area, color := tt.grid.LargestRegion()
			if area != tt.wantArea || color != tt.wantColor {
				t.Errorf("LargestRegion() = %d %s, want %d %s", area, color, tt.wantArea, tt.wantColor)
			}
		})
	}
}

func TestSymmetryAndCheckerboard(t *testing.T) {
	if !fixture("AB", "BA").IsCheckerboard() {
		t.Error("AB/BA should be a checkerboard")
	}
	if fixture("AB", "AB").IsCheckerboard() {
		t.Error("AB/AB is not a checkerboard")
	}
	if fixture("ABC", "BCA").IsCheckerboard() {
		t.Error("three colors cannot form a checkerboard")
	}
	if !fixture("AB", "BC").IsDiagonalSymmetric() {
		t.Error("AB/BC should be diagonally symmetric")
	}
	if fixture("AB", "CA").IsDiagonalSymmetric() {
		t.Error("AB/CA is not diagonally symmetric")
	}
	if fixture("ABA").IsDiagonalSymmetric() {
		t.Error("non-square grids are never symmetric")
	}
}

func TestCrop(t *testing.T) {
	g := fixture(
		"ABC",
		"DEF",
		"GHI",
	)
	g.Position = &Point{X: 10, Y: 10}

	c := g.Crop(2, 2)
	if c.Width != 2 || c.Height != 2 || c.Position != nil {
		t.Fatalf("Crop(2, 2) = %v", c)
	}
	if diff := cmp.Diff(fixture("AB", "DE").Cells, c.Cells); diff != "" {
		t.Errorf("Crop cells mismatch (-want +got):\n%s", diff)
	}

	c.Cells[0][0] = "Z"
	if g.Cells[0][0] != "A" {
		t.Error("Crop must not alias the original cells")
	}

	if big := g.Crop(10, 0); big.Width != 3 || big.Height != 1 {
		t.Errorf("Crop should clamp dimensions, got %dx%d", big.Width, big.Height)
	}
}

func TestClone(t *testing.T) {
	g := fixture("AB")
	g.Position = &Point{X: 1, Y: 2}
	c := g.Clone()
	c.Cells[0][0] = "Z"
	c.Position.X = 99
	if g.Cells[0][0] != "A" || g.Position.X != 1 {
		t.Error("Clone must deep-copy cells and position")
	}
}

func TestValidate(t *testing.T) {
	g := fixture("AB", "CD")
	if err := g.Validate(10, 50); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
	g.TileSize = 5
	if err := g.Validate(10, 50); err == nil {
		t.Error("tile size below band should fail")
	}
	g = fixture("AB", "CD")
	g.Cells[1] = g.Cells[1][:1]
	if err := g.Validate(10, 50); err == nil {
		t.Error("ragged cells should fail")
	}
}
