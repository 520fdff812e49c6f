package question

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/gridtower/pkg/grid"
)

var simpleGenerators = []Generator{
	{"count_color_in_grid", KindSimple, func(rng *rand.Rand, s Scene) (QA, bool) {
		return CountColorInGrid(s.pickGrid(rng), s.pickColor(rng)), true
	}},
	{"total_color", KindSimple, func(rng *rand.Rand, s Scene) (QA, bool) {
		return TotalColor(s.Grids, s.pickColor(rng)), true
	}},
	{"compare_color", KindSimple, func(rng *rand.Rand, s Scene) (QA, bool) {
		a, b, ok := s.pickTwoGrids(rng)
		if !ok {
			return QA{}, false
		}
		return CompareColor(a, b, s.pickColor(rng)), true
	}},
	{"most_color", KindSimple, func(rng *rand.Rand, s Scene) (QA, bool) {
		return MostColor(s.Grids, s.pickColor(rng)), true
	}},
	{"color_present", KindSimple, func(rng *rand.Rand, s Scene) (QA, bool) {
		return ColorPresent(s.pickGrid(rng), s.pickColor(rng)), true
	}},
	{"compare_sizes", KindSimple, func(rng *rand.Rand, s Scene) (QA, bool) {
		a, b, ok := s.pickTwoGrids(rng)
		if !ok {
			return QA{}, false
		}
		return CompareSizes(a, b), true
	}},
	{"total_tiles", KindSimple, func(rng *rand.Rand, s Scene) (QA, bool) {
		return TotalTiles(s.Grids), true
	}},
	{"count_in_row", KindSimple, func(rng *rand.Rand, s Scene) (QA, bool) {
		g := s.pickGrid(rng)
		return CountInRow(g, rng.IntN(g.Height), s.pickColor(rng)), true
	}},
	{"count_in_column", KindSimple, func(rng *rand.Rand, s Scene) (QA, bool) {
		g := s.pickGrid(rng)
		return CountInColumn(g, rng.IntN(g.Width), s.pickColor(rng)), true
	}},
	{"rows_with_color", KindSimple, func(rng *rand.Rand, s Scene) (QA, bool) {
		return RowsWithColor(s.pickGrid(rng), s.pickColor(rng)), true
	}},
	{"columns_with_color", KindSimple, func(rng *rand.Rand, s Scene) (QA, bool) {
		return ColumnsWithColor(s.pickGrid(rng), s.pickColor(rng)), true
	}},
}

func CountColorInGrid(g grid.Grid, color string) QA {
	return QA{
		Question: fmt.Sprintf("How many %s tiles are in %s?", color, g.Name),
		Answer:   fmt.Sprintf("There are %d %s tiles in %s.", g.Count(color), color, g.Name),
	}
}

func TotalColor(grids []grid.Grid, color string) QA {
	total := 0
	for _, g := range grids {
		total += g.Count(color)
	}
	return QA{
		Question: fmt.Sprintf("How many %s tiles are there in all grids?", color),
		Answer:   fmt.Sprintf("There are a total of %d %s tiles across all grids.", total, color),
	}
}

func CompareColor(a, b grid.Grid, color string) QA {
	na, nb := a.Count(color), b.Count(color)
	cmp := "the same number of"
	switch {
	case na > nb:
		cmp = "more"
	case na < nb:
		cmp = "fewer"
	}
	return QA{
		Question: fmt.Sprintf("Does %s have more %s tiles than %s?", a.Name, color, b.Name),
		Answer: fmt.Sprintf("%s has %s %s tiles compared to %s. Specifically, %s has %d %s tiles, while %s has %d %s tiles.",
			a.Name, cmp, color, b.Name, a.Name, na, color, b.Name, nb, color),
	}
}

// MostColor names the grid with the most color cells; the first grid wins
// ties.
func MostColor(grids []grid.Grid, color string) QA {
	q := fmt.Sprintf("Which grid has the most %s tiles?", color)
	best, bestN := "", 0
	for _, g := range grids {
		if n := g.Count(color); n > bestN {
			best, bestN = g.Name, n
		}
	}
	if best == "" {
		return QA{q, fmt.Sprintf("No grid has any %s tiles. The color %s is not present in any of the grids.", color, color)}
	}
	return QA{q, fmt.Sprintf("%s has the most %s tiles with a total of %d %s tiles.", best, color, bestN, color)}
}

func ColorPresent(g grid.Grid, color string) QA {
	q := fmt.Sprintf("Is there any %s tile in %s?", color, g.Name)
	n := g.Count(color)
	if n == 0 {
		return QA{q, fmt.Sprintf("No, there are no %s tiles in %s.", color, g.Name)}
	}
	return QA{q, fmt.Sprintf("Yes, there are %s tiles in %s. Specifically, there are %d %s tiles in this grid.", color, g.Name, n, color)}
}

func CompareSizes(a, b grid.Grid) QA {
	q := fmt.Sprintf("Which grid is larger in terms of total tiles: %s or %s?", a.Name, b.Name)
	sa, sb := a.Area(), b.Area()
	switch {
	case sa > sb:
		return QA{q, fmt.Sprintf("%s is larger with %d tiles, compared to %s with %d tiles.", a.Name, sa, b.Name, sb)}
	case sb > sa:
		return QA{q, fmt.Sprintf("%s is larger with %d tiles, compared to %s with %d tiles.", b.Name, sb, a.Name, sa)}
	default:
		return QA{q, fmt.Sprintf("Both %s and %s have the same number of tiles: %d.", a.Name, b.Name, sa)}
	}
}

// TotalTiles sums cell counts and names the largest grid; the first grid wins
// ties.
func TotalTiles(grids []grid.Grid) QA {
	total, largest := 0, -1
	for i, g := range grids {
		total += g.Area()
		if largest < 0 || g.Area() > grids[largest].Area() {
			largest = i
		}
	}
	q := "How many total tiles are there across all grids, and which grid has the most tiles?"
	if largest < 0 {
		return QA{q, "There are no grids."}
	}
	return QA{q, fmt.Sprintf("There are %d tiles in total across all grids. The grid with the most tiles is %s with %d tiles.",
		total, grids[largest].Name, grids[largest].Area())}
}

// CountInRow asks about a 0-based row, phrased 1-based.
func CountInRow(g grid.Grid, row int, color string) QA {
	return QA{
		Question: fmt.Sprintf("How many %s tiles are in row %d of %s?", color, row+1, g.Name),
		Answer:   fmt.Sprintf("There are %d %s tiles in row %d of %s.", g.CountInRow(row, color), color, row+1, g.Name),
	}
}

// CountInColumn asks about a 0-based column, phrased 1-based.
func CountInColumn(g grid.Grid, col int, color string) QA {
	return QA{
		Question: fmt.Sprintf("How many %s tiles are in column %d of %s?", color, col+1, g.Name),
		Answer:   fmt.Sprintf("There are %d %s tiles in column %d of %s.", g.CountInColumn(col, color), color, col+1, g.Name),
	}
}

func RowsWithColor(g grid.Grid, color string) QA {
	return QA{
		Question: fmt.Sprintf("In how many rows of %s does the color %s appear?", g.Name, color),
		Answer:   fmt.Sprintf("The color %s appears in %d rows of %s.", color, g.RowsWith(color), g.Name),
	}
}

func ColumnsWithColor(g grid.Grid, color string) QA {
	return QA{
		Question: fmt.Sprintf("In how many columns of %s does the color %s appear?", g.Name, color),
		Answer:   fmt.Sprintf("The color %s appears in %d columns of %s.", color, g.ColumnsWith(color), g.Name),
	}
}
