package grid

import "slices"

// Count returns the number of cells labeled color.
func (g Grid) Count(color string) int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c == color {
				n++
			}
		}
	}
	return n
}

// Counts returns the number of cells per label.
func (g Grid) Counts() map[string]int {
	out := make(map[string]int)
	for _, row := range g.Cells {
		for _, c := range row {
			out[c]++
		}
	}
	return out
}

// Present reports whether any cell is labeled color.
func (g Grid) Present(color string) bool {
	for _, row := range g.Cells {
		if slices.Contains(row, color) {
			return true
		}
	}
	return false
}

// CountInRow returns the number of color cells in row (0-based).
func (g Grid) CountInRow(row int, color string) int {
	n := 0
	for _, c := range g.Cells[row] {
		if c == color {
			n++
		}
	}
	return n
}

// CountInColumn returns the number of color cells in col (0-based).
func (g Grid) CountInColumn(col int, color string) int {
	n := 0
	for _, row := range g.Cells {
		if row[col] == color {
			n++
		}
	}
	return n
}

// RowsWith returns how many rows contain color at least once.
func (g Grid) RowsWith(color string) int {
	n := 0
	for _, row := range g.Cells {
		if slices.Contains(row, color) {
			n++
		}
	}
	return n
}

// ColumnsWith returns how many columns contain color at least once.
func (g Grid) ColumnsWith(color string) int {
	n := 0
	for c := range g.Width {
		for r := range g.Height {
			if g.Cells[r][c] == color {
				n++
				break
			}
		}
	}
	return n
}

// UniqueColors returns the distinct labels in first-seen row-major order.
func (g Grid) UniqueColors() []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range g.Cells {
		for _, c := range row {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// PairCount returns how often a first cell is immediately followed by a
// second cell to its right.
func (g Grid) PairCount(first, second string) int {
	n := 0
	for _, row := range g.Cells {
		for c := 0; c+1 < len(row); c++ {
			if row[c] == first && row[c+1] == second {
				n++
			}
		}
	}
	return n
}

// RunLengths returns the lengths of maximal horizontal same-color runs, row
// by row, left to right.
func (g Grid) RunLengths() []int {
	var runs []int
	for _, row := range g.Cells {
		if len(row) == 0 {
			continue
		}
		n := 1
		for c := 1; c < len(row); c++ {
			if row[c] == row[c-1] {
				n++
				continue
			}
			runs = append(runs, n)
			n = 1
		}
		runs = append(runs, n)
	}
	return runs
}

// LargestRegion returns the size and label of the largest 4-connected
// single-color region. Ties keep the region found first in row-major order.
func (g Grid) LargestRegion() (area int, color string) {
	visited := make([][]bool, g.Height)
	for r := range visited {
		visited[r] = make([]bool, g.Width)
	}
	var stack [][2]int
	for r := range g.Height {
		for c := range g.Width {
			if visited[r][c] {
				continue
			}
			label := g.Cells[r][c]
			size := 0
			stack = append(stack[:0], [2]int{r, c})
			visited[r][c] = true
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				size++
				for _, d := range [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}} {
					nr, nc := cur[0]+d[0], cur[1]+d[1]
					if nr < 0 || nr >= g.Height || nc < 0 || nc >= g.Width {
						continue
					}
					if visited[nr][nc] || g.Cells[nr][nc] != label {
						continue
					}
					visited[nr][nc] = true
					stack = append(stack, [2]int{nr, nc})
				}
			}
			if size > area {
				area, color = size, label
			}
		}
	}
	return area, color
}

// IsDiagonalSymmetric reports whether a square grid equals its transpose.
// Non-square grids are never symmetric.
func (g Grid) IsDiagonalSymmetric() bool {
	if g.Width != g.Height {
		return false
	}
	for r := range g.Height {
		for c := r + 1; c < g.Width; c++ {
			if g.Cells[r][c] != g.Cells[c][r] {
				return false
			}
		}
	}
	return true
}

// IsCheckerboard reports whether the grid uses exactly two labels that
// alternate on every horizontal and vertical step.
func (g Grid) IsCheckerboard() bool {
	if len(g.UniqueColors()) != 2 {
		return false
	}
	for r := range g.Height {
		for c := range g.Width {
			if c+1 < g.Width && g.Cells[r][c] == g.Cells[r][c+1] {
				return false
			}
			if r+1 < g.Height && g.Cells[r][c] == g.Cells[r+1][c] {
				return false
			}
		}
	}
	return true
}

// Corners returns the top-left, top-right, bottom-left and bottom-right labels.
func (g Grid) Corners() [4]string {
	last := g.Height - 1
	return [4]string{
		g.Cells[0][0],
		g.Cells[0][g.Width-1],
		g.Cells[last][0],
		g.Cells[last][g.Width-1],
	}
}
