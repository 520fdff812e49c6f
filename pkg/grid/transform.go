package grid

import "fmt"

// Rotate90 returns a copy rotated 90 degrees clockwise. The copy has no
// position; width and height are swapped.
func (g Grid) Rotate90() Grid {
	cells := newCells(g.Width, g.Height)
	for r := range g.Height {
		for c := range g.Width {
			cells[c][g.Height-1-r] = g.Cells[r][c]
		}
	}
	return g.derive(g.Height, g.Width, cells)
}

// Rotate180 returns a copy rotated by 180 degrees.
func (g Grid) Rotate180() Grid {
	cells := newCells(g.Height, g.Width)
	for r := range g.Height {
		for c := range g.Width {
			cells[g.Height-1-r][g.Width-1-c] = g.Cells[r][c]
		}
	}
	return g.derive(g.Width, g.Height, cells)
}

// Rotate270 returns a copy rotated 270 degrees clockwise.
func (g Grid) Rotate270() Grid {
	cells := newCells(g.Width, g.Height)
	for r := range g.Height {
		for c := range g.Width {
			cells[g.Width-1-c][r] = g.Cells[r][c]
		}
	}
	return g.derive(g.Height, g.Width, cells)
}

// ReflectHorizontal returns a copy mirrored left to right.
func (g Grid) ReflectHorizontal() Grid {
	cells := newCells(g.Height, g.Width)
	for r := range g.Height {
		for c := range g.Width {
			cells[r][g.Width-1-c] = g.Cells[r][c]
		}
	}
	return g.derive(g.Width, g.Height, cells)
}

// ReflectVertical returns a copy mirrored top to bottom.
func (g Grid) ReflectVertical() Grid {
	cells := newCells(g.Height, g.Width)
	for r := range g.Height {
		cells[g.Height-1-r] = append([]string(nil), g.Cells[r]...)
	}
	return g.derive(g.Width, g.Height, cells)
}

func (g Grid) derive(width, height int, cells [][]string) Grid {
	return Grid{
		Name:     g.Name,
		Width:    width,
		Height:   height,
		TileSize: g.TileSize,
		Cells:    cells,
	}
}

// ColorRowRule fills every row that contains Color entirely with Color.
type ColorRowRule struct {
	Color string
}

// Describe returns the natural-language statement of the rule.
func (r ColorRowRule) Describe() string {
	return fmt.Sprintf("If a tile has color %s, replace the whole row with the color %s.", r.Color, r.Color)
}

// Apply returns a transformed copy of g.
func (r ColorRowRule) Apply(g Grid) Grid {
	out := g.derive(g.Width, g.Height, cloneCells(g.Cells))
	for i, row := range out.Cells {
		hit := false
		for _, c := range row {
			if c == r.Color {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		for j := range row {
			out.Cells[i][j] = r.Color
		}
	}
	return out
}

// FormatCells renders cells as a nested list literal, e.g.
// [['Black', 'Red'], ['Red', 'Black']].
func FormatCells(cells [][]string) string {
	b := make([]byte, 0, 16*len(cells))
	b = append(b, '[')
	for i, row := range cells {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, '[')
		for j, c := range row {
			if j > 0 {
				b = append(b, ", "...)
			}
			b = append(b, '\'')
			b = append(b, c...)
			b = append(b, '\'')
		}
		b = append(b, ']')
	}
	b = append(b, ']')
	return string(b)
}
