package grid

import (
	"fmt"

	"github.com/matzehuels/gridtower/pkg/errors"
)

// Point is a pixel-space coordinate; (0,0) is the top-left canvas corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is a rectangular matrix of colored cells with a pixel tile size.
// Position is nil until the layout packer assigns it.
type Grid struct {
	Name     string     `json:"name"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	TileSize int        `json:"tile_size"`
	Cells    [][]string `json:"cells"`
	Position *Point     `json:"position,omitempty"`
}

// Placed reports whether the grid has a canvas position.
func (g Grid) Placed() bool { return g.Position != nil }

// Footprint returns the pixel width and height of the grid.
func (g Grid) Footprint() (w, h int) {
	return g.Width * g.TileSize, g.Height * g.TileSize
}

// Area returns the number of cells.
func (g Grid) Area() int { return g.Width * g.Height }

// At returns the label at row, col.
func (g Grid) At(row, col int) string { return g.Cells[row][col] }

// Clone returns a deep copy, including cells and position.
func (g Grid) Clone() Grid {
	out := g
	out.Cells = cloneCells(g.Cells)
	if g.Position != nil {
		p := *g.Position
		out.Position = &p
	}
	return out
}

// Crop returns a copy limited to the top-left width×height cells, without a
// position. It is how the packer shrinks a grid that did not fit: the cells
// keep their spatial correlation because they are a sub-matrix of the
// original. Dimensions larger than the grid are clamped.
func (g Grid) Crop(width, height int) Grid {
	width = max(1, min(width, g.Width))
	height = max(1, min(height, g.Height))
	cells := make([][]string, height)
	for r := range height {
		cells[r] = append([]string(nil), g.Cells[r][:width]...)
	}
	return Grid{
		Name:     g.Name,
		Width:    width,
		Height:   height,
		TileSize: g.TileSize,
		Cells:    cells,
	}
}

// Validate checks the structural invariants of g: positive dimensions, a cell
// matrix matching them, and a tile size inside [minTile, maxTile].
func (g Grid) Validate(minTile, maxTile int) error {
	if g.Width < 1 || g.Height < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "grid %s: dimensions %dx%d must be positive", g.Name, g.Width, g.Height)
	}
	if g.TileSize < minTile || g.TileSize > maxTile {
		return errors.New(errors.ErrCodeInvalidInput, "grid %s: tile size %d outside [%d, %d]", g.Name, g.TileSize, minTile, maxTile)
	}
	if len(g.Cells) != g.Height {
		return errors.New(errors.ErrCodeInvalidInput, "grid %s: %d rows, want %d", g.Name, len(g.Cells), g.Height)
	}
	for r, row := range g.Cells {
		if len(row) != g.Width {
			return errors.New(errors.ErrCodeInvalidInput, "grid %s: row %d has %d cells, want %d", g.Name, r, len(row), g.Width)
		}
	}
	return nil
}

// String implements fmt.Stringer.
func (g Grid) String() string {
	if g.Position != nil {
		return fmt.Sprintf("%s(%dx%d@%dpx at %d,%d)", g.Name, g.Width, g.Height, g.TileSize, g.Position.X, g.Position.Y)
	}
	return fmt.Sprintf("%s(%dx%d@%dpx)", g.Name, g.Width, g.Height, g.TileSize)
}

// Bounds are the inclusive size ranges a grid is drawn from.
type Bounds struct {
	MinWidth  int `json:"min_width" toml:"min_width" yaml:"min_width" validate:"gte=1"`
	MaxWidth  int `json:"max_width" toml:"max_width" yaml:"max_width" validate:"gtefield=MinWidth"`
	MinHeight int `json:"min_height" toml:"min_height" yaml:"min_height" validate:"gte=1"`
	MaxHeight int `json:"max_height" toml:"max_height" yaml:"max_height" validate:"gtefield=MinHeight"`
}

// DefaultBounds are the size bounds the orchestrator starts from.
func DefaultBounds() Bounds {
	return Bounds{MinWidth: 3, MaxWidth: 20, MinHeight: 3, MaxHeight: 20}
}

// Validate checks 1 <= min <= max on both axes.
func (b Bounds) Validate() error {
	if b.MinWidth < 1 || b.MinHeight < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "minimum grid size must be at least 1, got %dx%d", b.MinWidth, b.MinHeight)
	}
	if b.MaxWidth < b.MinWidth {
		return errors.New(errors.ErrCodeInvalidInput, "max_width %d < min_width %d", b.MaxWidth, b.MinWidth)
	}
	if b.MaxHeight < b.MinHeight {
		return errors.New(errors.ErrCodeInvalidInput, "max_height %d < min_height %d", b.MaxHeight, b.MinHeight)
	}
	return nil
}

func cloneCells(cells [][]string) [][]string {
	if cells == nil {
		return nil
	}
	out := make([][]string, len(cells))
	for i, row := range cells {
		out[i] = append([]string(nil), row...)
	}
	return out
}

func newCells(height, width int) [][]string {
	cells := make([][]string, height)
	for r := range cells {
		cells[r] = make([]string, width)
	}
	return cells
}
