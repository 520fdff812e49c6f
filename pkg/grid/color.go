package grid

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/matzehuels/gridtower/pkg/palette"
)

// ColorModel fills a height×width cell matrix with palette labels.
type ColorModel interface {
	Fill(rng *rand.Rand, p palette.Palette, width, height int) [][]string
}

// NeighborPolicy selects which already generated neighbor conditions the
// next cell in a [Markov] fill.
type NeighborPolicy int

const (
	// NeighborAbove uses the cell above, or the left cell in the first row.
	NeighborAbove NeighborPolicy = iota
	// NeighborLeft uses the left cell, or the cell above in the first column.
	NeighborLeft
	// NeighborRandom picks uniformly among the available left and above cells.
	NeighborRandom
)

// String implements fmt.Stringer.
func (n NeighborPolicy) String() string {
	switch n {
	case NeighborAbove:
		return "above"
	case NeighborLeft:
		return "left"
	case NeighborRandom:
		return "random"
	}
	return "unknown"
}

// ParseNeighborPolicy maps "above", "left" or "random" to a policy.
func ParseNeighborPolicy(s string) (NeighborPolicy, bool) {
	switch s {
	case "above":
		return NeighborAbove, true
	case "left":
		return NeighborLeft, true
	case "random", "":
		return NeighborRandom, true
	}
	return 0, false
}

// Markov is a local color-correlation model. The first cell is drawn from a
// base distribution that puts BaseDominant mass on the dominant label and
// splits the rest evenly. Every later cell is drawn from a transition row
// keyed by a neighbor's label: weight Self for repeating the neighbor,
// Dominant for switching to the dominant label, Other for every other label.
// When the neighbor is itself dominant, Dominant applies.
type Markov struct {
	BaseDominant float64
	Self         float64
	Dominant     float64
	Other        float64
	Neighbor     NeighborPolicy
}

// DefaultMarkov returns the transition weights the generator has always used:
// 60% dominant for the first cell, then 3:6:1 for self:dominant:other.
func DefaultMarkov() Markov {
	return Markov{
		BaseDominant: 0.6,
		Self:         3,
		Dominant:     6,
		Other:        1,
		Neighbor:     NeighborRandom,
	}
}

// BaseWeights returns the first-cell distribution over p.
func (m Markov) BaseWeights(p palette.Palette) []float64 {
	return dominantWeights(p, m.BaseDominant)
}

// TransitionWeights returns the unnormalized transition row for a neighbor at
// palette index from.
func (m Markov) TransitionWeights(p palette.Palette, from int) []float64 {
	dom := p.DominantIndex()
	w := make([]float64, p.Len())
	for j := range w {
		switch j {
		case dom:
			w[j] = m.Dominant
		case from:
			w[j] = m.Self
		default:
			w[j] = m.Other
		}
	}
	return w
}

// Fill implements ColorModel.
func (m Markov) Fill(rng *rand.Rand, p palette.Palette, width, height int) [][]string {
	base := distuv.NewCategorical(m.BaseWeights(p), rng)
	rows := make([]distuv.Categorical, p.Len())
	for i := range rows {
		rows[i] = distuv.NewCategorical(m.TransitionWeights(p, i), rng)
	}

	idx := make([][]int, height)
	for r := range idx {
		idx[r] = make([]int, width)
	}
	cells := newCells(height, width)
	for r := range height {
		for c := range width {
			var k int
			if r == 0 && c == 0 {
				k = int(base.Rand())
			} else {
				from := m.neighbor(rng, idx, r, c)
				k = int(rows[from].Rand())
			}
			idx[r][c] = k
			cells[r][c] = p.Name(k)
		}
	}
	return cells
}

// neighbor returns the palette index of the conditioning neighbor of r, c.
// At least one of left/above exists because (0,0) is handled by the caller.
func (m Markov) neighbor(rng *rand.Rand, idx [][]int, r, c int) int {
	hasLeft, hasAbove := c > 0, r > 0
	switch {
	case !hasAbove:
		return idx[r][c-1]
	case !hasLeft:
		return idx[r-1][c]
	}
	switch m.Neighbor {
	case NeighborLeft:
		return idx[r][c-1]
	case NeighborRandom:
		if rng.IntN(2) == 0 {
			return idx[r][c-1]
		}
		return idx[r-1][c]
	default:
		return idx[r-1][c]
	}
}

// Independent samples every cell i.i.d. When Weights is set (one entry per
// palette color) it is used as the distribution; otherwise Dominant mass goes
// to the dominant label and the rest is split evenly. It is the baseline the
// correlated model is measured against.
type Independent struct {
	Dominant float64
	Weights  []float64
}

// Fill implements ColorModel.
func (m Independent) Fill(rng *rand.Rand, p palette.Palette, width, height int) [][]string {
	w := m.Weights
	if len(w) != p.Len() {
		w = dominantWeights(p, m.Dominant)
	}
	dist := distuv.NewCategorical(w, rng)
	cells := newCells(height, width)
	for r := range height {
		for c := range width {
			cells[r][c] = p.Name(int(dist.Rand()))
		}
	}
	return cells
}

// dominantWeights puts mass d on the dominant label and spreads 1-d evenly.
func dominantWeights(p palette.Palette, d float64) []float64 {
	d = max(0, min(d, 1))
	n := p.Len()
	w := make([]float64, n)
	rest := (1 - d) / float64(n-1)
	for i := range w {
		w[i] = rest
	}
	w[p.DominantIndex()] = d
	return w
}
