// Package question turns a packed set of grids into question/answer pairs.
//
// Generators come in three kinds. Simple generators ask about one color in
// one or two grids. Complex generators ask for a transformed grid or a
// structural property such as the largest single-color region. Aggregate
// generators summarize all grids at once. A [Composer] draws a random mix of
// the three kinds and joins them into one meta question.
//
// Every generator is a pure function of its random stream and the [Scene], so
// a fixed seed reproduces the same questions.
package question

import (
	"math/rand/v2"

	"github.com/matzehuels/gridtower/pkg/grid"
	"github.com/matzehuels/gridtower/pkg/palette"
)

// QA is one question with its answer.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Kind groups generators for the composer's per-kind quotas.
type Kind int

const (
	KindSimple Kind = iota
	KindComplex
	KindAggregate
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindComplex:
		return "complex"
	case KindAggregate:
		return "aggregate"
	default:
		return "unknown"
	}
}

// Scene is what questions are asked about: the placed grids and the palette
// their cells are drawn from.
type Scene struct {
	Grids   []grid.Grid
	Palette palette.Palette
}

// Generator produces one question about a scene. Ask returns false when the
// scene cannot support the question, e.g. a comparison with a single grid.
type Generator struct {
	Name string
	Kind Kind
	Ask  func(rng *rand.Rand, s Scene) (QA, bool)
}

// Generators returns all built-in generators of kind k, in a fixed order.
func Generators(k Kind) []Generator {
	var out []Generator
	for _, g := range builtin {
		if g.Kind == k {
			out = append(out, g)
		}
	}
	return out
}

var builtin = append(append(append([]Generator(nil), simpleGenerators...), complexGenerators...), aggregateGenerators...)

func (s Scene) pickGrid(rng *rand.Rand) grid.Grid {
	return s.Grids[rng.IntN(len(s.Grids))]
}

// pickTwoGrids returns two distinct grids; ok is false with fewer than two.
func (s Scene) pickTwoGrids(rng *rand.Rand) (a, b grid.Grid, ok bool) {
	if len(s.Grids) < 2 {
		return grid.Grid{}, grid.Grid{}, false
	}
	i := rng.IntN(len(s.Grids))
	j := rng.IntN(len(s.Grids) - 1)
	if j >= i {
		j++
	}
	return s.Grids[i], s.Grids[j], true
}

func (s Scene) pickColor(rng *rand.Rand) string {
	return s.Palette.Name(rng.IntN(s.Palette.Len()))
}

// pickTwoColors returns two distinct palette labels.
func (s Scene) pickTwoColors(rng *rand.Rand) (a, b string, ok bool) {
	n := s.Palette.Len()
	if n < 2 {
		return "", "", false
	}
	i := rng.IntN(n)
	j := rng.IntN(n - 1)
	if j >= i {
		j++
	}
	return s.Palette.Name(i), s.Palette.Name(j), true
}

// totals returns per-label counts over all grids.
func (s Scene) totals() map[string]int {
	out := make(map[string]int)
	for _, g := range s.Grids {
		for c, n := range g.Counts() {
			out[c] += n
		}
	}
	return out
}

// argmax returns the label with the highest count. Ties resolve to the label
// that comes first in palette order; labels outside the palette are ignored.
func (s Scene) argmax(counts map[string]int) (string, int) {
	best, bestN := "", -1
	for _, name := range s.Palette.Names() {
		if n := counts[name]; n > bestN {
			best, bestN = name, n
		}
	}
	return best, bestN
}
