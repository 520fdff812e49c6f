package question

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/gridtower/pkg/grid"
)

var aggregateGenerators = []Generator{
	{"grid_count", KindAggregate, always(GridCount)},
	{"most_common_color", KindAggregate, always(MostCommonColor)},
	{"color_entropy", KindAggregate, always(ColorEntropy)},
	{"square_grids", KindAggregate, always(SquareGrids)},
	{"total_area", KindAggregate, always(TotalArea)},
	{"corner_color", KindAggregate, always(CornerColor)},
	{"diagonal_symmetry", KindAggregate, always(DiagonalSymmetry)},
	{"checkerboards", KindAggregate, always(Checkerboards)},
	{"dominant_share", KindAggregate, always(DominantShare)},
}

func always(f func(Scene) QA) func(*rand.Rand, Scene) (QA, bool) {
	return func(_ *rand.Rand, s Scene) (QA, bool) {
		if len(s.Grids) == 0 {
			return QA{}, false
		}
		return f(s), true
	}
}

func GridCount(s Scene) QA {
	return QA{"How many grids do you see?", fmt.Sprintf("There are %d grids visible in the image.", len(s.Grids))}
}

func MostCommonColor(s Scene) QA {
	color, n := s.argmax(s.totals())
	return QA{
		Question: "What is the most common color across all grids?",
		Answer:   fmt.Sprintf("The most common color across all grids is %s with %d occurrences.", color, n),
	}
}

// ColorEntropy sums the Shannon entropy, in bits, of each grid's color
// distribution.
func ColorEntropy(s Scene) QA {
	total := 0.0
	for _, g := range s.Grids {
		total += entropyBits(g)
	}
	return QA{
		Question: "What is the 'color entropy' (measure of color disorder) across all grids?",
		Answer:   fmt.Sprintf("The 'color entropy' (measure of color disorder) across all grids is %.2f.", total),
	}
}

func entropyBits(g grid.Grid) float64 {
	counts := g.Counts()
	p := make([]float64, 0, len(counts))
	for _, n := range counts {
		p = append(p, float64(n))
	}
	sum := floats.Sum(p)
	if sum == 0 {
		return 0
	}
	floats.Scale(1/sum, p)
	return stat.Entropy(p) / math.Ln2
}

func SquareGrids(s Scene) QA {
	n := 0
	for _, g := range s.Grids {
		if g.Width == g.Height {
			n++
		}
	}
	return QA{
		Question: "How many grids are square (equal width and height)?",
		Answer:   fmt.Sprintf("There are %d square grids (equal width and height).", n),
	}
}

func TotalArea(s Scene) QA {
	n := 0
	for _, g := range s.Grids {
		n += g.Area()
	}
	return QA{
		Question: "What is the total area of all grids combined?",
		Answer:   fmt.Sprintf("The total area of all grids combined is %d tiles.", n),
	}
}

func CornerColor(s Scene) QA {
	counts := make(map[string]int)
	for _, g := range s.Grids {
		for _, c := range g.Corners() {
			counts[c]++
		}
	}
	color, _ := s.argmax(counts)
	return QA{
		Question: "What is the most common color in the corners of all grids?",
		Answer:   fmt.Sprintf("The most common color in the corners of all grids is %s.", color),
	}
}

func DiagonalSymmetry(s Scene) QA {
	n := 0
	for _, g := range s.Grids {
		if g.IsDiagonalSymmetric() {
			n++
		}
	}
	return QA{
		Question: "How many grids have a diagonal symmetry?",
		Answer:   fmt.Sprintf("%d grids have a diagonal symmetry.", n),
	}
}

func Checkerboards(s Scene) QA {
	n := 0
	for _, g := range s.Grids {
		if g.IsCheckerboard() {
			n++
		}
	}
	return QA{
		Question: "How many grids have a 'checkerboard' pattern (alternating colors in a regular pattern)?",
		Answer:   fmt.Sprintf("%d grids have a 'checkerboard' pattern (alternating colors in a regular pattern).", n),
	}
}

// DominantShare reports the percentage of all cells carrying the palette's
// dominant label.
func DominantShare(s Scene) QA {
	d := s.Palette.Dominant()
	hit, all := 0, 0
	for _, g := range s.Grids {
		hit += g.Count(d)
		all += g.Area()
	}
	pct := 0.0
	if all > 0 {
		pct = 100 * float64(hit) / float64(all)
	}
	return QA{
		Question: fmt.Sprintf("What percentage of all tiles are %s?", d),
		Answer:   fmt.Sprintf("%.2f%% of all tiles are %s (%d of %d).", pct, d, hit, all),
	}
}
