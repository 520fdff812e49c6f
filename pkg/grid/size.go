package grid

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// SizeWeighting returns the relative sampling weight of a candidate size,
// given its offset from the lower bound (0 for the minimum). Weights need not
// be normalized but must be non-negative.
type SizeWeighting func(offset int) float64

// InversePower weights a size by 1/(offset+1)^p. p=1 is the classic 1/size
// weighting; larger p biases harder toward small grids.
func InversePower(p float64) SizeWeighting {
	return func(offset int) float64 {
		return 1 / math.Pow(float64(offset+1), p)
	}
}

// InverseLog weights a size by 1/ln(offset+c). c must exceed 1; smaller
// values are replaced by e.
func InverseLog(c float64) SizeWeighting {
	if c <= 1 {
		c = math.E
	}
	return func(offset int) float64 {
		return 1 / math.Log(float64(offset)+c)
	}
}

// Uniform weights every size equally.
func Uniform() SizeWeighting {
	return func(int) float64 { return 1 }
}

// SizeWeights returns the normalized weights for sizes lo..hi inclusive.
// A nil weighting or a degenerate (all-zero) result falls back to uniform.
func SizeWeights(lo, hi int, w SizeWeighting) []float64 {
	n := hi - lo + 1
	if n < 1 {
		return nil
	}
	weights := make([]float64, n)
	for i := range weights {
		if w == nil {
			weights[i] = 1
			continue
		}
		weights[i] = max(0, w(i))
	}
	sum := floats.Sum(weights)
	if sum <= 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		for i := range weights {
			weights[i] = 1
		}
		sum = float64(n)
	}
	floats.Scale(1/sum, weights)
	return weights
}

// SampleSize draws a size from lo..hi inclusive using w. When lo >= hi it
// returns lo without consuming randomness.
func SampleSize(rng *rand.Rand, lo, hi int, w SizeWeighting) int {
	if hi <= lo {
		return lo
	}
	c := distuv.NewCategorical(SizeWeights(lo, hi, w), rng)
	return lo + int(c.Rand())
}
