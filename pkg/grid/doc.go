// Package grid provides the grid record and the grid content generator.
//
// A [Grid] is a height×width matrix of palette labels with a pixel tile size
// and, once the layout packer has run, a pixel position on the canvas. The
// [Generator] creates grids from size bounds:
//
//   - Width and height are drawn independently from a weighted distribution
//     that favors small sizes ([SizeWeighting]). Uniform sizing produces
//     canvases dominated by a few huge grids that crowd out smaller ones.
//   - The tile size is inversely proportional to the larger dimension, jittered
//     by a bounded multiplicative noise factor and clamped to the configured band.
//   - Cell colors come from a [ColorModel]. The default [Markov] model draws each
//     cell conditioned on an already generated neighbor, which yields coherent
//     color blobs instead of salt-and-pepper noise.
//
// Every strategy is a configuration value, so the historical variants of the
// generator (inverse power vs inverse log weighting, above vs random neighbor)
// are selected rather than re-implemented.
//
// # Determinism
//
// A Generator draws all randomness from the *rand.Rand it was built with.
// Identical seeds and bounds reproduce identical grids.
//
//	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
//	gen := grid.NewGenerator(grid.DefaultConfig(), rng)
//	g := gen.Create("Grid_1", grid.Bounds{MinWidth: 3, MaxWidth: 20, MinHeight: 3, MaxHeight: 20})
//
// # Statistics and transforms
//
// Grid methods compute the statistics the question layer asks about (counts,
// row/column presence, largest contiguous region, horizontal runs) and the
// copy-producing transforms (rotations, reflections, [ColorRowRule]). None of
// them mutate the receiver.
package grid
