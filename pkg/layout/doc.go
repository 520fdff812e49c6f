// Package layout packs grids onto a fixed-size canvas without overlap.
//
// The [Packer] assigns each grid a pixel position by randomized placement:
// for every grid (largest first when [Config.SortByArea] is set) it draws
// uniformly random top-left corners until the grid's margin-padded footprint
// neither leaves the canvas nor intersects an already placed padded footprint.
// Rectangles that merely touch do not overlap.
//
// When a grid exhausts [Config.MaxAttempts] tries, the packer shrinks a working
// copy by one cell on each axis (never below [Config.MinShrinkSize]) and tries
// again, up to [Config.MaxShrinkCycles] times. With shrinking disabled, or once
// the cycles run out, the whole batch fails.
//
// # Failures
//
// Place returns either a fully positioned [Placement] or an error carrying one
// of two codes from pkg/errors:
//
//   - CONFIGURATION_ERROR: a grid cannot fit the canvas even alone at the
//     smallest size shrinking could reach. Reported before any random tries.
//   - BATCH_FAILURE: some grid could not be placed; the cause chain carries the
//     PACKING_EXHAUSTED error for that grid.
//
// Partial placements are never returned. Inputs are never mutated: the packer
// works on copies and keeps the requested sizes in [Placement.Requests].
package layout
