package grid

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridtower/pkg/palette"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func TestSampleSizeFavorsSmall(t *testing.T) {
	weightings := map[string]SizeWeighting{
		"inverse power 1":   InversePower(1),
		"inverse power 0.5": InversePower(0.5),
		"inverse log 2":     InverseLog(2),
	}
	ranges := [][2]int{{3, 20}, {1, 2}, {15, 20}}

	for name, w := range weightings {
		for _, r := range ranges {
			lo, hi := r[0], r[1]
			rng := newRNG(7)
			counts := make(map[int]int)
			for range 20000 {
				s := SampleSize(rng, lo, hi, w)
				if s < lo || s > hi {
					t.Fatalf("%s: SampleSize(%d, %d) = %d out of range", name, lo, hi, s)
				}
				counts[s]++
			}
			if counts[lo] <= counts[hi] {
				t.Errorf("%s [%d,%d]: P(min)=%d not greater than P(max)=%d", name, lo, hi, counts[lo], counts[hi])
			}
		}
	}
}

func TestSampleSizeDegenerate(t *testing.T) {
	rng := newRNG(1)
	if got := SampleSize(rng, 5, 5, InversePower(1)); got != 5 {
		t.Errorf("SampleSize(5, 5) = %d, want 5", got)
	}
	if got := SampleSize(rng, 5, 4, nil); got != 5 {
		t.Errorf("SampleSize(5, 4) = %d, want 5", got)
	}
}

func TestSizeWeightsNormalized(t *testing.T) {
	w := SizeWeights(3, 7, InversePower(2))
	if len(w) != 5 {
		t.Fatalf("len = %d, want 5", len(w))
	}
	sum := 0.0
	for i, v := range w {
		sum += v
		if i > 0 && v >= w[i-1] {
			t.Errorf("weights not strictly decreasing at %d: %v", i, w)
		}
	}
	if sum < 0.999999 || sum > 1.000001 {
		t.Errorf("sum = %v, want 1", sum)
	}

	zero := SizeWeights(1, 3, func(int) float64 { return 0 })
	for _, v := range zero {
		if v < 0.33 || v > 0.34 {
			t.Errorf("degenerate weights should fall back to uniform: %v", zero)
		}
	}
}

func TestTileSizeFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TileNoise = 0

	tests := []struct {
		w, h int
		want int
	}{
		{4, 8, 20},   // 160/8 = 20
		{5, 4, 32},   // 160/5 = 32
		{3, 3, 50},   // 53 clamped to max
		{20, 20, 20}, // 8 clamped to min
	}
	rng := newRNG(3)
	for _, tt := range tests {
		if got := TileSizeFor(rng, tt.w, tt.h, cfg); got != tt.want {
			t.Errorf("TileSizeFor(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestTileSizeNoiseBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinTileSize, cfg.MaxTileSize = 1, 1000
	cfg.TileBudget = 100
	rng := newRNG(11)
	for range 1000 {
		got := TileSizeFor(rng, 1, 1, cfg)
		if got < 80 || got > 120 {
			t.Fatalf("TileSizeFor noise out of band: %d", got)
		}
	}
}

func TestCreate(t *testing.T) {
	cfg := DefaultConfig()
	gen := NewGenerator(cfg, newRNG(42))
	b := Bounds{MinWidth: 3, MaxWidth: 12, MinHeight: 2, MaxHeight: 9}

	for i := range 200 {
		g := gen.Create("Grid_1", b)
		if g.Width < b.MinWidth || g.Width > b.MaxWidth {
			t.Fatalf("grid %d width %d outside bounds", i, g.Width)
		}
		if g.Height < b.MinHeight || g.Height > b.MaxHeight {
			t.Fatalf("grid %d height %d outside bounds", i, g.Height)
		}
		if err := g.Validate(cfg.MinTileSize, cfg.MaxTileSize); err != nil {
			t.Fatalf("grid %d invalid: %v", i, err)
		}
		if g.Placed() {
			t.Fatal("freshly created grid must not have a position")
		}
		for _, row := range g.Cells {
			for _, c := range row {
				if !cfg.Palette.Contains(c) {
					t.Fatalf("cell label %q not in palette", c)
				}
			}
		}
	}
}

func TestCreateDeterministic(t *testing.T) {
	b := DefaultBounds()
	a := NewGenerator(DefaultConfig(), newRNG(99))
	c := NewGenerator(DefaultConfig(), newRNG(99))

	for range 10 {
		ga, gc := a.Create("Grid_1", b), c.Create("Grid_1", b)
		if diff := cmp.Diff(ga, gc); diff != "" {
			t.Fatalf("same seed produced different grids (-a +c):\n%s", diff)
		}
	}
}

func TestDominantColorIsMostCommon(t *testing.T) {
	gen := NewGenerator(DefaultConfig(), newRNG(5))
	counts := make(map[string]int)
	for range 200 {
		g := gen.Create("Grid_1", Bounds{MinWidth: 8, MaxWidth: 8, MinHeight: 8, MaxHeight: 8})
		for k, v := range g.Counts() {
			counts[k] += v
		}
	}
	dom := palette.Default().Dominant()
	for k, v := range counts {
		if k != dom && v >= counts[dom] {
			t.Errorf("%s (%d) at least as common as dominant %s (%d)", k, v, dom, counts[dom])
		}
	}
}

// meanRun returns the mean horizontal run length over grids.
func meanRun(grids []Grid) float64 {
	total, n := 0, 0
	for _, g := range grids {
		for _, r := range g.RunLengths() {
			total += r
			n++
		}
	}
	return float64(total) / float64(n)
}

func TestMarkovProducesSpatialCorrelation(t *testing.T) {
	p := palette.Default()
	const size, samples = 10, 300

	rng := newRNG(2024)
	markov := DefaultMarkov()
	var correlated []Grid
	marginal := make([]float64, p.Len())
	for range samples {
		g := Grid{Width: size, Height: size, Cells: markov.Fill(rng, p, size, size)}
		correlated = append(correlated, g)
		for k, v := range g.Counts() {
			marginal[p.Index(k)] += float64(v)
		}
	}

	baseline := Independent{Weights: marginal}
	var independent []Grid
	for range samples {
		independent = append(independent, Grid{Width: size, Height: size, Cells: baseline.Fill(rng, p, size, size)})
	}

	mc, mi := meanRun(correlated), meanRun(independent)
	if mc <= mi {
		t.Errorf("mean run length: markov %.3f <= independent %.3f", mc, mi)
	}
}

func TestMarkovNeighborPolicies(t *testing.T) {
	p := palette.Default()
	for _, n := range []NeighborPolicy{NeighborAbove, NeighborLeft, NeighborRandom} {
		m := DefaultMarkov()
		m.Neighbor = n
		cells := m.Fill(newRNG(1), p, 7, 5)
		if len(cells) != 5 || len(cells[0]) != 7 {
			t.Errorf("%s: got %dx%d cells", n, len(cells[0]), len(cells))
		}
	}
}

func TestTransitionWeights(t *testing.T) {
	p := palette.Default()
	m := DefaultMarkov()
	dom := p.DominantIndex()
	red := p.Index("Red")

	w := m.TransitionWeights(p, red)
	if w[red] != m.Self || w[dom] != m.Dominant || w[p.Index("Blue")] != m.Other {
		t.Errorf("unexpected transition row for Red: %v", w)
	}

	w = m.TransitionWeights(p, dom)
	if w[dom] != m.Dominant {
		t.Errorf("dominant row should use dominant weight, got %v", w[dom])
	}
}

func TestParseNeighborPolicy(t *testing.T) {
	for _, s := range []string{"above", "left", "random"} {
		n, ok := ParseNeighborPolicy(s)
		if !ok || n.String() != s {
			t.Errorf("ParseNeighborPolicy(%q) = %v, %v", s, n, ok)
		}
	}
	if _, ok := ParseNeighborPolicy("diagonal"); ok {
		t.Error("ParseNeighborPolicy(diagonal) should fail")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero min tile", func(c *Config) { c.MinTileSize = 0 }, true},
		{"inverted band", func(c *Config) { c.MaxTileSize = c.MinTileSize - 1 }, true},
		{"noise too large", func(c *Config) { c.TileNoise = 1 }, true},
		{"negative noise", func(c *Config) { c.TileNoise = -0.1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoundsValidate(t *testing.T) {
	if err := DefaultBounds().Validate(); err != nil {
		t.Errorf("default bounds invalid: %v", err)
	}
	if err := (Bounds{MinWidth: 0, MaxWidth: 3, MinHeight: 1, MaxHeight: 1}).Validate(); err == nil {
		t.Error("zero min width should fail")
	}
	if err := (Bounds{MinWidth: 5, MaxWidth: 3, MinHeight: 1, MaxHeight: 1}).Validate(); err == nil {
		t.Error("max < min should fail")
	}
}
