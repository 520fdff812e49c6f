package question

import (
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/gridtower/pkg/errors"
)

// MetaPrefix starts every composed question.
const MetaPrefix = "Answer the following questions about the grids: "

// Config sets how many questions of each kind a composed datum carries. The
// counts are drawn uniformly from the inclusive ranges.
type Config struct {
	SimpleMin    int `json:"simple_min"`
	SimpleMax    int `json:"simple_max"`
	ComplexMin   int `json:"complex_min"`
	ComplexMax   int `json:"complex_max"`
	AggregateMax int `json:"aggregate_max"`
}

// DefaultConfig asks 3-5 simple, 1-2 complex and up to 1 aggregate question.
func DefaultConfig() Config {
	return Config{SimpleMin: 3, SimpleMax: 5, ComplexMin: 1, ComplexMax: 2, AggregateMax: 1}
}

// SetDefaults replaces an all-zero config with DefaultConfig.
func (c *Config) SetDefaults() {
	if *c == (Config{}) {
		*c = DefaultConfig()
	}
}

// Validate checks that ranges are ordered and at least one question can be
// asked.
func (c Config) Validate() error {
	if c.SimpleMin < 0 || c.ComplexMin < 0 || c.AggregateMax < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "question counts must be non-negative")
	}
	if c.SimpleMax < c.SimpleMin {
		return errors.New(errors.ErrCodeInvalidConfig, "simple_max %d < simple_min %d", c.SimpleMax, c.SimpleMin)
	}
	if c.ComplexMax < c.ComplexMin {
		return errors.New(errors.ErrCodeInvalidConfig, "complex_max %d < complex_min %d", c.ComplexMax, c.ComplexMin)
	}
	if c.SimpleMax+c.ComplexMax+c.AggregateMax == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "question config asks no questions")
	}
	return nil
}

// Composer draws questions from the built-in generators.
type Composer struct {
	cfg  Config
	pool map[Kind][]Generator
}

// NewComposer returns a composer using all built-in generators.
func NewComposer(cfg Config) *Composer {
	cfg.SetDefaults()
	return &Composer{
		cfg: cfg,
		pool: map[Kind][]Generator{
			KindSimple:    Generators(KindSimple),
			KindComplex:   Generators(KindComplex),
			KindAggregate: Generators(KindAggregate),
		},
	}
}

// Compose returns the meta question with its joined answer, plus the
// individual pairs in the order they were asked.
func (c *Composer) Compose(rng *rand.Rand, s Scene) (QA, []QA, error) {
	if len(s.Grids) == 0 {
		return QA{}, nil, errors.New(errors.ErrCodeInvalidInput, "no grids to ask about")
	}
	if s.Palette.Len() == 0 {
		return QA{}, nil, errors.New(errors.ErrCodeInvalidPalette, "scene has no palette")
	}

	var parts []QA
	parts = c.ask(rng, s, KindSimple, between(rng, c.cfg.SimpleMin, c.cfg.SimpleMax), parts)
	parts = c.ask(rng, s, KindComplex, between(rng, c.cfg.ComplexMin, c.cfg.ComplexMax), parts)
	parts = c.ask(rng, s, KindAggregate, between(rng, 0, c.cfg.AggregateMax), parts)
	if len(parts) == 0 {
		return QA{}, nil, errors.New(errors.ErrCodeInternal, "no questions generated for %d grids", len(s.Grids))
	}
	return Join(parts), parts, nil
}

func (c *Composer) ask(rng *rand.Rand, s Scene, k Kind, n int, parts []QA) []QA {
	gens := c.pool[k]
	if len(gens) == 0 {
		return parts
	}
	for range n {
		g := gens[rng.IntN(len(gens))]
		if qa, ok := g.Ask(rng, s); ok {
			parts = append(parts, qa)
		}
	}
	return parts
}

// Join builds the meta question and answer from individual pairs.
func Join(parts []QA) QA {
	qs := make([]string, len(parts))
	as := make([]string, len(parts))
	for i, p := range parts {
		qs[i], as[i] = p.Question, p.Answer
	}
	return QA{
		Question: MetaPrefix + strings.Join(qs, " "),
		Answer:   strings.Join(as, " "),
	}
}

func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
