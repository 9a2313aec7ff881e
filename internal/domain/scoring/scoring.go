// Package scoring computes the Dynamic Weighted Role Score (DWRS) of a player
// for a role and normalizes it against role-specific benchmarks.
package scoring

import (
	"gonum.org/v1/gonum/stat"

	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/model"
	"github.com/okian/dwrs/internal/domain/role"
	"github.com/okian/dwrs/internal/domain/types"
	"github.com/okian/dwrs/pkg/logger"
	"github.com/okian/dwrs/pkg/metrics"
)

// Scorer computes a player's suitability for a role.
type Scorer interface {
	Score(p *model.Player, def *role.Definition) (model.ScoreResult, error)
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithBenchmarkCache shares a benchmark cache between calculators.
func WithBenchmarkCache(cache *BenchmarkCache) Option {
	return func(c *Calculator) {
		if cache != nil {
			c.normalizer.cache = cache
		}
	}
}

// WithLogger sets the logger used for configuration warnings.
func WithLogger(l logger.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.normalizer.logger = l
		}
	}
}

// Calculator implements Scorer. It holds no mutable state other than the
// benchmark cache and is safe for concurrent use.
type Calculator struct {
	settings   *Settings
	normalizer *Normalizer
}

// NewCalculator creates a calculator bound to one settings snapshot.
func NewCalculator(settings *Settings, opts ...Option) *Calculator {
	if settings == nil {
		settings = DefaultSettings()
	}
	c := &Calculator{
		settings: settings,
		normalizer: &Normalizer{
			settings: settings,
			cache:    NewBenchmarkCache(),
			logger:   logger.Nop(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settings returns the snapshot the calculator was built with.
func (c *Calculator) Settings() *Settings { return c.settings }

// Normalizer returns the benchmark normalizer used by the calculator.
func (c *Calculator) Normalizer() *Normalizer { return c.normalizer }

// Score returns the absolute and normalized DWRS of p for def.
// Every attribute of the active partition must be present and within [1,20].
func (c *Calculator) Score(p *model.Player, def *role.Definition) (model.ScoreResult, error) {
	part := c.settings.PartitionFor(def)
	if err := validate(p, part); err != nil {
		metrics.RecordValidationFailure(part.Name())
		return model.ScoreResult{}, err
	}

	abs := c.settings.absolute(part, def, func(a attribute.Name) float64 {
		return float64(p.Attributes[a])
	})
	metrics.RecordScoreComputed(part.Name())

	return model.ScoreResult{
		PlayerID:   p.ID,
		Role:       def.Name,
		Absolute:   abs,
		Normalized: c.normalizer.Normalize(abs, def),
	}, nil
}

func validate(p *model.Player, part *attribute.Partition) error {
	var missing, bad []string
	for _, a := range part.Attributes() {
		v, ok := p.Attributes[a]
		switch {
		case !ok:
			missing = append(missing, string(a))
		case !attribute.InRange(v):
			bad = append(bad, string(a))
		}
	}
	if len(missing) == 0 && len(bad) == 0 {
		return nil
	}
	return &types.ValidationError{PlayerID: p.ID, Partition: part.Name(), Missing: missing, OutOfRange: bad}
}

// absolute is the weighted sum of per-category means of boosted values.
// Player scores and both benchmarks go through this one function so that the
// synthetic worst and best profiles land exactly on 0 and 100.
func (s *Settings) absolute(part *attribute.Partition, def *role.Definition, valueOf func(attribute.Name) float64) float64 {
	total := 0.0
	boosted := make([]float64, 0, 8)
	for i := 0; i < part.Len(); i++ {
		cat := part.Category(i)
		boosted = boosted[:0]
		for _, a := range cat.Attributes {
			boosted = append(boosted, valueOf(a)*s.multiplier(def.Boost(a)))
		}
		total += stat.Mean(boosted, nil) * cat.Weight
	}
	return total
}
