package squad

import (
	"math"

	"github.com/okian/dwrs/internal/domain/types"
)

// Default selection parameters.
const (
	DefaultNaturalPositionMultiplier = 1.05
	DefaultTieEpsilon                = 0.1
	DefaultFootNudge                 = 1.001
	DefaultYouthAgeOutfield          = 21
	DefaultYouthAgeGoalkeeper        = 23
	DefaultGoalkeeperDepth           = 2
	DefaultOutfieldDepth             = 1
)

// Options tunes a single assignment run.
type Options struct {
	// NaturalPositionMultiplier rewards players fielded at one of their natural positions.
	NaturalPositionMultiplier float64
	// TieEpsilon is the adjusted-score gap under which candidates count as tied.
	TieEpsilon float64
	// FootNudge is applied to a tied candidate whose foot matches the slot side.
	FootNudge float64
	// PlayingTimeWeights maps an agreed playing time label to a selection multiplier.
	// Unknown labels weigh 1.0.
	PlayingTimeWeights map[string]float64
	// MaxAge excludes players older than this from the pool when positive.
	MaxAge int

	YouthAgeOutfield   int
	YouthAgeGoalkeeper int
	GoalkeeperDepth    int
	OutfieldDepth      int
}

// DefaultOptions returns the standard selection parameters.
func DefaultOptions() Options {
	return Options{
		NaturalPositionMultiplier: DefaultNaturalPositionMultiplier,
		TieEpsilon:                DefaultTieEpsilon,
		FootNudge:                 DefaultFootNudge,
		YouthAgeOutfield:          DefaultYouthAgeOutfield,
		YouthAgeGoalkeeper:        DefaultYouthAgeGoalkeeper,
		GoalkeeperDepth:           DefaultGoalkeeperDepth,
		OutfieldDepth:             DefaultOutfieldDepth,
	}
}

// Validate rejects parameter sets that would break selection ordering.
func (o Options) Validate() error {
	switch {
	case !finite(o.NaturalPositionMultiplier) || o.NaturalPositionMultiplier < 1:
		return types.NewConfigError("natural_position_multiplier", "%.3f is below 1.0", o.NaturalPositionMultiplier)
	case !finite(o.TieEpsilon) || o.TieEpsilon < 0:
		return types.NewConfigError("tie_epsilon", "%.3f is negative", o.TieEpsilon)
	case !finite(o.FootNudge) || o.FootNudge < 1:
		return types.NewConfigError("foot_nudge", "%.4f is below 1.0", o.FootNudge)
	case o.MaxAge < 0:
		return types.NewConfigError("max_age", "%d is negative", o.MaxAge)
	case o.GoalkeeperDepth < 0 || o.OutfieldDepth < 0:
		return types.NewConfigError("depth", "depth counts must not be negative")
	}
	for label, w := range o.PlayingTimeWeights {
		if !finite(w) || w < 0 {
			return types.NewConfigError("playing_time_weights."+label, "%.3f is negative", w)
		}
	}
	return nil
}

func (o Options) playingTimeWeight(label string) float64 {
	if w, ok := o.PlayingTimeWeights[label]; ok {
		return w
	}
	return 1.0
}

func (o Options) youthAge(goalkeeper bool) int {
	if goalkeeper {
		return o.YouthAgeGoalkeeper
	}
	return o.YouthAgeOutfield
}

func (o Options) depthFor(goalkeeper bool) int {
	if goalkeeper {
		return o.GoalkeeperDepth
	}
	return o.OutfieldDepth
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
