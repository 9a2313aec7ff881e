package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/dwrs/internal/adapters/definitions"
	"github.com/okian/dwrs/internal/config"
	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/role"
	"github.com/okian/dwrs/internal/domain/scoring"
	"github.com/okian/dwrs/internal/domain/squad"
	"github.com/okian/dwrs/internal/domain/types"
	"github.com/okian/dwrs/pkg/logger"
)

// Snapshot is the immutable bundle every run reads: settings, catalogue and
// the engines built from them. Runs keep the snapshot they started with even
// if a reload swaps in a new one.
type Snapshot struct {
	Version    uint64
	LoadedAt   time.Time
	Settings   *scoring.Settings
	Calculator *scoring.Calculator
	Solver     *squad.Solver
	Roles      *role.Registry
	Tactics    *role.Book
	Options    squad.Options
}

// BuildSnapshot validates cfg against the catalogue. Weights that make a
// partition degenerate are rejected here so a live service never serves
// all-zero scores.
func BuildSnapshot(cfg *config.Config, cat *definitions.Catalogue, cache *scoring.BenchmarkCache, log logger.Logger) (*Snapshot, error) {
	if cat == nil || cat.Roles == nil || cat.Tactics == nil {
		return nil, types.NewConfigError("definitions", "catalogue is empty")
	}
	outfield, err := attribute.DefaultOutfield().WithWeights(cfg.Weights)
	if err != nil {
		return nil, err
	}
	goalkeeper, err := attribute.DefaultGoalkeeper().WithWeights(cfg.GKWeights)
	if err != nil {
		return nil, err
	}
	settings, err := scoring.NewSettings(cfg.KeyMultiplier, cfg.PreferableMultiplier, outfield, goalkeeper)
	if err != nil {
		return nil, err
	}
	if degenerate := settings.Degenerate(); len(degenerate) > 0 {
		return nil, types.NewConfigError("weights", "all category weights are zero for %s", strings.Join(degenerate, ", "))
	}

	opts := squad.DefaultOptions()
	opts.NaturalPositionMultiplier = cfg.NaturalPositionMultiplier
	opts.TieEpsilon = cfg.TieEpsilon
	opts.FootNudge = cfg.FootNudge
	opts.PlayingTimeWeights = copyWeights(cfg.PlayingTimeWeights)
	opts.YouthAgeOutfield = cfg.YouthAgeOutfield
	opts.YouthAgeGoalkeeper = cfg.YouthAgeGoalkeeper
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	calc := scoring.NewCalculator(settings, scoring.WithBenchmarkCache(cache), scoring.WithLogger(log.Named("scoring")))
	return &Snapshot{
		LoadedAt:   time.Now(),
		Settings:   settings,
		Calculator: calc,
		Solver:     squad.NewSolver(calc, cat.Roles, squad.WithLogger(log.Named("squad"))),
		Roles:      cat.Roles,
		Tactics:    cat.Tactics,
		Options:    opts,
	}, nil
}

func copyWeights(in map[string]float64) map[string]float64 {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("snapshot v%d (%d roles, %d tactics, fingerprint %x)",
		s.Version, s.Roles.Len(), len(s.Tactics.Names()), s.Settings.Fingerprint())
}
