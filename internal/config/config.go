// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"fmt"
	"math"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches the log handler to JSON.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DefinitionsFile is the YAML catalogue of roles and tactics.
	DefinitionsFile string `koanf:"definitions_file"`

	// RosterFile optionally seeds the roster with players at startup.
	RosterFile string `koanf:"roster_file"`

	// MatrixWorkers bounds the player x role matrix worker pool.
	MatrixWorkers int `koanf:"matrix_workers"`

	// KeyMultiplier and PreferableMultiplier boost role-relevant attributes.
	KeyMultiplier        float64 `koanf:"key_multiplier"`
	PreferableMultiplier float64 `koanf:"preferable_multiplier"`

	// NaturalPositionMultiplier rewards players fielded at a natural position.
	NaturalPositionMultiplier float64 `koanf:"natural_position_multiplier"`

	// TieEpsilon and FootNudge drive the preferred-foot tie-break on flank slots.
	TieEpsilon float64 `koanf:"tie_epsilon"`
	FootNudge  float64 `koanf:"foot_nudge"`

	// Weights and GKWeights override category weights by snake_case key,
	// e.g. extremely_important or top_importance.
	Weights   map[string]float64 `koanf:"weights"`
	GKWeights map[string]float64 `koanf:"gk_weights"`

	// PlayingTimeWeights maps agreed playing time labels to selection multipliers.
	PlayingTimeWeights map[string]float64 `koanf:"playing_time_weights"`

	// YouthAgeOutfield and YouthAgeGoalkeeper split the surplus into youth and senior.
	YouthAgeOutfield   int `koanf:"youth_age_outfield"`
	YouthAgeGoalkeeper int `koanf:"youth_age_goalkeeper"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                  "info",
		Addr:                      ":9080",
		DefinitionsFile:           "configs/definitions.yaml",
		MatrixWorkers:             runtime.NumCPU(),
		KeyMultiplier:             1.5,
		PreferableMultiplier:      1.2,
		NaturalPositionMultiplier: 1.05,
		TieEpsilon:                0.1,
		FootNudge:                 1.001,
		YouthAgeOutfield:          21,
		YouthAgeGoalkeeper:        23,
	}
}

// Validate checks ranges that do not need the role catalogue.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DefinitionsFile == "":
		return fmt.Errorf("%w: definitions_file must not be empty", ErrInvalidConfig)
	case c.MatrixWorkers <= 0:
		return fmt.Errorf("%w: matrix_workers must be positive, got %d", ErrInvalidConfig, c.MatrixWorkers)
	case c.PreferableMultiplier < 1:
		return fmt.Errorf("%w: preferable_multiplier %.3f is below 1.0", ErrInvalidConfig, c.PreferableMultiplier)
	case c.KeyMultiplier < c.PreferableMultiplier:
		return fmt.Errorf("%w: key_multiplier %.3f is below preferable_multiplier %.3f", ErrInvalidConfig, c.KeyMultiplier, c.PreferableMultiplier)
	case c.NaturalPositionMultiplier < 1:
		return fmt.Errorf("%w: natural_position_multiplier %.3f is below 1.0", ErrInvalidConfig, c.NaturalPositionMultiplier)
	case c.TieEpsilon < 0:
		return fmt.Errorf("%w: tie_epsilon must not be negative", ErrInvalidConfig)
	case c.FootNudge < 1:
		return fmt.Errorf("%w: foot_nudge %.4f is below 1.0", ErrInvalidConfig, c.FootNudge)
	case c.YouthAgeOutfield < 0 || c.YouthAgeGoalkeeper < 0:
		return fmt.Errorf("%w: youth ages must not be negative", ErrInvalidConfig)
	}
	for name, m := range map[string]map[string]float64{
		"weights":              c.Weights,
		"gk_weights":           c.GKWeights,
		"playing_time_weights": c.PlayingTimeWeights,
	} {
		for k, v := range m {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s.%s must be a non-negative number", ErrInvalidConfig, name, k)
			}
		}
	}
	return nil
}
