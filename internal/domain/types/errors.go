package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds shared by the domain packages. Callers match them with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
)

// ConfigError describes malformed weights, multipliers or an unresolved
// role/tactic reference. It is fatal to the run that triggered it.
type ConfigError struct {
	Field  string
	Reason string
}

// NewConfigError builds a ConfigError with a formatted reason.
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "configuration error: " + e.Reason
	}
	return "configuration error: " + e.Field + ": " + e.Reason
}

// Unwrap exposes the ErrConfiguration kind.
func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// ValidationError reports a player whose attribute profile cannot be scored
// against the active category partition.
type ValidationError struct {
	PlayerID   string
	Partition  string
	Missing    []string
	OutOfRange []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.OutOfRange) > 0 {
		parts = append(parts, "out of range "+strings.Join(e.OutOfRange, ", "))
	}
	return fmt.Sprintf("validation error: player %q (%s partition): %s", e.PlayerID, e.Partition, strings.Join(parts, "; "))
}

// Unwrap exposes the ErrValidation kind.
func (e *ValidationError) Unwrap() error { return ErrValidation }
