// Package repository holds the in-memory player roster that feeds scoring
// and assignment runs.
package repository

import (
	"context"

	"github.com/okian/dwrs/internal/domain/model"
)

// Filter narrows a candidate pool. Zero values match everything.
type Filter struct {
	Club   string
	MaxAge int
	IDs    []string
}

// Store provides read/write access to the roster.
type Store interface {
	// Upsert inserts or replaces players, assigning ids to those without one.
	// It returns the stored ids in input order.
	Upsert(ctx context.Context, players ...model.Player) ([]string, error)

	// Get returns a player by id or ErrNotFound.
	Get(ctx context.Context, id string) (model.Player, error)

	// Delete removes a player. Unknown ids return ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Pool returns the players matching f in insertion order, or in the
	// order of f.IDs when ids are given.
	Pool(ctx context.Context, f Filter) ([]model.Player, error)

	// Count returns the number of stored players.
	Count(ctx context.Context) int
}
