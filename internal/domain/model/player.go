// Package model contains domain models passed between layers.
package model

import (
	"math"

	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/types"
)

// Player is an immutable attribute profile for the duration of a scoring or
// assignment run. Persistence layers may replace it between runs.
type Player struct {
	ID               string                 // unique id
	Name             string                 // display name
	Attributes       map[attribute.Name]int // raw values in [1,20]
	PreferredFoot    types.Foot             // Left, Right or Either
	NaturalPositions []types.Position       // positions the player is natural in
	Club             string                 // club affiliation
	Age              int                    // 0 when unknown
	PlayingTime      string                 // agreed playing time label, e.g. "Star Player"
	Roles            []string               // assigned roles; empty means any role
	PrimaryRole      string                 // when set, the only role the player is selected for
}

// IsNaturalIn reports whether pos is one of the player's natural positions.
func (p *Player) IsNaturalIn(pos types.Position) bool {
	pos = pos.Normalize()
	for _, n := range p.NaturalPositions {
		if n.Normalize() == pos {
			return true
		}
	}
	return false
}

// IsGoalkeeper reports whether the player is a natural goalkeeper.
func (p *Player) IsGoalkeeper() bool {
	return p.IsNaturalIn(types.PositionGoalkeeper)
}

// CanPlay reports whether the player may be selected for the given role
// under their assigned and primary role restrictions.
func (p *Player) CanPlay(role string) bool {
	if p.PrimaryRole != "" && p.PrimaryRole != role {
		return false
	}
	if len(p.Roles) == 0 {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Uniform returns a synthetic player with every listed attribute set to v.
// Benchmarks use it to build the worst and best theoretical profiles.
func Uniform(id string, attrs []attribute.Name, v int) Player {
	m := make(map[attribute.Name]int, len(attrs))
	for _, a := range attrs {
		m[a] = v
	}
	return Player{ID: id, Name: id, Attributes: m, PreferredFoot: types.FootEither}
}

// ScoreResult is the DWRS of one player for one role. It is derived on demand and never persisted.
type ScoreResult struct {
	PlayerID   string  `json:"player_id"`
	Role       string  `json:"role"`
	Absolute   float64 `json:"absolute"`
	Normalized float64 `json:"normalized"`
}

// Percent returns the normalized score rounded to a whole percentage for display.
func (r ScoreResult) Percent() int {
	return int(math.Round(r.Normalized))
}
