package squad

import (
	"gonum.org/v1/gonum/floats"

	"github.com/okian/dwrs/internal/domain/types"
)

// Pick is the outcome of one slot. An empty PlayerID marks a gap.
type Pick struct {
	Slot         int            `json:"slot"`
	Position     types.Position `json:"position"`
	Role         string         `json:"role"`
	PlayerID     string         `json:"player_id,omitempty"`
	PlayerName   string         `json:"player_name,omitempty"`
	Normalized   float64        `json:"normalized"`
	Adjusted     float64        `json:"adjusted"`
	Natural      bool           `json:"natural"`
	FootTieBreak bool           `json:"foot_tie_break,omitempty"`
}

// Gap reports whether no eligible candidate was available for the slot.
func (p Pick) Gap() bool { return p.PlayerID == "" }

// Lineup has exactly one pick per tactic slot, in slot order.
type Lineup []Pick

// Gaps returns the slot indices left empty.
func (l Lineup) Gaps() []int {
	var out []int
	for _, p := range l {
		if p.Gap() {
			out = append(out, p.Slot)
		}
	}
	return out
}

// Filled returns the number of slots with a player.
func (l Lineup) Filled() int {
	return len(l) - len(l.Gaps())
}

// Total sums the adjusted scores of the lineup.
func (l Lineup) Total() float64 {
	scores := make([]float64, len(l))
	for i, p := range l {
		scores[i] = p.Adjusted
	}
	return floats.Sum(scores)
}

// PlayerIDs returns the ids of the selected players in slot order.
func (l Lineup) PlayerIDs() []string {
	out := make([]string, 0, len(l))
	for _, p := range l {
		if !p.Gap() {
			out = append(out, p.PlayerID)
		}
	}
	return out
}

// Candidate is a ranked player for depth listings.
type Candidate struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Normalized float64 `json:"normalized"`
}

// DepthSlot lists backup options for one slot after both lineups are chosen.
type DepthSlot struct {
	Slot       int            `json:"slot"`
	Position   types.Position `json:"position"`
	Role       string         `json:"role"`
	Candidates []Candidate    `json:"candidates"`
}

// SurplusEntry is a player picked by neither lineup, annotated with the
// tactic role they score best in.
type SurplusEntry struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Age        int     `json:"age,omitempty"`
	BestRole   string  `json:"best_role"`
	Normalized float64 `json:"normalized"`
	Youth      bool    `json:"youth"`
}

// Rejection is a player that could not be scored for any role of the tactic.
type Rejection struct {
	PlayerID string `json:"player_id"`
	Reason   string `json:"reason"`
}

// Result is the full output of an assignment run.
type Result struct {
	Tactic     string         `json:"tactic"`
	StartingXI Lineup         `json:"starting_xi"`
	BTeam      Lineup         `json:"b_team"`
	Depth      []DepthSlot    `json:"depth"`
	Surplus    []SurplusEntry `json:"surplus"`
	Rejected   []Rejection    `json:"rejected,omitempty"`
}

// Youth returns surplus players at or below the youth age threshold.
func (r *Result) Youth() []SurplusEntry {
	return r.filterSurplus(true)
}

// Senior returns the remaining surplus players.
func (r *Result) Senior() []SurplusEntry {
	return r.filterSurplus(false)
}

func (r *Result) filterSurplus(youth bool) []SurplusEntry {
	out := make([]SurplusEntry, 0, len(r.Surplus))
	for _, s := range r.Surplus {
		if s.Youth == youth {
			out = append(out, s)
		}
	}
	return out
}
