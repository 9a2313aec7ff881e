package definitions

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/model"
	"github.com/okian/dwrs/internal/domain/types"
)

// PlayerRecord is the external shape of a player, shared by YAML files and
// the HTTP API.
type PlayerRecord struct {
	ID          string         `koanf:"id" json:"id,omitempty"`
	Name        string         `koanf:"name" json:"name"`
	Club        string         `koanf:"club" json:"club,omitempty"`
	Age         int            `koanf:"age" json:"age,omitempty"`
	Foot        string         `koanf:"foot" json:"foot,omitempty"`
	Positions   []string       `koanf:"positions" json:"positions,omitempty"`
	PlayingTime string         `koanf:"playing_time" json:"playing_time,omitempty"`
	Roles       []string       `koanf:"roles" json:"roles,omitempty"`
	PrimaryRole string         `koanf:"primary_role" json:"primary_role,omitempty"`
	Attributes  map[string]int `koanf:"attributes" json:"attributes"`
}

type playersDocument struct {
	Players []PlayerRecord `koanf:"players"`
}

// LoadPlayers reads a YAML player file. Records are converted but not
// scored; attribute ranges are checked later by the calculator.
func LoadPlayers(ctx context.Context, path string) ([]model.Player, error) {
	var doc playersDocument
	if err := load(ctx, path, &doc); err != nil {
		return nil, err
	}
	out := make([]model.Player, 0, len(doc.Players))
	for i, r := range doc.Players {
		p, err := r.ToModel()
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// ToModel converts the record. Unknown attribute names and feet are rejected.
func (r PlayerRecord) ToModel() (model.Player, error) {
	foot, err := types.ParseFoot(r.Foot)
	if err != nil {
		return model.Player{}, fmt.Errorf("%w: %q: %w", ErrInvalidPlayer, r.Name, err)
	}
	if strings.TrimSpace(r.Name) == "" && strings.TrimSpace(r.ID) == "" {
		return model.Player{}, fmt.Errorf("%w: record has neither id nor name", ErrInvalidPlayer)
	}
	attrs := make(map[attribute.Name]int, len(r.Attributes))
	var unknown []string
	for k, v := range r.Attributes {
		n := attribute.Name(strings.TrimSpace(k))
		if !attribute.Known(n) {
			unknown = append(unknown, k)
			continue
		}
		attrs[n] = v
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return model.Player{}, fmt.Errorf("%w: %q: unknown attributes %s", ErrInvalidPlayer, r.Name, strings.Join(unknown, ", "))
	}
	return model.Player{
		ID:               strings.TrimSpace(r.ID),
		Name:             strings.TrimSpace(r.Name),
		Attributes:       attrs,
		PreferredFoot:    foot,
		NaturalPositions: positions(r.Positions),
		Club:             strings.TrimSpace(r.Club),
		Age:              r.Age,
		PlayingTime:      strings.TrimSpace(r.PlayingTime),
		Roles:            r.Roles,
		PrimaryRole:      strings.TrimSpace(r.PrimaryRole),
	}, nil
}

// FromModel is the inverse of ToModel.
func FromModel(p *model.Player) PlayerRecord {
	attrs := make(map[string]int, len(p.Attributes))
	for k, v := range p.Attributes {
		attrs[string(k)] = v
	}
	pos := make([]string, len(p.NaturalPositions))
	for i, n := range p.NaturalPositions {
		pos[i] = string(n)
	}
	return PlayerRecord{
		ID:          p.ID,
		Name:        p.Name,
		Club:        p.Club,
		Age:         p.Age,
		Foot:        string(p.PreferredFoot),
		Positions:   pos,
		PlayingTime: p.PlayingTime,
		Roles:       p.Roles,
		PrimaryRole: p.PrimaryRole,
		Attributes:  attrs,
	}
}
