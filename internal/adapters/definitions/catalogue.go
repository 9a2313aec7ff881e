// Package definitions loads the role/tactic catalogue and player files from
// YAML through koanf.
package definitions

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/role"
	"github.com/okian/dwrs/internal/domain/types"
)

// RoleRecord is the on-disk shape of a role definition.
type RoleRecord struct {
	Name       string   `koanf:"name" json:"name"`
	Display    string   `koanf:"display" json:"display,omitempty"`
	Positions  []string `koanf:"positions" json:"positions,omitempty"`
	Key        []string `koanf:"key" json:"key,omitempty"`
	Preferable []string `koanf:"preferable" json:"preferable,omitempty"`
	Goalkeeper bool     `koanf:"goalkeeper" json:"goalkeeper,omitempty"`
}

// SlotRecord is the on-disk shape of a tactic slot.
type SlotRecord struct {
	Position string `koanf:"position" json:"position"`
	Role     string `koanf:"role" json:"role"`
}

// TacticRecord is the on-disk shape of a tactic.
type TacticRecord struct {
	Name  string       `koanf:"name" json:"name"`
	Slots []SlotRecord `koanf:"slots" json:"slots"`
}

// Document is the catalogue file.
type Document struct {
	Roles   []RoleRecord   `koanf:"roles"`
	Tactics []TacticRecord `koanf:"tactics"`
}

// Catalogue is the validated result of loading a Document.
type Catalogue struct {
	Roles   *role.Registry
	Tactics *role.Book
}

// LoadCatalogue reads and validates the catalogue at path.
func LoadCatalogue(ctx context.Context, path string) (*Catalogue, error) {
	var doc Document
	if err := load(ctx, path, &doc); err != nil {
		return nil, err
	}
	return doc.Build()
}

// Build converts the records into a validated registry and book. Every
// problem is a configuration error.
func (d *Document) Build() (*Catalogue, error) {
	defs := make([]role.Definition, len(d.Roles))
	for i, r := range d.Roles {
		defs[i] = role.Definition{
			Name:       r.Name,
			Display:    r.Display,
			Positions:  positions(r.Positions),
			Key:        names(r.Key),
			Preferable: names(r.Preferable),
			Goalkeeper: r.Goalkeeper,
		}
	}
	reg, err := role.NewRegistry(defs)
	if err != nil {
		return nil, err
	}

	tactics := make([]role.Tactic, len(d.Tactics))
	for i, t := range d.Tactics {
		tactics[i] = role.Tactic{Name: t.Name, Slots: make([]role.Slot, len(t.Slots))}
		for j, s := range t.Slots {
			tactics[i].Slots[j] = role.Slot{Position: types.Position(s.Position), Role: s.Role}
		}
	}
	book, err := role.NewBook(reg, tactics)
	if err != nil {
		return nil, err
	}
	return &Catalogue{Roles: reg, Tactics: book}, nil
}

func load(_ context.Context, path string, out any) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadFile, path, err)
	}
	if err := k.UnmarshalWithConf("", out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return nil
}

func names(in []string) []attribute.Name {
	out := make([]attribute.Name, len(in))
	for i, s := range in {
		out[i] = attribute.Name(s)
	}
	return out
}

func positions(in []string) []types.Position {
	out := make([]types.Position, len(in))
	for i, s := range in {
		out[i] = types.Position(s)
	}
	return out
}
