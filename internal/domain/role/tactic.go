package role

import (
	"sort"
	"strings"

	"github.com/okian/dwrs/internal/domain/types"
)

// Slot is one position-and-role requirement of a tactic.
type Slot struct {
	Position types.Position `json:"position"`
	Role     string         `json:"role"`
}

// Tactic is an ordered list of slots. Slot order is the assignment order.
type Tactic struct {
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

// Roles returns the distinct role names of the tactic in first-seen order.
func (t *Tactic) Roles() []string {
	seen := make(map[string]struct{}, len(t.Slots))
	var out []string
	for _, s := range t.Slots {
		if _, ok := seen[s.Role]; ok {
			continue
		}
		seen[s.Role] = struct{}{}
		out = append(out, s.Role)
	}
	return out
}

// Validate resolves every slot role against the registry. An undefined role or a
// position the role cannot be fielded at is a configuration error.
func (t *Tactic) Validate(reg *Registry) error {
	if strings.TrimSpace(t.Name) == "" {
		return types.NewConfigError("tactics", "tactic without a name")
	}
	if len(t.Slots) == 0 {
		return types.NewConfigError("tactics."+t.Name, "tactic has no slots")
	}
	for i, s := range t.Slots {
		d, err := reg.Lookup(s.Role)
		if err != nil {
			return types.NewConfigError("tactics."+t.Name, "slot %d (%s): undefined role %q", i, s.Position, s.Role)
		}
		if s.Position.Normalize() == "" {
			return types.NewConfigError("tactics."+t.Name, "slot %d has no position", i)
		}
		if !d.AllowsPosition(s.Position) {
			return types.NewConfigError("tactics."+t.Name, "slot %d: role %q cannot be fielded at %s", i, s.Role, s.Position)
		}
	}
	return nil
}

// Book is the validated set of tactics.
type Book struct {
	tactics map[string]*Tactic
	names   []string
}

// NewBook validates every tactic against reg.
func NewBook(reg *Registry, tactics []Tactic) (*Book, error) {
	b := &Book{tactics: make(map[string]*Tactic, len(tactics))}
	for i := range tactics {
		t := tactics[i]
		t.Name = strings.TrimSpace(t.Name)
		slots := make([]Slot, len(t.Slots))
		for j, s := range t.Slots {
			slots[j] = Slot{Position: s.Position.Normalize(), Role: strings.TrimSpace(s.Role)}
		}
		t.Slots = slots
		if err := t.Validate(reg); err != nil {
			return nil, err
		}
		if _, dup := b.tactics[t.Name]; dup {
			return nil, types.NewConfigError("tactics."+t.Name, "duplicate tactic")
		}
		b.tactics[t.Name] = &t
		b.names = append(b.names, t.Name)
	}
	sort.Strings(b.names)
	return b, nil
}

// Lookup returns a copy of the named tactic.
func (b *Book) Lookup(name string) (Tactic, error) {
	t, ok := b.tactics[name]
	if !ok {
		return Tactic{}, types.NewConfigError("tactic", "undefined tactic %q", name)
	}
	return Tactic{Name: t.Name, Slots: append([]Slot(nil), t.Slots...)}, nil
}

// Names returns all tactic names sorted.
func (b *Book) Names() []string {
	return append([]string(nil), b.names...)
}
