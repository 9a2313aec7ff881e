// Package role holds the typed role and tactic definitions consumed by the
// scoring and assignment engines. Both lookup tables are validated once at
// construction and are read-only afterwards.
package role

import (
	"sort"
	"strings"

	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/types"
)

// Definition describes one tactical role.
type Definition struct {
	Name       string
	Display    string
	Positions  []types.Position
	Key        []attribute.Name
	Preferable []attribute.Name
	Goalkeeper bool
}

// Boost returns the multiplier class of an attribute for this role.
func (d *Definition) Boost(a attribute.Name) Boost {
	for _, k := range d.Key {
		if k == a {
			return BoostKey
		}
	}
	for _, p := range d.Preferable {
		if p == a {
			return BoostPreferable
		}
	}
	return BoostNone
}

// AllowsPosition reports whether the role may be fielded at pos. Roles
// without an explicit position list allow any position.
func (d *Definition) AllowsPosition(pos types.Position) bool {
	if len(d.Positions) == 0 {
		return true
	}
	pos = pos.Normalize()
	for _, p := range d.Positions {
		if p == pos {
			return true
		}
	}
	return false
}

// Boost classifies an attribute relative to a role.
type Boost int

// Boost classes.
const (
	BoostNone Boost = iota
	BoostPreferable
	BoostKey
)

// Registry is the closed set of known roles.
type Registry struct {
	roles map[string]*Definition
	names []string
}

// NewRegistry validates and indexes role definitions.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{roles: make(map[string]*Definition, len(defs))}
	for i := range defs {
		d, err := normalize(defs[i])
		if err != nil {
			return nil, err
		}
		if _, dup := r.roles[d.Name]; dup {
			return nil, types.NewConfigError("roles."+d.Name, "duplicate role")
		}
		r.roles[d.Name] = d
		r.names = append(r.names, d.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

func normalize(d Definition) (*Definition, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return nil, types.NewConfigError("roles", "role without a name")
	}
	field := "roles." + d.Name
	if d.Display == "" {
		d.Display = d.Name
	}
	key := make(map[attribute.Name]struct{}, len(d.Key))
	for _, a := range d.Key {
		if !attribute.Known(a) {
			return nil, types.NewConfigError(field, "unknown key attribute %q", a)
		}
		key[a] = struct{}{}
	}
	for _, a := range d.Preferable {
		if !attribute.Known(a) {
			return nil, types.NewConfigError(field, "unknown preferable attribute %q", a)
		}
		if _, both := key[a]; both {
			return nil, types.NewConfigError(field, "attribute %q is both key and preferable", a)
		}
	}
	positions := make([]types.Position, 0, len(d.Positions))
	for _, p := range d.Positions {
		p = p.Normalize()
		if p == "" {
			continue
		}
		if p.IsGoalkeeper() {
			d.Goalkeeper = true
		}
		positions = append(positions, p)
	}
	d.Positions = positions
	d.Key = append([]attribute.Name(nil), d.Key...)
	d.Preferable = append([]attribute.Name(nil), d.Preferable...)
	return &d, nil
}

// Lookup returns the role by name; unknown names are a configuration error.
func (r *Registry) Lookup(name string) (*Definition, error) {
	d, ok := r.roles[name]
	if !ok {
		return nil, types.NewConfigError("role", "undefined role %q", name)
	}
	return d, nil
}

// Names returns all role names sorted.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of roles.
func (r *Registry) Len() int { return len(r.names) }

// ForPosition returns the roles that may be fielded at pos, sorted by name.
func (r *Registry) ForPosition(pos types.Position) []*Definition {
	var out []*Definition
	for _, n := range r.names {
		d := r.roles[n]
		if len(d.Positions) > 0 && d.AllowsPosition(pos) {
			out = append(out, d)
		}
	}
	return out
}
