package attribute

import (
	"sort"
	"strings"

	"github.com/okian/dwrs/internal/domain/types"
)

// Category is a weighted group of attributes reflecting general match-engine importance.
type Category struct {
	Name       string
	Weight     float64
	Attributes []Name
}

// Key returns the snake_case configuration key of the category,
// e.g. "Extremely Important" -> "extremely_important".
func (c Category) Key() string {
	return CategoryKey(c.Name)
}

// CategoryKey normalizes a category name or config key.
func CategoryKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Partition assigns every attribute it covers to exactly one category.
// A Partition is immutable after construction.
type Partition struct {
	name       string
	categories []Category
	index      map[Name]int
}

// NewPartition validates the categories and builds the lookup index.
func NewPartition(name string, categories []Category) (*Partition, error) {
	if len(categories) == 0 {
		return nil, types.NewConfigError(name, "partition has no categories")
	}
	p := &Partition{
		name:       name,
		categories: make([]Category, len(categories)),
		index:      make(map[Name]int),
	}
	seen := make(map[string]struct{}, len(categories))
	for i, c := range categories {
		field := name + "." + c.Name
		if strings.TrimSpace(c.Name) == "" {
			return nil, types.NewConfigError(name, "category %d has no name", i)
		}
		if _, dup := seen[c.Key()]; dup {
			return nil, types.NewConfigError(field, "duplicate category")
		}
		seen[c.Key()] = struct{}{}
		if c.Weight < 0 {
			return nil, types.NewConfigError(field, "weight %.3f is negative", c.Weight)
		}
		if len(c.Attributes) == 0 {
			return nil, types.NewConfigError(field, "category has no attributes")
		}
		for _, a := range c.Attributes {
			if !Known(a) {
				return nil, types.NewConfigError(field, "unknown attribute %q", a)
			}
			if prev, dup := p.index[a]; dup {
				return nil, types.NewConfigError(field, "attribute %q already belongs to %q", a, categories[prev].Name)
			}
			p.index[a] = i
		}
		p.categories[i] = Category{
			Name:       c.Name,
			Weight:     c.Weight,
			Attributes: append([]Name(nil), c.Attributes...),
		}
	}
	return p, nil
}

// Name returns the partition name ("outfield" or "goalkeeper" for the defaults).
func (p *Partition) Name() string { return p.name }

// Categories returns a copy of the categories in definition order.
func (p *Partition) Categories() []Category {
	out := make([]Category, len(p.categories))
	for i, c := range p.categories {
		out[i] = Category{Name: c.Name, Weight: c.Weight, Attributes: append([]Name(nil), c.Attributes...)}
	}
	return out
}

// Len returns the number of categories.
func (p *Partition) Len() int { return len(p.categories) }

// Category returns the i-th category without copying its attribute slice.
// Callers must not modify the result.
func (p *Partition) Category(i int) Category { return p.categories[i] }

// CategoryOf returns the category that owns the attribute.
func (p *Partition) CategoryOf(a Name) (Category, bool) {
	i, ok := p.index[a]
	if !ok {
		return Category{}, false
	}
	return p.categories[i], true
}

// Attributes returns every attribute of the partition, sorted by name.
func (p *Partition) Attributes() []Name {
	out := make([]Name, 0, len(p.index))
	for a := range p.index {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Degenerate reports whether every category weight is zero, in which case
// the best and worst benchmarks coincide.
func (p *Partition) Degenerate() bool {
	for _, c := range p.categories {
		if c.Weight > 0 {
			return false
		}
	}
	return true
}

// WithWeights returns a copy of the partition with weights overridden by
// category name or snake_case key. Unknown keys are a configuration error.
func (p *Partition) WithWeights(weights map[string]float64) (*Partition, error) {
	if len(weights) == 0 {
		return p, nil
	}
	byKey := make(map[string]int, len(p.categories))
	for i, c := range p.categories {
		byKey[c.Key()] = i
	}
	cats := p.Categories()
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		i, ok := byKey[CategoryKey(k)]
		if !ok {
			return nil, types.NewConfigError(p.name, "unknown category %q", k)
		}
		cats[i].Weight = weights[k]
	}
	return NewPartition(p.name, cats)
}
