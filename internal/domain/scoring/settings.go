package scoring

import (
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/role"
	"github.com/okian/dwrs/internal/domain/types"
)

// Default role multipliers.
const (
	DefaultKeyMultiplier        = 1.5
	DefaultPreferableMultiplier = 1.2
)

// Settings is the immutable configuration snapshot every scoring call reads:
// role multipliers plus the outfield and goalkeeper category partitions.
type Settings struct {
	keyMultiplier        float64
	preferableMultiplier float64
	outfield             *attribute.Partition
	goalkeeper           *attribute.Partition
	fingerprint          uint64
}

// NewSettings validates multipliers and partitions.
// key_multiplier >= preferable_multiplier >= 1.0 must hold.
func NewSettings(keyMultiplier, preferableMultiplier float64, outfield, goalkeeper *attribute.Partition) (*Settings, error) {
	switch {
	case math.IsNaN(keyMultiplier) || math.IsInf(keyMultiplier, 0):
		return nil, types.NewConfigError("key_multiplier", "must be a finite number")
	case math.IsNaN(preferableMultiplier) || math.IsInf(preferableMultiplier, 0):
		return nil, types.NewConfigError("preferable_multiplier", "must be a finite number")
	case preferableMultiplier < 1.0:
		return nil, types.NewConfigError("preferable_multiplier", "%.3f is below 1.0", preferableMultiplier)
	case keyMultiplier < preferableMultiplier:
		return nil, types.NewConfigError("key_multiplier", "%.3f is below preferable_multiplier %.3f", keyMultiplier, preferableMultiplier)
	case outfield == nil:
		return nil, types.NewConfigError("weights", "outfield partition is missing")
	case goalkeeper == nil:
		return nil, types.NewConfigError("gk_weights", "goalkeeper partition is missing")
	}
	s := &Settings{
		keyMultiplier:        keyMultiplier,
		preferableMultiplier: preferableMultiplier,
		outfield:             outfield,
		goalkeeper:           goalkeeper,
	}
	s.fingerprint = s.hash()
	return s, nil
}

// DefaultSettings uses the default multipliers and partitions.
func DefaultSettings() *Settings {
	s, err := NewSettings(DefaultKeyMultiplier, DefaultPreferableMultiplier, attribute.DefaultOutfield(), attribute.DefaultGoalkeeper())
	if err != nil {
		panic(err)
	}
	return s
}

// KeyMultiplier returns the boost applied to key attributes.
func (s *Settings) KeyMultiplier() float64 { return s.keyMultiplier }

// PreferableMultiplier returns the boost applied to preferable attributes.
func (s *Settings) PreferableMultiplier() float64 { return s.preferableMultiplier }

// Outfield returns the outfield partition.
func (s *Settings) Outfield() *attribute.Partition { return s.outfield }

// Goalkeeper returns the goalkeeper partition.
func (s *Settings) Goalkeeper() *attribute.Partition { return s.goalkeeper }

// Fingerprint identifies the multiplier and weight set.
func (s *Settings) Fingerprint() uint64 { return s.fingerprint }

// Degenerate returns the names of partitions whose weights are all zero.
func (s *Settings) Degenerate() []string {
	var out []string
	for _, p := range []*attribute.Partition{s.outfield, s.goalkeeper} {
		if p.Degenerate() {
			out = append(out, p.Name())
		}
	}
	return out
}

// PartitionFor selects the partition that applies to the role.
func (s *Settings) PartitionFor(def *role.Definition) *attribute.Partition {
	if def.Goalkeeper {
		return s.goalkeeper
	}
	return s.outfield
}

func (s *Settings) multiplier(b role.Boost) float64 {
	switch b {
	case role.BoostKey:
		return s.keyMultiplier
	case role.BoostPreferable:
		return s.preferableMultiplier
	default:
		return 1.0
	}
}

func (s *Settings) hash() uint64 {
	d := xxhash.New()
	writeFloat(d, s.keyMultiplier)
	writeFloat(d, s.preferableMultiplier)
	for _, p := range []*attribute.Partition{s.outfield, s.goalkeeper} {
		_, _ = d.WriteString(p.Name())
		for i := 0; i < p.Len(); i++ {
			c := p.Category(i)
			_, _ = d.WriteString("|" + c.Name + "=")
			writeFloat(d, c.Weight)
			for _, a := range c.Attributes {
				_, _ = d.WriteString("," + string(a))
			}
		}
	}
	return d.Sum64()
}

func writeFloat(d *xxhash.Digest, f float64) {
	_, _ = d.WriteString(strconv.FormatUint(math.Float64bits(f), 16))
}
