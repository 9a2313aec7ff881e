package scoring

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/role"
	"github.com/okian/dwrs/pkg/logger"
	"github.com/okian/dwrs/pkg/metrics"
)

const maxScoreValue = 100

// Benchmark holds the theoretical worst (all 1) and best (all 20) absolute
// scores of a role under one settings snapshot.
type Benchmark struct {
	Worst      float64
	Best       float64
	Degenerate bool
}

// Normalizer scales absolute scores to [0,100] using role benchmarks.
type Normalizer struct {
	settings *Settings
	cache    *BenchmarkCache
	logger   logger.Logger
}

// Normalize maps an absolute score to a percentage of the role's benchmark
// range, clamped to [0,100]. A degenerate range yields 0 and a warning.
func (n *Normalizer) Normalize(absolute float64, def *role.Definition) float64 {
	b := n.Benchmark(def)
	if b.Degenerate {
		metrics.RecordDegenerateBenchmark(n.settings.PartitionFor(def).Name())
		n.logger.Warn(context.Background(), "degenerate benchmark; all category weights are zero",
			logger.String("role", def.Name),
			logger.String("partition", n.settings.PartitionFor(def).Name()),
		)
		return 0
	}
	v := maxScoreValue * (absolute - b.Worst) / (b.Best - b.Worst)
	return math.Max(0, math.Min(maxScoreValue, v))
}

// Benchmark returns the cached benchmark for def, computing it on first use.
func (n *Normalizer) Benchmark(def *role.Definition) Benchmark {
	key := benchmarkKey{settings: n.settings.Fingerprint(), role: roleFingerprint(def)}
	if b, ok := n.cache.get(key); ok {
		metrics.RecordBenchmarkCacheHit()
		return b
	}
	metrics.RecordBenchmarkCacheMiss()

	part := n.settings.PartitionFor(def)
	worst := n.settings.absolute(part, def, constant(attribute.MinValue))
	best := n.settings.absolute(part, def, constant(attribute.MaxValue))
	b := Benchmark{Worst: worst, Best: best, Degenerate: best == worst}
	n.cache.put(key, b)
	return b
}

func constant(v int) func(attribute.Name) float64 {
	f := float64(v)
	return func(attribute.Name) float64 { return f }
}

// BenchmarkCache memoizes benchmarks by (role, multiplier set, weight set).
// It is safe for concurrent use and may be shared across settings snapshots.
type BenchmarkCache struct {
	m sync.Map
}

// NewBenchmarkCache returns an empty cache.
func NewBenchmarkCache() *BenchmarkCache {
	return &BenchmarkCache{}
}

// Len returns the number of cached benchmarks.
func (c *BenchmarkCache) Len() int {
	n := 0
	c.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

type benchmarkKey struct {
	settings uint64
	role     uint64
}

func (c *BenchmarkCache) get(k benchmarkKey) (Benchmark, bool) {
	v, ok := c.m.Load(k)
	if !ok {
		return Benchmark{}, false
	}
	return v.(Benchmark), true
}

func (c *BenchmarkCache) put(k benchmarkKey, b Benchmark) {
	c.m.Store(k, b)
}

// roleFingerprint covers everything of a role that influences its benchmark,
// so redefined roles sharing a name never reuse a stale entry.
func roleFingerprint(def *role.Definition) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(def.Name)
	if def.Goalkeeper {
		_, _ = d.WriteString("#gk")
	}
	_, _ = d.WriteString("#key:" + joinNames(def.Key))
	_, _ = d.WriteString("#pref:" + joinNames(def.Preferable))
	return d.Sum64()
}

func joinNames(names []attribute.Name) string {
	s := make([]string, len(names))
	for i, n := range names {
		s[i] = string(n)
	}
	return strings.Join(s, ",")
}
