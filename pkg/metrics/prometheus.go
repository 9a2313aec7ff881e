// Package metrics provides Prometheus metrics for the DWRS service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Scoring
	scoresComputed     *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	benchmarkHits      prometheus.Counter
	benchmarkMisses    prometheus.Counter
	benchmarkDegen     *prometheus.CounterVec

	// Assignment
	assignmentRuns     prometheus.Counter
	assignmentDuration prometheus.Histogram
	assignmentPasses   *prometheus.CounterVec
	assignmentGaps     *prometheus.CounterVec
	surplusSize        prometheus.Gauge

	// Roster and settings
	rosterPlayers   prometheus.Gauge
	snapshotReloads *prometheus.CounterVec

	// Matrix workers
	matrixJobs         prometheus.Counter
	matrixJobLatency   prometheus.Histogram
	workerActiveCount  prometheus.Gauge
	matrixCellFailures prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "dwrs",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogram(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.customLabels, Buckets: m.histogramBuckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.scoresComputed = auto.NewCounterVec(
		m.counter("scores_computed_total", "Player-role scores computed, by category partition"),
		[]string{"partition"},
	)
	m.validationFailures = auto.NewCounterVec(
		m.counter("validation_failures_total", "Players rejected for missing or out-of-range attributes"),
		[]string{"partition"},
	)
	m.benchmarkHits = auto.NewCounter(m.counter("benchmark_cache_hits_total", "Benchmark cache hits"))
	m.benchmarkMisses = auto.NewCounter(m.counter("benchmark_cache_misses_total", "Benchmark cache misses"))
	m.benchmarkDegen = auto.NewCounterVec(
		m.counter("benchmark_degenerate_total", "Normalizations against a zero-width benchmark range"),
		[]string{"partition"},
	)

	m.assignmentRuns = auto.NewCounter(m.counter("assignment_runs_total", "Completed assignment runs"))
	m.assignmentDuration = auto.NewHistogram(m.histogram("assignment_duration_milliseconds", "Assignment run latency in milliseconds"))
	m.assignmentPasses = auto.NewCounterVec(
		m.counter("assignment_passes_total", "Lineup passes run, by pass"),
		[]string{"pass"},
	)
	m.assignmentGaps = auto.NewCounterVec(
		m.counter("assignment_gaps_total", "Slots left unfilled, by pass"),
		[]string{"pass"},
	)
	m.surplusSize = auto.NewGauge(m.gauge("surplus_size", "Surplus size of the latest assignment run"))

	m.rosterPlayers = auto.NewGauge(m.gauge("roster_players", "Players currently held in the roster"))
	m.snapshotReloads = auto.NewCounterVec(
		m.counter("snapshot_reloads_total", "Settings snapshot reloads, by result"),
		[]string{"result"},
	)

	m.matrixJobs = auto.NewCounter(m.counter("matrix_jobs_total", "Player-role matrix cells processed"))
	m.matrixJobLatency = auto.NewHistogram(m.histogram("matrix_job_latency_milliseconds", "Matrix cell latency in milliseconds"))
	m.workerActiveCount = auto.NewGauge(m.gauge("worker_active_count", "Number of running matrix workers"))
	m.matrixCellFailures = auto.NewCounter(m.counter("matrix_cell_failures_total", "Matrix cells that failed validation"))

	m.httpRequests = auto.NewCounterVec(
		m.counter("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogram("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpErrors = auto.NewCounterVec(
		m.counter("http_errors_total", "HTTP error responses by endpoint and error kind"),
		[]string{"endpoint", "kind"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gauge("system_memory_usage_bytes", "Heap memory in use in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gauge("system_goroutine_count", "Number of goroutines"))
}

// RecordScoreComputed counts one computed score.
func RecordScoreComputed(partition string) {
	globalManager.scoresComputed.WithLabelValues(partition).Inc()
}

// RecordValidationFailure counts a player that failed attribute validation.
func RecordValidationFailure(partition string) {
	globalManager.validationFailures.WithLabelValues(partition).Inc()
}

// RecordBenchmarkCacheHit counts a benchmark served from cache.
func RecordBenchmarkCacheHit() {
	globalManager.benchmarkHits.Inc()
}

// RecordBenchmarkCacheMiss counts a benchmark computed from scratch.
func RecordBenchmarkCacheMiss() {
	globalManager.benchmarkMisses.Inc()
}

// RecordDegenerateBenchmark counts a normalization against best == worst.
func RecordDegenerateBenchmark(partition string) {
	globalManager.benchmarkDegen.WithLabelValues(partition).Inc()
}

// RecordAssignmentDuration records a completed run.
func RecordAssignmentDuration(d time.Duration) {
	globalManager.assignmentRuns.Inc()
	globalManager.assignmentDuration.Observe(float64(d.Microseconds()) / 1000)
}

// RecordAssignmentPass records a lineup pass and its gaps.
func RecordAssignmentPass(pass string, gaps int) {
	globalManager.assignmentPasses.WithLabelValues(pass).Inc()
	globalManager.assignmentGaps.WithLabelValues(pass).Add(float64(gaps))
}

// RecordSurplusSize sets the latest surplus size.
func RecordSurplusSize(n int) {
	globalManager.surplusSize.Set(float64(n))
}

// UpdateRosterSize sets the number of stored players.
func UpdateRosterSize(n int) {
	globalManager.rosterPlayers.Set(float64(n))
}

// RecordSnapshotReload counts a settings reload; result is "ok" or "error".
func RecordSnapshotReload(result string) {
	globalManager.snapshotReloads.WithLabelValues(result).Inc()
}

// RecordMatrixJob records one matrix cell.
func RecordMatrixJob(latencyMs float64) {
	globalManager.matrixJobs.Inc()
	globalManager.matrixJobLatency.Observe(latencyMs)
}

// RecordMatrixCellFailure counts a matrix cell that could not be scored.
func RecordMatrixCellFailure() {
	globalManager.matrixCellFailures.Inc()
}

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPError counts an error response by kind.
func RecordHTTPError(endpoint, kind string) {
	globalManager.httpErrors.WithLabelValues(endpoint, kind).Inc()
}

// UpdateSystemMemoryUsage sets heap memory in use.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
