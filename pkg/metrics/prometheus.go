// Package metrics provides Prometheus metrics for the candidate view service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes recorded by RecordLoad.
const (
	LoadSuccess     = "success"
	LoadFetchError  = "fetch_error"
	LoadStatusError = "status_error"
	LoadDecodeError = "decode_error"
)

// Manager owns the Prometheus collectors for one registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Collection
	loadsTotal        *prometheus.CounterVec
	loadDuration      prometheus.Histogram
	collectionSize    prometheus.Gauge
	collectionVersion prometheus.Gauge
	duplicateIDs      prometheus.Gauge
	reloadsCoalesced  prometheus.Counter

	// Projection
	projectionLatency prometheus.Histogram
	projectionSize    prometheus.Histogram
	projectionsTotal  *prometheus.CounterVec

	// Sessions
	sessionsActive  prometheus.Gauge
	sessionsCreated prometheus.Counter
	sessionsEvicted *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// customRegistry avoids the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "candidateview",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for all collectors
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.loadsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "loads_total",
		Help:        "Candidate collection loads by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "load_duration_milliseconds",
		Help:        "Duration of candidate collection loads in milliseconds",
		Buckets:     []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		ConstLabels: labels,
	})

	m.collectionSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "collection_size",
		Help:        "Number of candidate records currently held",
		ConstLabels: labels,
	})

	m.collectionVersion = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "collection_version",
		Help:        "Number of times the collection has been replaced",
		ConstLabels: labels,
	})

	m.duplicateIDs = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "collection_duplicate_ids",
		Help:        "Number of ids that occur more than once in the last loaded collection",
		ConstLabels: labels,
	})

	m.reloadsCoalesced = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reloads_coalesced_total",
		Help:        "Reload triggers absorbed by an already pending reload",
		ConstLabels: labels,
	})

	m.projectionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "projection_latency_milliseconds",
		Help:        "Time spent filtering and ordering a projection in milliseconds",
		Buckets:     []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
		ConstLabels: labels,
	})

	m.projectionSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "projection_size",
		Help:        "Number of records in computed projections",
		Buckets:     prometheus.ExponentialBuckets(1, 4, 8),
		ConstLabels: labels,
	})

	m.projectionsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "projections_total",
		Help:        "Projections computed by sort directive",
		ConstLabels: labels,
	}, []string{"sort"})

	m.sessionsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sessions_active",
		Help:        "Number of live view sessions",
		ConstLabels: labels,
	})

	m.sessionsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sessions_created_total",
		Help:        "Total number of view sessions created",
		ConstLabels: labels,
	})

	m.sessionsEvicted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sessions_evicted_total",
		Help:        "View sessions removed by reason",
		ConstLabels: labels,
	}, []string{"reason"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "HTTP error responses by endpoint, method and error type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// RecordLoad records the outcome and duration of one collection load.
func (m *Manager) RecordLoad(outcome string, durationMs float64) error {
	switch outcome {
	case LoadSuccess, LoadFetchError, LoadStatusError, LoadDecodeError:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLoadOutcome, outcome)
	}
	m.loadsTotal.WithLabelValues(outcome).Inc()
	m.loadDuration.Observe(durationMs)
	return nil
}

// RecordLoad records a load on the global manager.
func RecordLoad(outcome string, durationMs float64) error {
	return globalManager.RecordLoad(outcome, durationMs)
}

// UpdateCollection sets the collection size and version gauges.
func UpdateCollection(size int, version uint64) {
	globalManager.collectionSize.Set(float64(size))
	globalManager.collectionVersion.Set(float64(version))
}

// UpdateDuplicateIDs sets the duplicate id gauge.
func UpdateDuplicateIDs(count int) {
	globalManager.duplicateIDs.Set(float64(count))
}

// RecordReloadCoalesced increments the coalesced reload counter.
func RecordReloadCoalesced() {
	globalManager.reloadsCoalesced.Inc()
}

// RecordProjection records latency, size and sort directive of one projection.
func RecordProjection(sort string, latencyMs float64, size int) {
	globalManager.projectionLatency.Observe(latencyMs)
	globalManager.projectionSize.Observe(float64(size))
	globalManager.projectionsTotal.WithLabelValues(sort).Inc()
}

// UpdateSessionsActive sets the live session gauge.
func UpdateSessionsActive(count int) {
	globalManager.sessionsActive.Set(float64(count))
}

// RecordSessionCreated increments the created sessions counter.
func RecordSessionCreated() {
	globalManager.sessionsCreated.Inc()
}

// RecordSessionEvicted increments the evicted sessions counter for reason.
func RecordSessionEvicted(reason string) {
	globalManager.sessionsEvicted.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error response for endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
