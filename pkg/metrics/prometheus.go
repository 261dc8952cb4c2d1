// Package metrics provides Prometheus metrics for the songrank service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector used by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ledger business metrics
	matchesRecorded prometheus.Counter
	rostersSeeded   prometheus.Counter
	ledgerResets    prometheus.Counter
	rosterSize      prometheus.Gauge
	snapshotCount   prometheus.Gauge

	// Store metrics
	storeWriteLatency prometheus.Histogram
	storeQueryLatency prometheus.Histogram
	storeErrors       prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error breakdowns
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry so /healthz never carries default Go collectors twice.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "songrank",
		subsystem:        "ledger",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.matchesRecorded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_recorded_total",
		Help:      "Total number of match events appended to the ledger",
	})
	m.rostersSeeded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rosters_seeded_total",
		Help:      "Total number of successful roster seeds",
	})
	m.ledgerResets = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resets_total",
		Help:      "Total number of full ledger resets",
	})
	m.rosterSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Number of songs currently in the roster",
	})
	m.snapshotCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_count",
		Help:      "Highest recorded snapshot index (match count)",
	})

	m.storeWriteLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "write_latency_ms",
		Help:      "Latency of ledger write transactions in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.storeQueryLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "query_latency_ms",
		Help:      "Latency of ledger read queries in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.storeErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "errors_total",
		Help:      "Total number of storage failures",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "errors",
		Name:      "by_component_total",
		Help:      "Errors by component and type",
	}, []string{"component", "error_type"})
	m.errorsByEndpoint = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "errors",
		Name:      "by_endpoint_total",
		Help:      "Errors by endpoint, method and type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current heap allocation in bytes",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers delegating to the global manager.

func RecordMatchRecorded() {
	globalManager.matchesRecorded.Inc()
}

func RecordRosterSeeded() {
	globalManager.rostersSeeded.Inc()
}

func RecordLedgerReset() {
	globalManager.ledgerResets.Inc()
}

func UpdateRosterSize(n int) {
	globalManager.rosterSize.Set(float64(n))
}

func UpdateSnapshotCount(n int64) {
	globalManager.snapshotCount.Set(float64(n))
}

func RecordStoreWriteLatency(latencyMs float64) {
	globalManager.storeWriteLatency.Observe(latencyMs)
}

func RecordStoreQueryLatency(latencyMs float64) {
	globalManager.storeQueryLatency.Observe(latencyMs)
}

func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry served at /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
