// Package metrics provides Prometheus metrics for the fairway analytics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the fairway service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core Business Metrics - ingest and aggregation activity
	sessionUploads      prometheus.Counter
	sessionUploadErrors prometheus.Counter
	roundSyncs          prometheus.Counter
	roundSyncErrors     prometheus.Counter
	roundsSaved         prometheus.Counter
	aggregateRebuilds   prometheus.Counter
	aggregateRebuildMs  prometheus.Histogram

	// Operational Health Metrics - loaded data volumes
	sessionsLoaded prometheus.Gauge
	shotsLoaded    prometheus.Gauge
	roundsLoaded   prometheus.Gauge
	jobQueueSize   prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fairway",
		subsystem:        "range",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	// Core Business Metrics
	m.sessionUploads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_uploads_total",
		Help:      "Total number of practice session files accepted",
	})

	m.sessionUploadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_upload_errors_total",
		Help:      "Total number of session uploads rejected or unparseable",
	})

	m.roundSyncs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "round_syncs_total",
		Help:      "Total number of completed activity-tracker sync runs",
	})

	m.roundSyncErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "round_sync_errors_total",
		Help:      "Total number of failed activity-tracker sync runs",
	})

	m.roundsSaved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_saved_total",
		Help:      "Total number of scorecard rounds written to disk",
	})

	m.aggregateRebuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregate_rebuilds_total",
		Help:      "Total number of aggregation pipeline recomputations",
	})

	m.aggregateRebuildMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregate_rebuild_duration_milliseconds",
		Help:      "Histogram of aggregation pipeline recomputation time in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Operational Health Metrics
	m.sessionsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_loaded",
		Help:      "Number of practice sessions currently loaded in memory",
	})

	m.shotsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "shots_loaded",
		Help:      "Number of shot records currently loaded in memory",
	})

	m.roundsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_loaded",
		Help:      "Number of scorecard rounds currently loaded in memory",
	})

	m.jobQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "job_queue_size",
		Help:      "Current size of the background job queue",
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Error Metrics
	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total errors by component and error type",
		},
		[]string{"component", "error_type"},
	)

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total errors by HTTP endpoint, method and error type",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// RecordSessionUpload increments the accepted upload counter.
func RecordSessionUpload() {
	globalManager.sessionUploads.Inc()
}

// RecordSessionUploadError increments the rejected upload counter.
func RecordSessionUploadError() {
	globalManager.sessionUploadErrors.Inc()
}

// RecordRoundSync increments the completed sync counter.
func RecordRoundSync() {
	globalManager.roundSyncs.Inc()
}

// RecordRoundSyncError increments the failed sync counter.
func RecordRoundSyncError() {
	globalManager.roundSyncErrors.Inc()
}

// RecordRoundSaved increments the saved rounds counter.
func RecordRoundSaved() {
	globalManager.roundsSaved.Inc()
}

// RecordAggregateRebuild records one pipeline recomputation and its duration.
func RecordAggregateRebuild(durationMs float64) {
	globalManager.aggregateRebuilds.Inc()
	globalManager.aggregateRebuildMs.Observe(durationMs)
}

// UpdateSessionsLoaded sets the loaded session count gauge.
func UpdateSessionsLoaded(count int) {
	globalManager.sessionsLoaded.Set(float64(count))
}

// UpdateShotsLoaded sets the loaded shot count gauge.
func UpdateShotsLoaded(count int) {
	globalManager.shotsLoaded.Set(float64(count))
}

// UpdateRoundsLoaded sets the loaded round count gauge.
func UpdateRoundsLoaded(count int) {
	globalManager.roundsLoaded.Set(float64(count))
}

// UpdateJobQueueSize sets the background job queue size gauge.
func UpdateJobQueueSize(size int) {
	globalManager.jobQueueSize.Set(float64(size))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent records an error by component and type.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error by endpoint, method and type.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records the average GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
