// Package metrics provides Prometheus metrics for the pitchlens analytics engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Aggregation engine
	aggregations        *prometheus.CounterVec
	aggregationDuration prometheus.Histogram
	pagesFetched        prometheus.Counter
	eventsFetched       prometheus.Counter
	eventsFolded        prometheus.Counter
	eventsDuplicate     prometheus.Counter
	eventsRejected      *prometheus.CounterVec
	eventsUnattributed  prometheus.Counter
	shotsScored         prometheus.Counter

	// Comparison
	comparisons       *prometheus.CounterVec
	comparisonSources *prometheus.CounterVec

	// Event store boundary
	storeQueryLatency *prometheus.HistogramVec
	storeRetries      *prometheus.CounterVec
	rosterCacheHits   *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec

	// Process
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// customRegistry keeps the default Go collectors out of the exposition.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pitchlens",
		subsystem:        "analytics",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.aggregations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregations_total",
		Help:      "Match aggregations by result (ok, failed, canceled)",
	}, []string{"result"})

	m.aggregationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_duration_milliseconds",
		Help:      "Wall time of a full match aggregation including page fetches",
		Buckets:   m.histogramBuckets,
	})

	m.pagesFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pages_fetched_total",
		Help:      "Event pages fetched from the event store",
	})

	m.eventsFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_fetched_total",
		Help:      "Raw events returned by the event store",
	})

	m.eventsFolded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_folded_total",
		Help:      "Events routed through the accumulators",
	})

	m.eventsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_duplicate_total",
		Help:      "Events dropped because their id was already folded",
	})

	m.eventsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_rejected_total",
		Help:      "Malformed events skipped during aggregation by reason",
	}, []string{"reason"})

	m.eventsUnattributed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_unattributed_total",
		Help:      "Events without a resolvable home/away team",
	})

	m.shotsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "shots_scored_total",
		Help:      "Shots passed through the xG model",
	})

	m.comparisons = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "comparisons_total",
		Help:      "Match comparisons by result",
	}, []string{"result"})

	m.comparisonSources = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "comparison_sources_total",
		Help:      "Per-side stats source used by comparisons (stored, recomputed)",
	}, []string{"source"})

	m.storeQueryLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_latency_milliseconds",
		Help:      "Event store query latency by operation",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})

	m.storeRetries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_retries_total",
		Help:      "Retried event store calls by operation",
	}, []string{"operation"})

	m.rosterCacheHits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_cache_lookups_total",
		Help:      "Roster and metadata cache lookups by result (hit, miss)",
	}, []string{"result"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Errors by component and error type",
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordAggregation counts a finished aggregation and observes its duration.
func RecordAggregation(result string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.aggregations.WithLabelValues(result).Inc()
	globalManager.aggregationDuration.Observe(durationMs)
}

// RecordPageFetched counts one fetched page and the events it carried.
func RecordPageFetched(events int) {
	if !globalManager.enabled {
		return
	}
	globalManager.pagesFetched.Inc()
	globalManager.eventsFetched.Add(float64(events))
}

// RecordEventsFolded adds n folded events.
func RecordEventsFolded(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.eventsFolded.Add(float64(n))
}

// RecordEventsDuplicate adds n duplicate events.
func RecordEventsDuplicate(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.eventsDuplicate.Add(float64(n))
}

// RecordEventsRejected adds n rejected events for reason.
func RecordEventsRejected(reason string, n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.eventsRejected.WithLabelValues(reason).Add(float64(n))
}

// RecordEventsUnattributed adds n events without a resolvable team.
func RecordEventsUnattributed(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.eventsUnattributed.Add(float64(n))
}

// RecordShotsScored adds n shots scored by the xG model.
func RecordShotsScored(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.shotsScored.Add(float64(n))
}

// RecordComparison counts a finished comparison.
func RecordComparison(result string) {
	if !globalManager.enabled {
		return
	}
	globalManager.comparisons.WithLabelValues(result).Inc()
}

// RecordComparisonSource counts which source resolved one comparison side.
func RecordComparisonSource(source string) {
	if !globalManager.enabled {
		return
	}
	globalManager.comparisonSources.WithLabelValues(source).Inc()
}

// RecordStoreQueryLatency observes an event store call.
func RecordStoreQueryLatency(operation string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeQueryLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordStoreRetry counts a retried event store call.
func RecordStoreRetry(operation string) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeRetries.WithLabelValues(operation).Inc()
}

// RecordRosterCacheLookup counts a cache hit or miss.
func RecordRosterCacheLookup(hit bool) {
	if !globalManager.enabled {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	globalManager.rosterCacheHits.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// SetEnabled toggles recording on the global manager.
func SetEnabled(enabled bool) {
	globalManager.enabled = enabled
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
