// Package metrics provides Prometheus metrics for the pitchrank rating
// service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultRefreshInterval = 10 * time.Second

// Manager owns every Prometheus collector the service registers.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Rating pipeline metrics.
	matchesProcessed    prometheus.Counter
	matchesDuplicate    prometheus.Counter
	calculationsTotal   prometheus.Counter
	knockoutProtections prometheus.Counter
	pointsDelta         prometheus.Histogram
	calculationErrors   prometheus.Counter

	// Queue metrics.
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueTotal  prometheus.Counter
	queueDequeueTotal  prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker metrics.
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Store metrics.
	storeTeams         prometheus.Gauge
	storeUpdateLatency prometheus.Histogram
	snapshotsTotal     prometheus.Counter

	// Fixtures provider metrics.
	fixturesPolls       prometheus.Counter
	fixturesPollErrors  prometheus.Counter
	fixturesFetched     prometheus.Counter
	fixturesHTTPLatency prometheus.Histogram

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error breakdown.
	errorsByComponent *prometheus.CounterVec

	// Process metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry keeps the default Go collectors out of our scrape.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics must exist before any caller
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pitchrank",
		subsystem:        "ratings",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
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

	m.matchesProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "matches_processed_total",
		Help: "Completed matches run through the rating engine.",
	})
	m.matchesDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "matches_duplicate_total",
		Help: "Matches skipped because their fixture id was already seen.",
	})
	m.calculationsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "calculations_total",
		Help: "Per-team rating calculations performed.",
	})
	m.knockoutProtections = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "knockout_protections_total",
		Help: "Calculations where knockout protection zeroed a negative delta.",
	})
	m.pointsDelta = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "points_delta",
		Help:    "Absolute rating point deltas applied to teams.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 45, 60},
	})
	m.calculationErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "calculation_errors_total",
		Help: "Rating calculations that failed to apply.",
	})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Matches currently waiting in the processing queue.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Configured capacity of the match queue.",
	})
	m.queueUtilization = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_utilization",
		Help: "Queue fill ratio between 0 and 1.",
	})
	m.queueEnqueueTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_total",
		Help: "Matches accepted onto the queue.",
	})
	m.queueDequeueTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeue_total",
		Help: "Matches handed to workers.",
	})
	m.queueEnqueueErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_errors_total",
		Help: "Enqueue attempts rejected (full or closed queue).",
	})

	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Number of match workers in the pool.",
	})
	m.workerProcessingLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "worker_processing_latency_ms",
		Help:    "End-to-end latency of processing one match, in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.workerErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total",
		Help: "Worker failures while processing matches.",
	})

	m.storeTeams = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "store_teams",
		Help: "Teams tracked in the ratings store.",
	})
	m.storeUpdateLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "store_update_latency_ms",
		Help:    "Latency of ratings store updates, in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.snapshotsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshots_total",
		Help: "Ranking snapshots recorded.",
	})

	m.fixturesPolls = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "fixtures_polls_total",
		Help: "Polling sweeps against the fixtures provider.",
	})
	m.fixturesPollErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "fixtures_poll_errors_total",
		Help: "Polling sweeps that ended with an error.",
	})
	m.fixturesFetched = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "fixtures_fetched_total",
		Help: "Completed fixtures fetched from the provider.",
	})
	m.fixturesHTTPLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "fixtures_http_latency_ms",
		Help:    "Latency of provider HTTP requests, in milliseconds.",
		Buckets: m.histogramBuckets,
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration by endpoint, method, and status, in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.errorsByComponent = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_total",
		Help: "Errors by component and kind.",
	}, []string{"component", "kind"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system",
		Name: "memory_bytes",
		Help: "Allocated heap bytes.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system",
		Name: "goroutines",
		Help: "Live goroutine count.",
	})
	m.systemGCPauseTime = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "system",
		Name:    "gc_pause_ms",
		Help:    "Average GC pause time, in milliseconds.",
		Buckets: m.histogramBuckets,
	})
}

// GetRegistry returns the registry backing the global manager, for scraping.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Rating pipeline helpers.

func RecordMatchProcessed()     { globalManager.matchesProcessed.Inc() }
func RecordMatchDuplicate()     { globalManager.matchesDuplicate.Inc() }
func RecordCalculation()        { globalManager.calculationsTotal.Inc() }
func RecordKnockoutProtection() { globalManager.knockoutProtections.Inc() }
func RecordCalculationError()   { globalManager.calculationErrors.Inc() }

func RecordPointsDelta(delta float64) {
	if delta < 0 {
		delta = -delta
	}
	globalManager.pointsDelta.Observe(delta)
}

// Queue helpers.

func UpdateQueueSize(n int)             { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)         { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(r float64)  { globalManager.queueUtilization.Set(r) }
func RecordQueueEnqueue()               { globalManager.queueEnqueueTotal.Inc() }
func RecordQueueDequeue()               { globalManager.queueDequeueTotal.Inc() }
func RecordQueueEnqueueError()          { globalManager.queueEnqueueErrors.Inc() }

// Worker helpers.

func UpdateWorkerCount(n int)                    { globalManager.workerCount.Set(float64(n)) }
func RecordWorkerProcessingLatency(ms float64)   { globalManager.workerProcessingLatency.Observe(ms) }
func RecordWorkerError()                         { globalManager.workerErrors.Inc() }

// Store helpers.

func UpdateStoreTeams(n int)                { globalManager.storeTeams.Set(float64(n)) }
func RecordStoreUpdateLatency(ms float64)   { globalManager.storeUpdateLatency.Observe(ms) }
func RecordSnapshot()                       { globalManager.snapshotsTotal.Inc() }

// Fixtures helpers.

func RecordFixturesPoll()                  { globalManager.fixturesPolls.Inc() }
func RecordFixturesPollError()             { globalManager.fixturesPollErrors.Inc() }
func RecordFixturesFetched(n int)          { globalManager.fixturesFetched.Add(float64(n)) }
func RecordFixturesHTTPLatency(ms float64) { globalManager.fixturesHTTPLatency.Observe(ms) }

// HTTP helpers.

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// RecordErrorByComponent counts an error attributed to a component.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}

// System helpers.

func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(n int)     { globalManager.systemGoroutineCount.Set(float64(n)) }
func RecordSystemGCPauseTime(ms float64)   { globalManager.systemGCPauseTime.Observe(ms) }
