package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the load map service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	LoadMapWritesTotal *prometheus.CounterVec
	ExportsTotal       *prometheus.CounterVec
	RealtimeClients    prometheus.Gauge
	EditorSessions     prometheus.Gauge
}

// NewMetricsRegistry registers every metric with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loadmap_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loadmap_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "loadmap_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loadmap_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loadmap_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loadmap_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loadmap_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		LoadMapWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loadmap_saves_total",
				Help: "Load map writes by operation (create, update, delete)",
			},
			[]string{"op"},
		),
		ExportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loadmap_exports_total",
				Help: "Exports rendered by format",
			},
			[]string{"format"},
		),
		RealtimeClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "loadmap_realtime_clients",
				Help: "Current number of connected websocket clients",
			},
		),
		EditorSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "loadmap_editor_sessions",
				Help: "Current number of browser editor sessions",
			},
		),
	}
}

// The helpers below accept a nil registry so callers built without metrics
// (tests, the CLI) need no guards.

func (m *MetricsRegistry) ObserveDBQuery(queryType string, start time.Time) {
	if m == nil {
		return
	}
	m.DBQueriesTotal.WithLabelValues(queryType).Inc()
	m.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

func (m *MetricsRegistry) CacheHit(pattern string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(pattern).Inc()
}

func (m *MetricsRegistry) CacheMiss(pattern string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(pattern).Inc()
}

func (m *MetricsRegistry) LoadMapWrite(op string) {
	if m == nil {
		return
	}
	m.LoadMapWritesTotal.WithLabelValues(op).Inc()
}

func (m *MetricsRegistry) Export(format string) {
	if m == nil {
		return
	}
	m.ExportsTotal.WithLabelValues(format).Inc()
}

func (m *MetricsRegistry) RealtimeClientsChanged(delta float64) {
	if m == nil {
		return
	}
	m.RealtimeClients.Add(delta)
}

func (m *MetricsRegistry) EditorSessionsChanged(delta float64) {
	if m == nil {
		return
	}
	m.EditorSessions.Add(delta)
}
