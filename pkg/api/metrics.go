package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusHit  = "hit"
	statusMiss = "miss"
)

// Metrics holds all Prometheus metrics for the dictionary service.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	lookupsTotal      *prometheus.CounterVec
	dictEntriesTotal  prometheus.Gauge
	healthChecksTotal prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics on reg. Tests
// pass a private registry so repeated construction cannot collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "textdb_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "textdb_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "textdb_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		lookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "textdb_lookups_total",
				Help: "Total number of key lookups",
			},
			[]string{"status"},
		),

		dictEntriesTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "textdb_entries_total",
				Help: "Number of entries in the loaded database",
			},
		),

		healthChecksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "textdb_health_checks_total",
				Help: "Total number of health checks",
			},
		),
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordLookup records a key lookup.
func (m *Metrics) RecordLookup(hit bool) {
	status := statusMiss
	if hit {
		status = statusHit
	}
	m.lookupsTotal.WithLabelValues(status).Inc()
}

// SetEntriesTotal updates the loaded entry count gauge.
func (m *Metrics) SetEntriesTotal(n int) {
	m.dictEntriesTotal.Set(float64(n))
}

// RecordHealthCheck records a health check.
func (m *Metrics) RecordHealthCheck() {
	m.healthChecksTotal.Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics.
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
