// Package metrics exposes Prometheus instrumentation for the analyzer:
// analysis query counters and latencies, snapshot size gauges, and HTTP
// request metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all analyzer metrics backed by a dedicated Prometheus
// registry.
type Registry struct {
	registry *prometheus.Registry

	AnalysisTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	AnalysisVisited  *prometheus.HistogramVec

	SnapshotUnits   prometheus.Gauge
	SnapshotEdges   prometheus.Gauge
	SnapshotReloads *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with all metrics registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.AnalysisTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "infragraph_analysis_total",
			Help: "Total number of analysis queries executed",
		},
		[]string{"query_type", "status"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "infragraph_analysis_duration_seconds",
			Help:    "Analysis query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"query_type"},
	)

	r.AnalysisVisited = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "infragraph_analysis_units_visited",
			Help:    "Number of units visited per analysis query",
			Buckets: []float64{10, 100, 1000, 10000, 100000},
		},
		[]string{"query_type"},
	)

	r.SnapshotUnits = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "infragraph_snapshot_units",
			Help: "Number of units in the current snapshot",
		},
	)

	r.SnapshotEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "infragraph_snapshot_edges",
			Help: "Number of dependency edges in the current snapshot",
		},
	)

	r.SnapshotReloads = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "infragraph_snapshot_reloads_total",
			Help: "Total number of snapshot reload attempts",
		},
		[]string{"status"},
	)

	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "infragraph_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "infragraph_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"method", "path", "status"},
	)

	return r
}

// RecordAnalysis records one analysis query execution.
func (r *Registry) RecordAnalysis(queryType, status string, duration time.Duration, unitsVisited int) {
	r.AnalysisTotal.WithLabelValues(queryType, status).Inc()
	r.AnalysisDuration.WithLabelValues(queryType).Observe(duration.Seconds())
	r.AnalysisVisited.WithLabelValues(queryType).Observe(float64(unitsVisited))
}

// SetSnapshotSize records the dimensions of the current snapshot.
func (r *Registry) SetSnapshotSize(units, edges int) {
	r.SnapshotUnits.Set(float64(units))
	r.SnapshotEdges.Set(float64(edges))
}

// RecordReload records a snapshot reload attempt.
func (r *Registry) RecordReload(status string) {
	r.SnapshotReloads.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// Handler returns the scrape endpoint handler for this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
