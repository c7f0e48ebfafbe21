// Package metrics defines the Prometheus collectors exposed at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Engine metrics
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffcast_evaluations_total",
			Help: "Total number of staffing evaluations by outcome",
		},
		[]string{"outcome"},
	)

	EvaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "staffcast_evaluation_duration_seconds",
			Help:    "Staffing evaluation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		},
	)

	RequiredAgentsQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staffcast_required_agents_queries_total",
			Help: "Total number of required-agents queries",
		},
	)

	// Cache metrics
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staffcast_cache_hits_total",
			Help: "Total number of result cache hits",
		},
	)

	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staffcast_cache_misses_total",
			Help: "Total number of result cache misses",
		},
	)

	// Feed metrics
	FeedClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staffcast_feed_clients",
			Help: "Number of connected staffing feed clients",
		},
	)

	// API metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffcast_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)
)

// Outcome labels for EvaluationsTotal.
const (
	OutcomeOK              = "ok"
	OutcomeUnstable        = "unstable"
	OutcomeValidationError = "validation_error"
)

func init() {
	prometheus.MustRegister(
		EvaluationsTotal,
		EvaluationDuration,
		RequiredAgentsQueriesTotal,
		CacheHitsTotal,
		CacheMissesTotal,
		FeedClients,
		HTTPRequestsTotal,
	)
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
