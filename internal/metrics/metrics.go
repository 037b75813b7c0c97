// Package metrics provides Prometheus instrumentation for the session
// service: presenter outcomes, repository latency and cache effectiveness.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SessionOutcomes counts presenter results, labeled by outcome:
	// "redirect", "not_found", "view" or "error".
	SessionOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storm_session_outcomes_total",
		Help: "Total number of session page outcomes",
	}, []string{"outcome"})

	// RepositoryDuration records store call latency in seconds, labeled by op.
	RepositoryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storm_repository_duration_seconds",
		Help:    "Session repository call latency in seconds",
		Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"op"})

	// CacheRequests counts session cache lookups, labeled "hit", "miss" or "error".
	CacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storm_cache_requests_total",
		Help: "Total number of session cache lookups",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(
		SessionOutcomes,
		RepositoryDuration,
		CacheRequests,
	)
}

// ObserveRepository records the time elapsed since start. Use with defer.
func ObserveRepository(op string, start time.Time) {
	RepositoryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
