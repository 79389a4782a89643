// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SimulationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simulation_runs_total",
		Help: "Total number of simulation runs by outcome",
	}, []string{"outcome"})

	SimulationCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulation_cache_hits_total",
		Help: "Seeded simulation runs served from cache",
	})

	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "simulation_duration_seconds",
		Help:    "Wall time of a single engine run",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
	})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "code"})

	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Requests rejected by the per-client rate limiter",
	})
)

func init() {
	prometheus.MustRegister(SimulationRunsTotal)
	prometheus.MustRegister(SimulationCacheHitsTotal)
	prometheus.MustRegister(SimulationDuration)
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(RateLimitedTotal)
}
