// Package metrics defines the Prometheus instrumentation for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts outbound platform API calls by endpoint and outcome.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trending_upstream_requests_total",
			Help: "Outbound YouTube Data API requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	// UpstreamDuration tracks outbound call latency by endpoint.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trending_upstream_request_duration_seconds",
			Help:    "Latency of outbound YouTube Data API requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// CacheEvents counts fetch-cache hits and misses by cache name.
	CacheEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trending_cache_events_total",
			Help: "Fetch cache hits and misses.",
		},
		[]string{"cache", "event"},
	)

	// LoginAttempts counts login outcomes.
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trending_login_attempts_total",
			Help: "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// ObserveUpstream records one outbound call.
func ObserveUpstream(endpoint string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// CacheHit records a cache hit for the named cache.
func CacheHit(cache string) {
	CacheEvents.WithLabelValues(cache, "hit").Inc()
}

// CacheMiss records a cache miss for the named cache.
func CacheMiss(cache string) {
	CacheEvents.WithLabelValues(cache, "miss").Inc()
}
