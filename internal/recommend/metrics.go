package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Provider client metrics, registered by the central metrics registry.
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "provider_requests_total",
		Help:      "Total requests to the recommendation provider by outcome",
	}, []string{"outcome"})

	ProviderRequestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "draw_advisor",
		Name:      "provider_request_latency_seconds",
		Help:      "Latency of recommendation provider requests in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	ValidationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "recommendation_validation_failures_total",
		Help:      "Rejected provider recommendations by violated rule",
	}, []string{"rule"})

	RecommendationCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "recommendation_cache_hits_total",
		Help:      "Recommendation cache hits",
	})

	RecommendationCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "recommendation_cache_misses_total",
		Help:      "Recommendation cache misses",
	})
)
