// Package metrics provides the centralized Prometheus metrics registry for
// the draw advisor.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourusername/draw-advisor/internal/recommend"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	DrawsIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "draws_ingested_total",
		Help:      "Total number of draw records ingested",
	})
	DrawsDeduplicatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "draws_deduplicated_total",
		Help:      "Total number of duplicate draw records skipped",
	})
	AnalysisRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "analysis_runs_total",
		Help:      "Total number of analysis runs",
	})
	CombinationsSavedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "combinations_saved_total",
		Help:      "Total number of candidate combinations saved",
	})
	StatsCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "stats_cache_hits_total",
		Help:      "Statistics cache hits",
	})
	StatsCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "stats_cache_misses_total",
		Help:      "Statistics cache misses",
	})
)

// Gauge metrics
var (
	DrawHistorySize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "draw_advisor",
		Name:      "draw_history_size",
		Help:      "Number of draw records held per game",
	}, []string{"game"})
	UnsuccessfulCombinations = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "draw_advisor",
		Name:      "unsuccessful_combinations",
		Help:      "Number of recorded unsuccessful combinations per game",
	}, []string{"game"})
	LastIngestionTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "draw_advisor",
		Name:      "last_ingestion_timestamp_seconds",
		Help:      "Unix timestamp of the last successful ingestion run",
	})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "draw_advisor",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of full analysis runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	IngestionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "draw_advisor",
		Name:      "ingestion_duration_seconds",
		Help:      "Duration of ingestion runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(DrawsIngestedTotal)
		registry.MustRegister(DrawsDeduplicatedTotal)
		registry.MustRegister(AnalysisRunsTotal)
		registry.MustRegister(CombinationsSavedTotal)
		registry.MustRegister(StatsCacheHitsTotal)
		registry.MustRegister(StatsCacheMissesTotal)

		// Register gauge metrics
		registry.MustRegister(DrawHistorySize)
		registry.MustRegister(UnsuccessfulCombinations)
		registry.MustRegister(LastIngestionTimestamp)

		// Register histogram metrics
		registry.MustRegister(AnalysisDuration)
		registry.MustRegister(IngestionDuration)

		// Register generation metrics
		registry.MustRegister(GenerationRunsTotal)
		registry.MustRegister(GenerationAttempts)
		registry.MustRegister(SoftFilterViolationsTotal)
		registry.MustRegister(FitnessScoreDistribution)

		// Register recommendation provider metrics
		registry.MustRegister(recommend.ProviderRequestsTotal)
		registry.MustRegister(recommend.ProviderRequestLatency)
		registry.MustRegister(recommend.ValidationFailuresTotal)
		registry.MustRegister(recommend.RecommendationCacheHits)
		registry.MustRegister(recommend.RecommendationCacheMisses)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordDrawIngested records an ingested draw record.
func RecordDrawIngested() {
	DrawsIngestedTotal.Inc()
}

// RecordDrawDeduplicated records a skipped duplicate draw record.
func RecordDrawDeduplicated() {
	DrawsDeduplicatedTotal.Inc()
}

// RecordAnalysisRun records an analysis run and its duration.
func RecordAnalysisRun(durationSeconds float64) {
	AnalysisRunsTotal.Inc()
	AnalysisDuration.Observe(durationSeconds)
}

// RecordCombinationSaved records a saved candidate combination.
func RecordCombinationSaved() {
	CombinationsSavedTotal.Inc()
}

// RecordStatsCacheHit records a statistics cache hit.
func RecordStatsCacheHit() {
	StatsCacheHitsTotal.Inc()
}

// RecordStatsCacheMiss records a statistics cache miss.
func RecordStatsCacheMiss() {
	StatsCacheMissesTotal.Inc()
}

// UpdateDrawHistorySize updates the per-game draw history gauge.
func UpdateDrawHistorySize(game string, count float64) {
	DrawHistorySize.WithLabelValues(game).Set(count)
}

// UpdateUnsuccessfulCombinations updates the per-game unsuccessful set gauge.
func UpdateUnsuccessfulCombinations(game string, count float64) {
	UnsuccessfulCombinations.WithLabelValues(game).Set(count)
}

// RecordIngestionRun records an ingestion run duration and timestamp.
func RecordIngestionRun(durationSeconds float64, completedAtUnix float64) {
	IngestionDuration.Observe(durationSeconds)
	LastIngestionTimestamp.Set(completedAtUnix)
}
