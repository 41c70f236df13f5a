// Package metrics defines generation-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Generation counter vectors
var (
	GenerationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "generation_runs_total",
		Help:      "Total number of generation runs by strategy and status",
	}, []string{"strategy", "status"})

	SoftFilterViolationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "draw_advisor",
		Name:      "soft_filter_violations_total",
		Help:      "Combinations accepted with a violated soft filter by strategy",
	}, []string{"strategy"})
)

// Generation histogram vectors
var (
	GenerationAttempts = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "draw_advisor",
		Name:      "generation_attempts",
		Help:      "Resampling attempts per accepted combination by strategy",
		Buckets:   []float64{1, 2, 5, 10, 20, 30, 50},
	}, []string{"strategy"})

	FitnessScoreDistribution = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "draw_advisor",
		Name:      "fitness_score",
		Help:      "Fitness scores of generated combinations by strategy",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	}, []string{"strategy"})
)

// RecordGenerationRun records a generation run event.
// status should be one of: "success", "failure"
func RecordGenerationRun(strategy, status string) {
	GenerationRunsTotal.WithLabelValues(strategy, status).Inc()
}

// RecordGenerationAttempts records the attempts used for one accepted
// combination.
func RecordGenerationAttempts(strategy string, attempts float64) {
	GenerationAttempts.WithLabelValues(strategy).Observe(attempts)
}

// RecordSoftFilterViolation records an acceptance with relaxed soft filters.
func RecordSoftFilterViolation(strategy string) {
	SoftFilterViolationsTotal.WithLabelValues(strategy).Inc()
}

// RecordFitnessScore records the fitness score of a generated combination.
func RecordFitnessScore(strategy string, score float64) {
	FitnessScoreDistribution.WithLabelValues(strategy).Observe(score)
}
