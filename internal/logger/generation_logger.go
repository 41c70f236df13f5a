// Package logger provides generation-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// GenerationLogger provides dedicated logging for combination generation.
type GenerationLogger struct {
	*logrus.Entry
}

// NewGenerationLogger creates a new generation logger.
func NewGenerationLogger(baseLogger *logrus.Logger) *GenerationLogger {
	return &GenerationLogger{
		Entry: baseLogger.WithField("component", "generation"),
	}
}

// LogPoolsBuilt logs the candidate pools assembled from the analyzers.
func (gl *GenerationLogger) LogPoolsBuilt(game, strategy string, frequentPool, infrequentPool, delayedPool int) {
	gl.WithFields(logrus.Fields{
		"game":            game,
		"strategy":        strategy,
		"frequent_pool":   frequentPool,
		"infrequent_pool": infrequentPool,
		"delayed_pool":    delayedPool,
	}).Debug("Candidate pools built")
}

// LogCandidateAccepted logs an accepted combination.
func (gl *GenerationLogger) LogCandidateAccepted(game, strategy string, numbers []int, attempts int, softFilterViolated bool, fitnessScore float64) {
	gl.WithFields(logrus.Fields{
		"game":                 game,
		"strategy":             strategy,
		"numbers":              numbers,
		"attempts":             attempts,
		"soft_filter_violated": softFilterViolated,
		"fitness_score":        fitnessScore,
	}).Info("Combination accepted")
}

// LogSoftFilterRelaxed logs acceptance under the retry ceiling.
func (gl *GenerationLogger) LogSoftFilterRelaxed(game, strategy string, maxAttempts int) {
	gl.WithFields(logrus.Fields{
		"game":         game,
		"strategy":     strategy,
		"max_attempts": maxAttempts,
	}).Warn("Retry ceiling reached, soft filters relaxed")
}

// LogGenerationRun logs a completed generation run.
func (gl *GenerationLogger) LogGenerationRun(game, strategy string, requested, produced int, seed int64, durationMs float64) {
	gl.WithFields(logrus.Fields{
		"game":                   game,
		"strategy":               strategy,
		"requested":              requested,
		"produced":               produced,
		"seed":                   seed,
		"generation_duration_ms": durationMs,
	}).Info("Generation run completed")
}
