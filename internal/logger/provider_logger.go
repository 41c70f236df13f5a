// Package logger provides recommendation-provider logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// ProviderLogger provides dedicated logging for recommendation provider
// operations.
type ProviderLogger struct {
	*logrus.Entry
}

// NewProviderLogger creates a new provider logger.
func NewProviderLogger(baseLogger *logrus.Logger) *ProviderLogger {
	return &ProviderLogger{
		Entry: baseLogger.WithField("component", "provider"),
	}
}

// LogRecommendationRequest logs a completed recommendation request.
func (pl *ProviderLogger) LogRecommendationRequest(game, variant string, count int, latencyMs float64) {
	pl.WithFields(logrus.Fields{
		"game":       game,
		"variant":    variant,
		"count":      count,
		"latency_ms": latencyMs,
	}).Info("Recommendation request completed")
}

// LogValidationRejection logs a rejected provider recommendation.
func (pl *ProviderLogger) LogValidationRejection(game, rule, message string) {
	pl.WithFields(logrus.Fields{
		"game":    game,
		"rule":    rule,
		"message": message,
	}).Warn("Provider recommendation rejected")
}

// LogProviderError logs a provider request failure.
func (pl *ProviderLogger) LogProviderError(game string, errorReason string) {
	pl.WithFields(logrus.Fields{
		"game":         game,
		"error_reason": errorReason,
	}).Error("Recommendation request failed")
}
