// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogDrawIngested logs an ingested draw record.
func (al *AuditLogger) LogDrawIngested(drawID, game, source string, drawDate time.Time, numbers []int, duplicate bool) {
	al.WithFields(logrus.Fields{
		"draw_id":   drawID,
		"game":      game,
		"source":    source,
		"draw_date": drawDate.Format("2006-01-02"),
		"numbers":   numbers,
		"duplicate": duplicate,
	}).Info("Draw record ingested")
}

// LogCombinationSaved logs a saved candidate combination.
func (al *AuditLogger) LogCombinationSaved(combinationID, game string, numbers []int, strategy string, fitnessScore float64) {
	al.WithFields(logrus.Fields{
		"combination_id": combinationID,
		"game":           game,
		"numbers":        numbers,
		"strategy":       strategy,
		"fitness_score":  fitnessScore,
	}).Info("Combination saved")
}

// LogUnsuccessfulRecorded logs a combination recorded as unsuccessful.
func (al *AuditLogger) LogUnsuccessfulRecorded(game string, numbers []int, recordedAt time.Time) {
	al.WithFields(logrus.Fields{
		"game":        game,
		"numbers":     numbers,
		"recorded_at": recordedAt.Unix(),
	}).Info("Unsuccessful combination recorded")
}

// LogCacheInvalidation logs a statistics cache invalidation.
func (al *AuditLogger) LogCacheInvalidation(game, reason string, entriesDropped int) {
	al.WithFields(logrus.Fields{
		"game":            game,
		"reason":          reason,
		"entries_dropped": entriesDropped,
	}).Info("Statistics cache invalidated")
}
