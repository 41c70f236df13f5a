// Package logger builds the application's structured loggers and the
// component loggers layered on top of them.
package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger from the application configuration.
// Production and staging emit JSON for log aggregation; development keeps
// colored text. An unparseable level falls back to info.
func NewLogger(level, environment string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	parsed, parseErr := logrus.ParseLevel(level)
	if parseErr != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	switch environment {
	case "production", "staging":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	if parseErr != nil {
		log.WithField("log_level", level).Warn("Unknown log level, using info")
	}

	return log
}
