package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("not-a-level", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerFormatterPerEnvironment(t *testing.T) {
	log := NewLogger("info", "production")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "production should log JSON")

	log = NewLogger("info", "staging")
	_, ok = log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "staging should log JSON")

	log = NewLogger("info", "development")
	_, ok = log.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok, "development should log colored text")
}

func TestGenerationLoggerPoolsBuilt(t *testing.T) {
	log, buf := setupTestLogger()
	genLogger := NewGenerationLogger(log)

	genLogger.LogPoolsBuilt("lotto", "standard", 10, 10, 10)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "lotto", logEntry["game"])
	assert.Equal(t, "generation", logEntry["component"])
}

func TestGenerationLoggerCandidateAccepted(t *testing.T) {
	log, buf := setupTestLogger()
	genLogger := NewGenerationLogger(log)

	genLogger.LogCandidateAccepted("lotto", "standard", []int{3, 17, 24, 45, 61, 88}, 4, false, 82.5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "standard", logEntry["strategy"])
	assert.Equal(t, float64(4), logEntry["attempts"])
	assert.Equal(t, false, logEntry["soft_filter_violated"])
}

func TestGenerationLoggerSoftFilterRelaxed(t *testing.T) {
	log, buf := setupTestLogger()
	genLogger := NewGenerationLogger(log)

	genLogger.LogSoftFilterRelaxed("lotto", "high_variability", 50)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(50), logEntry["max_attempts"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestGenerationLoggerRun(t *testing.T) {
	log, buf := setupTestLogger()
	genLogger := NewGenerationLogger(log)

	genLogger.LogGenerationRun("lotto", "standard", 5, 5, 42, 12.5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(5), logEntry["produced"])
	assert.Equal(t, float64(42), logEntry["seed"])
}

func TestProviderLoggerRequest(t *testing.T) {
	log, buf := setupTestLogger()
	providerLogger := NewProviderLogger(log)

	providerLogger.LogRecommendationRequest("lotto", "", 3, 45.2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "lotto", logEntry["game"])
	assert.Equal(t, 45.2, logEntry["latency_ms"])
	assert.Equal(t, "provider", logEntry["component"])
}

func TestProviderLoggerValidationRejection(t *testing.T) {
	log, buf := setupTestLogger()
	providerLogger := NewProviderLogger(log)

	providerLogger.LogValidationRejection("lotto", "numbers_distinct", "duplicate number 7")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "numbers_distinct", logEntry["rule"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestAuditLoggerDrawIngested(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogDrawIngested(
		"draw_123",
		"lotto",
		"national_lottery",
		time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		[]int{3, 17, 24, 45, 61, 88},
		false,
	)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "draw_123", logEntry["draw_id"])
	assert.Equal(t, "2024-02-03", logEntry["draw_date"])
	assert.Equal(t, false, logEntry["duplicate"])
}

func TestAuditLoggerCombinationSaved(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogCombinationSaved("comb_001", "lotto", []int{1, 2, 3, 4, 5, 6}, "standard", 64.2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "comb_001", logEntry["combination_id"])
	assert.Equal(t, 64.2, logEntry["fitness_score"])
}

func TestAuditLoggerCacheInvalidation(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogCacheInvalidation("lotto", "new_draw_ingested", 4)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "new_draw_ingested", logEntry["reason"])
	assert.Equal(t, float64(4), logEntry["entries_dropped"])
}

func TestLoggerJSONFormat(t *testing.T) {
	log, buf := setupTestLogger()
	genLogger := NewGenerationLogger(log)

	genLogger.LogGenerationRun("lotto", "standard", 1, 1, 7, 3.2)

	// Verify output is valid JSON
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	assert.NoError(t, err)
	assert.NotEmpty(t, logEntry)
}

func BenchmarkGenerationLoggerCandidateAccepted(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	genLogger := NewGenerationLogger(log)

	for i := 0; i < b.N; i++ {
		genLogger.LogCandidateAccepted("lotto", "standard", []int{3, 17, 24, 45, 61, 88}, 4, false, 82.5)
	}
}

func BenchmarkAuditLoggerDrawIngested(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	auditLogger := NewAuditLogger(log)

	for i := 0; i < b.N; i++ {
		auditLogger.LogDrawIngested(
			"draw_123",
			"lotto",
			"national_lottery",
			time.Now(),
			[]int{3, 17, 24, 45, 61, 88},
			false,
		)
	}
}
