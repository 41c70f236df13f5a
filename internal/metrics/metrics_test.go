package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordDrawIngested(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordDrawIngested()
	})

	assert.NotPanics(t, func() {
		RecordDrawDeduplicated()
	})
}

func TestRecordAnalysisRun(t *testing.T) {
	InitRegistry()
	durationSeconds := 0.5

	assert.NotPanics(t, func() {
		RecordAnalysisRun(durationSeconds)
	})
}

func TestUpdateDrawHistorySize(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name  string
		count float64
	}{
		{
			name:  "populated history",
			count: 500,
		},
		{
			name:  "empty history",
			count: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateDrawHistorySize("lotto", tt.count)
			})
		})
	}
}

func TestUpdateUnsuccessfulCombinations(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		UpdateUnsuccessfulCombinations("lotto", 42)
	})
}

func TestStatsCacheCounters(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordStatsCacheHit()
		RecordStatsCacheMiss()
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func TestGenerationMetrics(t *testing.T) {
	InitRegistry()

	strategy := "standard"

	assert.NotPanics(t, func() {
		RecordGenerationRun(strategy, "success")
	})

	assert.NotPanics(t, func() {
		RecordGenerationAttempts(strategy, 7)
	})

	assert.NotPanics(t, func() {
		RecordSoftFilterViolation(strategy)
	})

	assert.NotPanics(t, func() {
		RecordFitnessScore(strategy, 82.5)
	})
}

func TestIngestionMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordIngestionRun(1.5, 1700000000)
	})
}

func BenchmarkRecordDrawIngested(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordDrawIngested()
	}
}

func BenchmarkRecordGenerationAttempts(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordGenerationAttempts("standard", 7)
	}
}
