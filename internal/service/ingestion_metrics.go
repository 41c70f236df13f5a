package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about one ingestion run
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	TotalDraws       int
	SuccessfulDraws  int
	Duplicates       int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.TotalDraws = 0
	m.SuccessfulDraws = 0
	m.Duplicates = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordDraw increments successful draw count
func (m *IngestionMetrics) RecordDraw() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuccessfulDraws++
}

// RecordDuplicate increments duplicate count
func (m *IngestionMetrics) RecordDuplicate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duplicates++
}

// RecordValidationError increments validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// RecordError increments error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// Snapshot returns a copy safe to read after the run continues
func (m *IngestionMetrics) Snapshot() IngestionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return IngestionMetrics{
		StartTime:        m.StartTime,
		Duration:         m.Duration,
		TotalDraws:       m.TotalDraws,
		SuccessfulDraws:  m.SuccessfulDraws,
		Duplicates:       m.Duplicates,
		ValidationErrors: m.ValidationErrors,
		Errors:           m.Errors,
	}
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	successRate := float64(0)
	if m.TotalDraws > 0 {
		successRate = float64(m.SuccessfulDraws) / float64(m.TotalDraws) * 100
	}

	return fmt.Sprintf(
		"IngestionMetrics{Total=%d, Successful=%d (%.1f%%), Duplicates=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.TotalDraws,
		m.SuccessfulDraws,
		successRate,
		m.Duplicates,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
