package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DataSource defines the interface for fetching draw results from external providers
type DataSource interface {
	// FetchDraws retrieves draw results for a game within the specified date range
	FetchDraws(ctx context.Context, gameName string, startDate, endDate time.Time) ([]DrawData, error)

	// FetchLatestDraw retrieves the most recent draw result for a game
	FetchLatestDraw(ctx context.Context, gameName string) (*DrawData, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// DrawData represents a normalized draw result from any data source
type DrawData struct {
	SourceID       string              `json:"source_id"`       // Provider's unique draw ID
	GameName       string              `json:"game_name"`       // Game identifier (e.g., "lotto")
	DrawDate       time.Time           `json:"draw_date"`       // Draw date UTC
	Numbers        []int               `json:"numbers"`         // Winning numbers as published
	VariantNumbers map[string][]int    `json:"variant_numbers"` // Per-variant number sets
	Supplementary  []int               `json:"supplementary"`   // Supplementary/bonus numbers
	Jackpot        *decimal.Decimal    `json:"jackpot"`         // Jackpot amount if published
	PrizeTiers     []PrizeTierData     `json:"prize_tiers"`     // Prize divisions if published
	CreatedAt      time.Time           `json:"created_at"`      // When data was fetched
}

// PrizeTierData represents one prize division as published by the provider
type PrizeTierData struct {
	Division int             `json:"division"`
	Winners  int             `json:"winners"`
	Amount   decimal.Decimal `json:"amount"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

const dataSourceDisabledMsg = "data source disabled"

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
