package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// NationalLotteryClient implements DataSource for the national lottery
// results API
type NationalLotteryClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *log.Logger
}

// NationalLotteryDraw represents a draw from the results API
type NationalLotteryDraw struct {
	ID             string                     `json:"id"`
	Game           string                     `json:"game"`
	DrawDate       string                     `json:"drawDate"`
	Numbers        []int                      `json:"numbers"`
	VariantNumbers map[string][]int           `json:"variantNumbers"`
	Supplementary  []int                      `json:"supplementaryNumbers"`
	Jackpot        *string                    `json:"jackpot"`
	PrizeBreakdown []NationalLotteryPrizeTier `json:"prizeBreakdown"`
}

// NationalLotteryPrizeTier represents one prize division from the results API
type NationalLotteryPrizeTier struct {
	Division int    `json:"division"`
	Winners  int    `json:"winners"`
	Amount   string `json:"amount"`
}

// NewNationalLotteryClient creates a new national lottery API client
func NewNationalLotteryClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, logger *log.Logger) *NationalLotteryClient {
	if baseURL == "" {
		baseURL = "https://api.national-lottery.example.com/v1"
	}
	return &NationalLotteryClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchDraws retrieves draw results for a game within the specified date range
func (c *NationalLotteryClient) FetchDraws(ctx context.Context, gameName string, startDate, endDate time.Time) ([]DrawData, error) {
	if !c.enabled {
		return nil, NewDataSourceError("national_lottery", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	url := fmt.Sprintf("%s/games/%s/draws?from=%s&to=%s",
		c.baseURL, gameName, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError("national_lottery", ErrCodeNetworkError, "failed to create request", err)
	}

	// Add authentication header
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("national_lottery", ErrCodeNetworkError, "failed to fetch draws", err)
	}
	defer resp.Body.Close()

	// Handle authentication errors
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewDataSourceError("national_lottery", ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	// Handle rate limiting
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError("national_lottery", ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError("national_lottery", ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var nlDraws []NationalLotteryDraw
	if err := json.NewDecoder(resp.Body).Decode(&nlDraws); err != nil {
		return nil, NewDataSourceError("national_lottery", ErrCodeInvalidData, "failed to parse response", err)
	}

	// Convert to DrawData
	draws := make([]DrawData, 0, len(nlDraws))
	for _, nlDraw := range nlDraws {
		draw, err := c.convertDraw(&nlDraw)
		if err != nil {
			c.logger.Printf("Failed to convert draw %s: %v", nlDraw.ID, err)
			continue
		}
		draws = append(draws, *draw)
	}

	return draws, nil
}

// FetchLatestDraw retrieves the most recent draw result for a game
func (c *NationalLotteryClient) FetchLatestDraw(ctx context.Context, gameName string) (*DrawData, error) {
	if !c.enabled {
		return nil, NewDataSourceError("national_lottery", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	url := fmt.Sprintf("%s/games/%s/draws/latest", c.baseURL, gameName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError("national_lottery", ErrCodeNetworkError, "failed to create request", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("national_lottery", ErrCodeNetworkError, "failed to fetch latest draw", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, NewDataSourceError("national_lottery", ErrCodeNotFound, "game not found", nil)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewDataSourceError("national_lottery", ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewDataSourceError("national_lottery", ErrCodeServerError, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var nlDraw NationalLotteryDraw
	if err := json.NewDecoder(resp.Body).Decode(&nlDraw); err != nil {
		return nil, NewDataSourceError("national_lottery", ErrCodeInvalidData, "failed to parse response", err)
	}

	return c.convertDraw(&nlDraw)
}

// Name returns the data source name
func (c *NationalLotteryClient) Name() string {
	return "national_lottery"
}

// IsEnabled returns whether this data source is enabled
func (c *NationalLotteryClient) IsEnabled() bool {
	return c.enabled
}

// convertDraw converts the national lottery draw format to DrawData
func (c *NationalLotteryClient) convertDraw(nlDraw *NationalLotteryDraw) (*DrawData, error) {
	drawDate, err := time.Parse("2006-01-02", nlDraw.DrawDate)
	if err != nil {
		// Some endpoints publish full timestamps
		drawDate, err = time.Parse(time.RFC3339, nlDraw.DrawDate)
		if err != nil {
			return nil, fmt.Errorf("invalid draw date %q: %w", nlDraw.DrawDate, err)
		}
	}

	draw := &DrawData{
		SourceID:       nlDraw.ID,
		GameName:       nlDraw.Game,
		DrawDate:       drawDate.UTC(),
		Numbers:        nlDraw.Numbers,
		VariantNumbers: nlDraw.VariantNumbers,
		Supplementary:  nlDraw.Supplementary,
		Jackpot:        parseDecimal(nlDraw.Jackpot),
		CreatedAt:      time.Now(),
	}

	// Convert prize breakdown
	for _, tier := range nlDraw.PrizeBreakdown {
		amount, err := decimal.NewFromString(tier.Amount)
		if err != nil {
			if c.logger != nil {
				c.logger.Printf("Failed to parse prize amount for division %d: %v", tier.Division, err)
			}
			continue
		}
		draw.PrizeTiers = append(draw.PrizeTiers, PrizeTierData{
			Division: tier.Division,
			Winners:  tier.Winners,
			Amount:   amount,
		})
	}

	return draw, nil
}

// parseDecimal parses a string to decimal.Decimal, returning nil if invalid
func parseDecimal(s *string) *decimal.Decimal {
	if s == nil || *s == "" {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}
