package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-advisor/internal/config"
	"github.com/yourusername/draw-advisor/internal/models"
)

// Client talks HTTP JSON to the external recommendation provider. The
// provider's output is advisory text-model output; everything it returns
// goes through Validate before anyone downstream sees it.
type Client struct {
	client  *retryablehttp.Client
	baseURL string
	apiKey  string
	model   string
	logger  *logrus.Logger
}

// NewClient creates a provider client from configuration.
func NewClient(cfg *config.RecommenderConfig, logger *logrus.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	retryClient.RetryMax = cfg.RetryAttempts
	retryClient.Logger = nil

	return &Client{
		client:  retryClient,
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		logger:  logger,
	}
}

// recommendationRequest is the provider request payload. The statistics
// summary gives the model context; it carries no probability semantics.
type recommendationRequest struct {
	Model       string                    `json:"model"`
	GameName    string                    `json:"game_name"`
	NumberRange int                       `json:"number_range"`
	PickCount   int                       `json:"pick_count"`
	Count       int                       `json:"count"`
	TopFrequent []models.FrequencyStat    `json:"top_frequent,omitempty"`
	MostDelayed []models.DelayStat        `json:"most_delayed,omitempty"`
	TopPairs    []models.CoOccurrencePair `json:"top_pairs,omitempty"`
}

// recommendationResponse is the provider response payload.
type recommendationResponse struct {
	Model           string           `json:"model"`
	Recommendations []Recommendation `json:"recommendations"`
}

// StatsSummary is the analysis context handed to the provider.
type StatsSummary struct {
	TopFrequent []models.FrequencyStat
	MostDelayed []models.DelayStat
	TopPairs    []models.CoOccurrencePair
}

// GetRecommendations requests count candidate combinations for a game. Each
// returned recommendation has already passed the validation gate; a single
// invalid recommendation fails the whole call so that nothing malformed
// leaks through.
func (c *Client) GetRecommendations(ctx context.Context, game *models.GameProfile, stats StatsSummary, count int) ([]Recommendation, error) {
	start := time.Now()
	defer func() {
		ProviderRequestLatency.Observe(time.Since(start).Seconds())
	}()

	reqBody := recommendationRequest{
		Model:       c.model,
		GameName:    game.Name,
		NumberRange: game.NumberRange,
		PickCount:   game.PickCount,
		Count:       count,
		TopFrequent: stats.TopFrequent,
		MostDelayed: stats.MostDelayed,
		TopPairs:    stats.TopPairs,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/recommendations", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		ProviderRequestsTotal.WithLabelValues("network_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		ProviderRequestsTotal.WithLabelValues("http_error").Inc()
		return nil, fmt.Errorf("%w: status %d: %s", ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	var payload recommendationResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		ProviderRequestsTotal.WithLabelValues("decode_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(payload.Recommendations) == 0 {
		ProviderRequestsTotal.WithLabelValues("empty").Inc()
		return nil, ErrNoRecommendations
	}

	for i := range payload.Recommendations {
		if err := Validate(&payload.Recommendations[i], game); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				ValidationFailuresTotal.WithLabelValues(verr.Rule).Inc()
			}
			ProviderRequestsTotal.WithLabelValues("rejected").Inc()
			return nil, err
		}
	}

	ProviderRequestsTotal.WithLabelValues("ok").Inc()
	c.logger.WithFields(logrus.Fields{
		"game":     game.Name,
		"model":    payload.Model,
		"count":    len(payload.Recommendations),
		"duration": time.Since(start),
	}).Info("Recommendations received and validated")

	return payload.Recommendations, nil
}

// HealthCheck verifies the provider is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.client.HTTPClient.CloseIdleConnections()
}
