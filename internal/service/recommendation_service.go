package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-advisor/internal/logger"
	"github.com/yourusername/draw-advisor/internal/recommend"
)

// RecommendationService feeds current game statistics to the external
// recommendation provider and returns its validated suggestions. Provider
// output is advisory only and passes the same structural validation gate as
// locally generated candidates.
type RecommendationService struct {
	analysisService *AnalysisService
	client          *recommend.CachedClient
	enabled         bool
	provLog         *logger.ProviderLogger
	log             *logrus.Logger
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(analysisService *AnalysisService, client *recommend.CachedClient, enabled bool, log *logrus.Logger) *RecommendationService {
	if log == nil {
		log = logrus.New()
	}

	return &RecommendationService{
		analysisService: analysisService,
		client:          client,
		enabled:         enabled,
		provLog:         logger.NewProviderLogger(log),
		log:             log,
	}
}

// Enabled reports whether provider recommendations are switched on
func (s *RecommendationService) Enabled() bool {
	return s.enabled && s.client != nil
}

// GetRecommendations returns count provider suggestions for a game variant,
// computed against the current draw history. Responses are cached keyed on
// the history fingerprint, so a new draw always forces a fresh provider call.
func (s *RecommendationService) GetRecommendations(ctx context.Context, gameName, variant string, count int) ([]recommend.Recommendation, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("recommendations are disabled")
	}
	if count <= 0 {
		return nil, fmt.Errorf("recommendation count must be positive, got %d", count)
	}

	stats, err := s.analysisService.GetGameStats(ctx, gameName, variant)
	if err != nil {
		return nil, err
	}

	summary := recommend.StatsSummary{
		TopFrequent: stats.TopFrequent,
		MostDelayed: stats.MostDelayed,
		TopPairs:    stats.TopPairs,
	}

	start := time.Now()
	recs, err := s.client.GetRecommendations(ctx, stats.Game, stats.HistoryHash, summary, count)
	if err != nil {
		var verr *recommend.ValidationError
		if errors.As(err, &verr) {
			s.provLog.LogValidationRejection(gameName, verr.Rule, verr.Message)
		} else {
			s.provLog.LogProviderError(gameName, err.Error())
		}
		return nil, fmt.Errorf("recommendation provider: %w", err)
	}

	s.provLog.LogRecommendationRequest(gameName, variant, len(recs), float64(time.Since(start).Microseconds())/1000)

	return recs, nil
}

// HealthCheck verifies the provider is reachable
func (s *RecommendationService) HealthCheck(ctx context.Context) error {
	if !s.Enabled() {
		return fmt.Errorf("recommendations are disabled")
	}
	return s.client.HealthCheck(ctx)
}

// Close releases provider resources
func (s *RecommendationService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}
