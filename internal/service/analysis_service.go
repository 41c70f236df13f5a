package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-advisor/internal/analysis"
	"github.com/yourusername/draw-advisor/internal/logger"
	"github.com/yourusername/draw-advisor/internal/metrics"
	"github.com/yourusername/draw-advisor/internal/models"
	"github.com/yourusername/draw-advisor/internal/repository"
)

// GameStats is the full statistical picture of one game variant at a point
// in time. HistoryHash fingerprints the exact history the stats were computed
// from; downstream caches key on it so stale stats can never be served
// against a changed history.
type GameStats struct {
	Game             *models.GameProfile       `json:"game"`
	Variant          string                    `json:"variant,omitempty"`
	HistorySize      int                       `json:"history_size"`
	HistoryHash      string                    `json:"history_hash"`
	Frequencies      []models.FrequencyStat    `json:"frequencies"`
	Delays           []models.DelayStat        `json:"delays"`
	TopFrequent      []models.FrequencyStat    `json:"top_frequent"`
	TopInfrequent    []models.FrequencyStat    `json:"top_infrequent"`
	MostDelayed      []models.DelayStat        `json:"most_delayed"`
	TopPairs         []models.CoOccurrencePair `json:"top_pairs"`
	Influences       []models.InfluenceScore   `json:"influences"`
	ProbabilityTable []analysis.MatchOdds      `json:"probability_table"`
	ComputedAt       time.Time                 `json:"computed_at"`
}

// CombinationEvaluation bundles the descriptive scores of one fixed number
// set. None of the values is a probability of winning.
type CombinationEvaluation struct {
	Numbers      []int                      `json:"numbers"`
	Distribution models.DistributionProfile `json:"distribution"`
	Target       models.TargetProfile       `json:"target"`
	Fitness      analysis.FitnessScore      `json:"fitness"`
	Impact       models.ImpactScore         `json:"impact"`
}

// AnalysisService orchestrates the statistical engine over stored draw
// history, memoizing results per game variant until new draws invalidate
// them.
type AnalysisService struct {
	drawRepo         repository.DrawRepository
	unsuccessfulRepo repository.UnsuccessfulCombinationRepository
	games            map[string]*models.GameProfile
	cfg              analysis.Config
	cache            *StatsCache
	audit            *logger.AuditLogger
	log              *logrus.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	drawRepo repository.DrawRepository,
	unsuccessfulRepo repository.UnsuccessfulCombinationRepository,
	games []*models.GameProfile,
	cfg analysis.Config,
	cacheTTL time.Duration,
	audit *logger.AuditLogger,
	log *logrus.Logger,
) *AnalysisService {
	if log == nil {
		log = logrus.New()
	}

	gameMap := make(map[string]*models.GameProfile, len(games))
	for _, game := range games {
		gameMap[game.Name] = game
	}

	return &AnalysisService{
		drawRepo:         drawRepo,
		unsuccessfulRepo: unsuccessfulRepo,
		games:            gameMap,
		cfg:              cfg.Normalized(),
		cache:            NewStatsCache(cacheTTL),
		audit:            audit,
		log:              log,
	}
}

// GetGameStats returns the statistical picture for a game variant, computing
// it from stored history on cache miss.
func (s *AnalysisService) GetGameStats(ctx context.Context, gameName, variant string) (*GameStats, error) {
	game, ok := s.games[gameName]
	if !ok {
		return nil, fmt.Errorf("game not configured: %s", gameName)
	}
	if variant != "" && !game.HasVariant(variant) {
		return nil, fmt.Errorf("unknown variant %q for game %s", variant, gameName)
	}

	if cached := s.cache.Get(gameName, variant); cached != nil {
		metrics.RecordStatsCacheHit()
		return cached, nil
	}
	metrics.RecordStatsCacheMiss()

	start := time.Now()

	history, err := s.drawRepo.GetHistory(ctx, game.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw history: %w", err)
	}

	unsuccessful, err := s.unsuccessfulRepo.GetByGame(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unsuccessful combinations: %w", err)
	}

	stats := s.compute(game, variant, history, unsuccessful)

	duration := time.Since(start)
	metrics.RecordAnalysisRun(duration.Seconds())
	metrics.UpdateDrawHistorySize(game.Name, float64(len(history)))
	metrics.UpdateUnsuccessfulCombinations(game.Name, float64(len(unsuccessful)))

	s.log.WithFields(logrus.Fields{
		"component":    "analysis",
		"game":         gameName,
		"variant":      variant,
		"history_size": len(history),
		"duration_ms":  float64(duration.Microseconds()) / 1000,
	}).Info("Game statistics computed")

	s.cache.Set(gameName, variant, stats)
	return stats, nil
}

// compute runs every analyzer over the loaded history
func (s *AnalysisService) compute(game *models.GameProfile, variant string, history []*models.DrawRecord, unsuccessful []*models.UnsuccessfulCombination) *GameStats {
	frequencies := analysis.Frequencies(history, game, variant)
	delays := analysis.Delays(history, game, variant)
	pairs := analysis.CoOccurrences(history, game, variant, s.cfg)
	influences := analysis.InfluenceScores(history, unsuccessful, game, variant, s.cfg)

	return &GameStats{
		Game:             game,
		Variant:          variant,
		HistorySize:      len(history),
		HistoryHash:      HistoryHash(history),
		Frequencies:      frequencies,
		Delays:           delays,
		TopFrequent:      analysis.TopFrequent(frequencies, s.cfg.TopPoolSize),
		TopInfrequent:    analysis.TopInfrequent(frequencies, s.cfg.TopPoolSize),
		MostDelayed:      analysis.MostDelayed(delays, s.cfg.TopPoolSize),
		TopPairs:         analysis.TopPairs(pairs, s.cfg.TopPairWindow),
		Influences:       influences,
		ProbabilityTable: analysis.ProbabilityTable(game),
		ComputedAt:       time.Now(),
	}
}

// EvaluateCombination scores a user-supplied number set against history:
// distribution shape, fitness against the target profile, and the historical
// match back-test.
func (s *AnalysisService) EvaluateCombination(ctx context.Context, gameName, variant string, numbers []int) (*CombinationEvaluation, error) {
	game, ok := s.games[gameName]
	if !ok {
		return nil, fmt.Errorf("game not configured: %s", gameName)
	}

	canonical, err := models.CanonicalNumbers(game, numbers)
	if err != nil {
		return nil, err
	}

	stats, err := s.GetGameStats(ctx, gameName, variant)
	if err != nil {
		return nil, err
	}

	history, err := s.drawRepo.GetHistory(ctx, game.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw history: %w", err)
	}

	profile := analysis.Distribution(canonical, game.NumberRange)
	target := analysis.TargetProfile(game)

	return &CombinationEvaluation{
		Numbers:      canonical,
		Distribution: profile,
		Target:       target,
		Fitness:      analysis.Fitness(profile, target, stats.Influences, canonical, game),
		Impact:       analysis.Impact(canonical, history, game, variant),
	}, nil
}

// InvalidateGame drops cached stats for a game. Wire it to the ingestion
// hook so every landed draw invalidates eagerly.
func (s *AnalysisService) InvalidateGame(gameName, reason string) {
	dropped := s.cache.Invalidate(gameName)
	if dropped > 0 && s.audit != nil {
		s.audit.LogCacheInvalidation(gameName, reason, dropped)
	}
}

// Config returns the analyzer policy in effect
func (s *AnalysisService) Config() analysis.Config {
	return s.cfg
}

// GameProfile resolves a configured game by canonical name
func (s *AnalysisService) GameProfile(gameName string) (*models.GameProfile, error) {
	game, ok := s.games[gameName]
	if !ok {
		return nil, fmt.Errorf("game not configured: %s", gameName)
	}
	return game, nil
}

// HistoryHash fingerprints a draw history by hashing the deduplication keys
// in order. Two identical histories always hash the same; any inserted draw
// changes the hash.
func HistoryHash(history []*models.DrawRecord) string {
	h := sha256.New()
	for _, draw := range history {
		h.Write([]byte(draw.Key()))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
