package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-advisor/internal/generator"
	"github.com/yourusername/draw-advisor/internal/logger"
	"github.com/yourusername/draw-advisor/internal/metrics"
	"github.com/yourusername/draw-advisor/internal/models"
	"github.com/yourusername/draw-advisor/internal/repository"
)

// GenerationService produces candidate combinations for a game and manages
// the saved and unsuccessful sets around them.
type GenerationService struct {
	analysisService  *AnalysisService
	drawRepo         repository.DrawRepository
	savedRepo        repository.SavedCombinationRepository
	unsuccessfulRepo repository.UnsuccessfulCombinationRepository
	cfg              generator.Config
	genLog           *logger.GenerationLogger
	audit            *logger.AuditLogger
	log              *logrus.Logger
}

// NewGenerationService creates a new generation service
func NewGenerationService(
	analysisService *AnalysisService,
	drawRepo repository.DrawRepository,
	savedRepo repository.SavedCombinationRepository,
	unsuccessfulRepo repository.UnsuccessfulCombinationRepository,
	cfg generator.Config,
	log *logrus.Logger,
) *GenerationService {
	if log == nil {
		log = logrus.New()
	}

	return &GenerationService{
		analysisService:  analysisService,
		drawRepo:         drawRepo,
		savedRepo:        savedRepo,
		unsuccessfulRepo: unsuccessfulRepo,
		cfg:              cfg,
		genLog:           logger.NewGenerationLogger(log),
		audit:            logger.NewAuditLogger(log),
		log:              log,
	}
}

// GeneratePool synthesizes count candidate combinations for a game variant.
// A zero seed derives one from the clock; a fixed seed replays the exact
// same pool against the same history.
func (s *GenerationService) GeneratePool(ctx context.Context, gameName, variant string, strategy generator.Strategy, count int, seed int64) ([]*models.CandidateCombination, error) {
	if count <= 0 {
		return nil, fmt.Errorf("candidate count must be positive, got %d", count)
	}

	game, err := s.analysisService.GameProfile(gameName)
	if err != nil {
		return nil, err
	}

	cfg := s.cfg
	if strategy != "" {
		cfg.Strategy = strategy
	}

	gen, err := generator.New(game, cfg, s.analysisService.Config(), seed, s.log)
	if err != nil {
		metrics.RecordGenerationRun(string(cfg.Strategy), "error")
		return nil, err
	}

	history, err := s.drawRepo.GetHistory(ctx, game.ID, 0)
	if err != nil {
		metrics.RecordGenerationRun(string(cfg.Strategy), "error")
		return nil, fmt.Errorf("failed to load draw history: %w", err)
	}

	unsuccessful, err := s.unsuccessfulRepo.GetByGame(ctx, game.ID)
	if err != nil {
		metrics.RecordGenerationRun(string(cfg.Strategy), "error")
		return nil, fmt.Errorf("failed to load unsuccessful combinations: %w", err)
	}

	start := time.Now()
	candidates := make([]*models.CandidateCombination, 0, count)
	for i := 0; i < count; i++ {
		candidate, err := gen.Generate(history, unsuccessful, variant)
		if err != nil {
			metrics.RecordGenerationRun(string(cfg.Strategy), "error")
			return candidates, fmt.Errorf("generation failed after %d candidates: %w", len(candidates), err)
		}

		metrics.RecordGenerationAttempts(string(cfg.Strategy), float64(candidate.Metadata.Attempts))
		if candidate.Metadata.SoftFilterViolated {
			metrics.RecordSoftFilterViolation(string(cfg.Strategy))
			s.genLog.LogSoftFilterRelaxed(game.Name, string(cfg.Strategy), cfg.MaxAttempts)
		}
		if candidate.FitnessScore != nil {
			metrics.RecordFitnessScore(string(cfg.Strategy), *candidate.FitnessScore)
			s.genLog.LogCandidateAccepted(game.Name, string(cfg.Strategy), candidate.Numbers,
				candidate.Metadata.Attempts, candidate.Metadata.SoftFilterViolated, *candidate.FitnessScore)
		}

		candidates = append(candidates, candidate)
	}

	metrics.RecordGenerationRun(string(cfg.Strategy), "success")
	s.genLog.LogGenerationRun(game.Name, string(cfg.Strategy), count, len(candidates),
		candidates[0].Metadata.Seed, float64(time.Since(start).Microseconds())/1000)

	return candidates, nil
}

// SaveCombination persists a candidate on a user's behalf
func (s *GenerationService) SaveCombination(ctx context.Context, gameName string, userID uuid.UUID, candidate *models.CandidateCombination, source string) (*models.SavedCombination, error) {
	game, err := s.analysisService.GameProfile(gameName)
	if err != nil {
		return nil, err
	}

	canonical, err := models.CanonicalNumbers(game, candidate.Numbers)
	if err != nil {
		return nil, err
	}

	saved := &models.SavedCombination{
		ID:            uuid.New(),
		GameID:        game.ID,
		UserID:        userID,
		Numbers:       canonical,
		Supplementary: candidate.Supplementary,
		FitnessScore:  candidate.FitnessScore,
		Strategy:      candidate.Metadata.Strategy,
		Source:        source,
		CreatedAt:     time.Now(),
	}

	if err := s.savedRepo.Create(ctx, saved); err != nil {
		return nil, fmt.Errorf("failed to save combination: %w", err)
	}

	metrics.RecordCombinationSaved()
	fitness := 0.0
	if saved.FitnessScore != nil {
		fitness = *saved.FitnessScore
	}
	s.audit.LogCombinationSaved(saved.ID.String(), game.Name, saved.Numbers, saved.Strategy, fitness)

	return saved, nil
}

// RecordUnsuccessful adds a number set to a user's negative-signal set.
// Re-recording the same set is a silent no-op. The game's cached stats are
// invalidated because the influence penalty just changed.
func (s *GenerationService) RecordUnsuccessful(ctx context.Context, gameName string, userID uuid.UUID, numbers []int) (*models.UnsuccessfulCombination, error) {
	game, err := s.analysisService.GameProfile(gameName)
	if err != nil {
		return nil, err
	}

	combo, err := models.NewUnsuccessfulCombination(game, userID, numbers)
	if err != nil {
		return nil, err
	}

	err = s.unsuccessfulRepo.Create(ctx, combo)
	if errors.Is(err, models.ErrDuplicateKey) {
		return combo, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record unsuccessful combination: %w", err)
	}

	s.audit.LogUnsuccessfulRecorded(game.Name, combo.Numbers, combo.CreatedAt)
	s.analysisService.InvalidateGame(game.Name, "unsuccessful_combination_recorded")

	return combo, nil
}
