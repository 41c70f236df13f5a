package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/draw-advisor/internal/datasource"
	"github.com/yourusername/draw-advisor/internal/logger"
	"github.com/yourusername/draw-advisor/internal/metrics"
	"github.com/yourusername/draw-advisor/internal/models"
	"github.com/yourusername/draw-advisor/internal/repository"
)

const dateLayout = "2006-01-02"

// IngestionService handles the draw ingestion workflow: fetch, validate,
// normalize, deduplicate, persist. Duplicate draws are dropped silently at
// the storage layer and counted, never treated as errors.
type IngestionService struct {
	sources    []datasource.DataSource
	drawRepo   repository.DrawRepository
	games      map[string]*models.GameProfile
	validator  *DrawValidator
	normalizer *DrawNormalizer
	metrics    *IngestionMetrics
	audit      *logger.AuditLogger
	onIngested func(gameName string, ingested int)
	logger     *log.Logger
	batchSize  int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	sources []datasource.DataSource,
	drawRepo repository.DrawRepository,
	games []*models.GameProfile,
	validator *DrawValidator,
	normalizer *DrawNormalizer,
	audit *logger.AuditLogger,
	logger *log.Logger,
	batchSize int,
) *IngestionService {
	if batchSize <= 0 {
		batchSize = 100
	}

	gameMap := make(map[string]*models.GameProfile, len(games))
	for _, game := range games {
		gameMap[game.Name] = game
	}

	return &IngestionService{
		sources:    sources,
		drawRepo:   drawRepo,
		games:      gameMap,
		validator:  validator,
		normalizer: normalizer,
		metrics:    NewIngestionMetrics(),
		audit:      audit,
		logger:     logger,
		batchSize:  batchSize,
	}
}

// SetIngestedHook registers a callback invoked after new draws land for a
// game. The analysis layer uses it to invalidate its stats cache.
func (s *IngestionService) SetIngestedHook(hook func(gameName string, ingested int)) {
	s.onIngested = hook
}

// IngestHistoricalData fetches and ingests historical draws for one game
// from a specific source
func (s *IngestionService) IngestHistoricalData(ctx context.Context, sourceName, gameName string, startDate, endDate time.Time) (*IngestionMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()

	s.logger.Printf("Starting historical ingestion of %s from %s (%s to %s)",
		gameName, sourceName, startDate.Format(dateLayout), endDate.Format(dateLayout))

	source, err := s.findSource(sourceName)
	if err != nil {
		return nil, err
	}

	game, err := s.gameByName(gameName)
	if err != nil {
		return nil, err
	}

	draws, err := source.FetchDraws(ctx, gameName, startDate, endDate)
	if err != nil {
		s.metrics.RecordError()
		s.logger.Printf("Failed to fetch draws from %s: %v", sourceName, err)
		return s.metrics, fmt.Errorf("failed to fetch draws: %w", err)
	}

	s.logger.Printf("Fetched %d draws from %s", len(draws), sourceName)
	s.metrics.TotalDraws = len(draws)

	for i := 0; i < len(draws); i += s.batchSize {
		end := i + s.batchSize
		if end > len(draws) {
			end = len(draws)
		}

		if err := s.processBatch(ctx, source.Name(), game, draws[i:end]); err != nil {
			s.logger.Printf("Error processing batch: %v", err)
			s.metrics.RecordError()
			// Continue processing other batches
		}
	}

	s.metrics.Duration = time.Since(startTime)
	metrics.RecordIngestionRun(s.metrics.Duration.Seconds(), float64(time.Now().Unix()))
	s.updateHistoryGauge(ctx, game)

	s.logger.Printf("Historical ingestion complete: %s", s.metrics.String())

	return s.metrics, nil
}

// IngestLatestDraws polls each configured game for its most recent result on
// the named source. Already-seen results dedupe away at the storage layer.
func (s *IngestionService) IngestLatestDraws(ctx context.Context, sourceName string) error {
	source, err := s.findSource(sourceName)
	if err != nil {
		return err
	}

	for name, game := range s.games {
		draw, err := source.FetchLatestDraw(ctx, name)
		if err != nil {
			s.logger.Printf("Failed to fetch latest %s draw from %s: %v", name, sourceName, err)
			s.metrics.RecordError()
			continue
		}

		if err := s.processDraw(ctx, source.Name(), game, draw); err != nil {
			s.logger.Printf("Error processing latest %s draw: %v", name, err)
			s.metrics.RecordError()
		}
	}

	return nil
}

// HandleStreamResult adapts the ingestion pipeline to the live results feed.
// Register the returned handler on a datasource.StreamClient.
func (s *IngestionService) HandleStreamResult(ctx context.Context) datasource.ResultHandler {
	return func(msg datasource.ResultMessage) error {
		if msg.Draw == nil {
			return nil
		}
		game, err := s.gameByName(s.normalizer.NormalizeGameName(msg.Draw.GameName))
		if err != nil {
			return err
		}
		return s.processDraw(ctx, "stream", game, msg.Draw)
	}
}

// processBatch validates and normalizes a batch of draws, then persists the
// survivors in one transaction
func (s *IngestionService) processBatch(ctx context.Context, sourceName string, game *models.GameProfile, draws []datasource.DrawData) error {
	records := make([]*models.DrawRecord, 0, len(draws))

	for i := range draws {
		record, err := s.prepareDraw(&draws[i], game)
		if err != nil {
			s.logger.Printf("Skipping draw %s: %v", draws[i].SourceID, err)
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil
	}

	inserted, err := s.drawRepo.CreateBatch(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to persist draw batch: %w", err)
	}

	duplicates := len(records) - inserted
	for i := 0; i < inserted; i++ {
		s.metrics.RecordDraw()
		metrics.RecordDrawIngested()
	}
	for i := 0; i < duplicates; i++ {
		s.metrics.RecordDuplicate()
		metrics.RecordDrawDeduplicated()
	}

	if s.audit != nil {
		for _, record := range records {
			s.audit.LogDrawIngested(record.ID.String(), game.Name, sourceName, record.DrawDate, record.Numbers, false)
		}
	}

	if inserted > 0 && s.onIngested != nil {
		s.onIngested(game.Name, inserted)
	}

	return nil
}

// processDraw validates, normalizes, and persists a single draw
func (s *IngestionService) processDraw(ctx context.Context, sourceName string, game *models.GameProfile, sourceDraw *datasource.DrawData) error {
	record, err := s.prepareDraw(sourceDraw, game)
	if err != nil {
		return err
	}

	err = s.drawRepo.Create(ctx, record)
	if errors.Is(err, models.ErrDuplicateKey) {
		s.metrics.RecordDuplicate()
		metrics.RecordDrawDeduplicated()
		if s.audit != nil {
			s.audit.LogDrawIngested(record.ID.String(), game.Name, sourceName, record.DrawDate, record.Numbers, true)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to persist draw: %w", err)
	}

	s.metrics.RecordDraw()
	metrics.RecordDrawIngested()
	if s.audit != nil {
		s.audit.LogDrawIngested(record.ID.String(), game.Name, sourceName, record.DrawDate, record.Numbers, false)
	}
	if s.onIngested != nil {
		s.onIngested(game.Name, 1)
	}

	return nil
}

// prepareDraw runs validation and normalization for one draw
func (s *IngestionService) prepareDraw(sourceDraw *datasource.DrawData, game *models.GameProfile) (*models.DrawRecord, error) {
	validationErrors := s.validator.ValidateDraw(sourceDraw, game)
	if len(validationErrors) > 0 {
		s.metrics.RecordValidationError()
		return nil, fmt.Errorf("draw validation failed: %v", validationErrors)
	}

	record, err := s.normalizer.NormalizeDraw(sourceDraw, game)
	if err != nil {
		s.metrics.RecordValidationError()
		return nil, err
	}

	return record, nil
}

// findSource resolves a configured data source by name
func (s *IngestionService) findSource(name string) (datasource.DataSource, error) {
	for _, src := range s.sources {
		if src.Name() == name {
			return src, nil
		}
	}
	return nil, fmt.Errorf("data source not found: %s", name)
}

// gameByName resolves a configured game profile by canonical name
func (s *IngestionService) gameByName(name string) (*models.GameProfile, error) {
	game, ok := s.games[name]
	if !ok {
		return nil, fmt.Errorf("game not configured: %s", name)
	}
	return game, nil
}

// updateHistoryGauge refreshes the per-game history size gauge
func (s *IngestionService) updateHistoryGauge(ctx context.Context, game *models.GameProfile) {
	count, err := s.drawRepo.CountByGame(ctx, game.ID)
	if err != nil {
		s.logger.Printf("Failed to count draws for %s: %v", game.Name, err)
		return
	}
	metrics.UpdateDrawHistorySize(game.Name, float64(count))
}

// GetMetrics returns current ingestion metrics
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.metrics
}

// ResetMetrics resets ingestion metrics
func (s *IngestionService) ResetMetrics() {
	s.metrics.Reset()
}
