package service

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/yourusername/draw-advisor/internal/datasource"
	"github.com/yourusername/draw-advisor/internal/models"
)

// fakeDataSource serves canned draws for ingestion tests
type fakeDataSource struct {
	name  string
	draws []datasource.DrawData
}

func (s *fakeDataSource) FetchDraws(ctx context.Context, gameName string, startDate, endDate time.Time) ([]datasource.DrawData, error) {
	return s.draws, nil
}

func (s *fakeDataSource) FetchLatestDraw(ctx context.Context, gameName string) (*datasource.DrawData, error) {
	if len(s.draws) == 0 {
		return nil, datasource.NewDataSourceError(s.name, datasource.ErrCodeNotFound, "no draws", nil)
	}
	return &s.draws[len(s.draws)-1], nil
}

func (s *fakeDataSource) Name() string    { return s.name }
func (s *fakeDataSource) IsEnabled() bool { return true }

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestIngestionService(game *models.GameProfile, drawRepo *fakeDrawRepo, source datasource.DataSource) *IngestionService {
	return NewIngestionService(
		[]datasource.DataSource{source},
		drawRepo,
		[]*models.GameProfile{game},
		NewDrawValidator(discardLogger()),
		NewDrawNormalizer(discardLogger()),
		nil,
		discardLogger(),
		2,
	)
}

func sourceDraw(id string, day int, numbers []int) datasource.DrawData {
	return datasource.DrawData{
		SourceID: id,
		GameName: "lotto",
		DrawDate: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Numbers:  numbers,
	}
}

func TestIngestHistoricalData(t *testing.T) {
	game := testGame(t)
	drawRepo := newFakeDrawRepo()
	source := &fakeDataSource{name: "national_lottery", draws: []datasource.DrawData{
		sourceDraw("d1", 6, []int{3, 17, 24, 45, 61, 88}),
		sourceDraw("d2", 9, []int{1, 9, 22, 40, 67, 84}),
		sourceDraw("d3", 13, []int{5, 12, 19, 33, 44, 71}),
	}}

	svc := newTestIngestionService(game, drawRepo, source)

	metrics, err := svc.IngestHistoricalData(context.Background(), "national_lottery", "lotto",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Ingestion failed: %v", err)
	}

	if metrics.TotalDraws != 3 || metrics.SuccessfulDraws != 3 {
		t.Errorf("Expected 3/3 draws ingested, got %d/%d", metrics.SuccessfulDraws, metrics.TotalDraws)
	}
	if len(drawRepo.draws) != 3 {
		t.Errorf("Expected 3 persisted draws, got %d", len(drawRepo.draws))
	}
}

func TestIngestHistoricalDataDeduplicates(t *testing.T) {
	game := testGame(t)
	drawRepo := newFakeDrawRepo()
	source := &fakeDataSource{name: "national_lottery", draws: []datasource.DrawData{
		sourceDraw("d1", 6, []int{3, 17, 24, 45, 61, 88}),
		sourceDraw("d1-again", 6, []int{88, 61, 45, 24, 17, 3}),
	}}

	svc := newTestIngestionService(game, drawRepo, source)

	metrics, err := svc.IngestHistoricalData(context.Background(), "national_lottery", "lotto",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Ingestion failed: %v", err)
	}

	if metrics.SuccessfulDraws != 1 {
		t.Errorf("Expected 1 successful draw, got %d", metrics.SuccessfulDraws)
	}
	if metrics.Duplicates != 1 {
		t.Errorf("Expected 1 duplicate, got %d", metrics.Duplicates)
	}
	if len(drawRepo.draws) != 1 {
		t.Errorf("Expected 1 persisted draw, got %d", len(drawRepo.draws))
	}
}

func TestIngestHistoricalDataSkipsInvalidDraws(t *testing.T) {
	game := testGame(t)
	drawRepo := newFakeDrawRepo()
	source := &fakeDataSource{name: "national_lottery", draws: []datasource.DrawData{
		sourceDraw("good", 6, []int{3, 17, 24, 45, 61, 88}),
		sourceDraw("bad-range", 9, []int{3, 17, 24, 45, 61, 95}),
		sourceDraw("bad-count", 13, []int{3, 17, 24}),
	}}

	svc := newTestIngestionService(game, drawRepo, source)

	metrics, err := svc.IngestHistoricalData(context.Background(), "national_lottery", "lotto",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Ingestion failed: %v", err)
	}

	if metrics.SuccessfulDraws != 1 {
		t.Errorf("Expected 1 successful draw, got %d", metrics.SuccessfulDraws)
	}
	if metrics.ValidationErrors != 2 {
		t.Errorf("Expected 2 validation errors, got %d", metrics.ValidationErrors)
	}
}

func TestIngestHistoricalDataUnknownSourceOrGame(t *testing.T) {
	game := testGame(t)
	svc := newTestIngestionService(game, newFakeDrawRepo(), &fakeDataSource{name: "national_lottery"})
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	if _, err := svc.IngestHistoricalData(ctx, "mystery", "lotto", start, end); err == nil {
		t.Error("Expected error for unknown source")
	}
	if _, err := svc.IngestHistoricalData(ctx, "national_lottery", "mystery", start, end); err == nil {
		t.Error("Expected error for unknown game")
	}
}

func TestIngestedHookFires(t *testing.T) {
	game := testGame(t)
	drawRepo := newFakeDrawRepo()
	source := &fakeDataSource{name: "national_lottery", draws: []datasource.DrawData{
		sourceDraw("d1", 6, []int{3, 17, 24, 45, 61, 88}),
	}}

	svc := newTestIngestionService(game, drawRepo, source)

	var hookGame string
	var hookCount int
	svc.SetIngestedHook(func(gameName string, ingested int) {
		hookGame = gameName
		hookCount += ingested
	})

	if _, err := svc.IngestHistoricalData(context.Background(), "national_lottery", "lotto",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Ingestion failed: %v", err)
	}

	if hookGame != "lotto" || hookCount != 1 {
		t.Errorf("Expected hook fired for lotto with 1 draw, got %q/%d", hookGame, hookCount)
	}
}

func TestHandleStreamResult(t *testing.T) {
	game := testGame(t)
	drawRepo := newFakeDrawRepo()
	svc := newTestIngestionService(game, drawRepo, &fakeDataSource{name: "national_lottery"})

	handler := svc.HandleStreamResult(context.Background())

	// Heartbeat-style messages without a draw are ignored
	if err := handler(datasource.ResultMessage{Op: "heartbeat"}); err != nil {
		t.Errorf("Expected nil for message without draw, got: %v", err)
	}

	draw := sourceDraw("live-1", 20, []int{2, 14, 30, 42, 55, 79})
	if err := handler(datasource.ResultMessage{Op: "result", Draw: &draw}); err != nil {
		t.Fatalf("Stream handler failed: %v", err)
	}
	if len(drawRepo.draws) != 1 {
		t.Errorf("Expected 1 persisted draw from stream, got %d", len(drawRepo.draws))
	}
}
