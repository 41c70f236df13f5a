package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yourusername/draw-advisor/internal/generator"
	"github.com/yourusername/draw-advisor/internal/models"
)

func newTestGenerationService(t *testing.T, drawRepo *fakeDrawRepo, savedRepo *fakeSavedRepo, unsuccessfulRepo *fakeUnsuccessfulRepo, game *models.GameProfile) *GenerationService {
	t.Helper()
	analysisSvc := newTestAnalysisService(t, drawRepo, unsuccessfulRepo, game)
	return NewGenerationService(analysisSvc, drawRepo, savedRepo, unsuccessfulRepo, generator.DefaultConfig(), nil)
}

func TestGeneratePoolProducesValidCandidates(t *testing.T) {
	game := testGame(t)
	drawRepo := newFakeDrawRepo()
	seedHistory(t, drawRepo, game, 40)

	svc := newTestGenerationService(t, drawRepo, &fakeSavedRepo{}, newFakeUnsuccessfulRepo(), game)

	candidates, err := svc.GeneratePool(context.Background(), "lotto", "", generator.StrategyStandard, 5, 42)
	if err != nil {
		t.Fatalf("Failed to generate pool: %v", err)
	}

	if len(candidates) != 5 {
		t.Fatalf("Expected 5 candidates, got %d", len(candidates))
	}

	for _, candidate := range candidates {
		if len(candidate.Numbers) != game.PickCount {
			t.Errorf("Expected %d numbers, got %v", game.PickCount, candidate.Numbers)
		}
		seen := make(map[int]bool)
		for i, n := range candidate.Numbers {
			if !game.InRange(n) {
				t.Errorf("Number %d outside game range", n)
			}
			if seen[n] {
				t.Errorf("Duplicate number %d in candidate %v", n, candidate.Numbers)
			}
			seen[n] = true
			if i > 0 && candidate.Numbers[i-1] > n {
				t.Errorf("Numbers not in ascending order: %v", candidate.Numbers)
			}
		}
		if candidate.Metadata.Strategy != string(generator.StrategyStandard) {
			t.Errorf("Expected standard strategy, got %s", candidate.Metadata.Strategy)
		}
		if candidate.FitnessScore == nil {
			t.Error("Expected fitness score attached")
		} else if *candidate.FitnessScore < 0 || *candidate.FitnessScore > 100 {
			t.Errorf("Fitness score out of bounds: %f", *candidate.FitnessScore)
		}
	}
}

func TestGeneratePoolDeterministicWithSeed(t *testing.T) {
	game := testGame(t)
	drawRepo := newFakeDrawRepo()
	seedHistory(t, drawRepo, game, 40)

	svcA := newTestGenerationService(t, drawRepo, &fakeSavedRepo{}, newFakeUnsuccessfulRepo(), game)
	svcB := newTestGenerationService(t, drawRepo, &fakeSavedRepo{}, newFakeUnsuccessfulRepo(), game)

	poolA, err := svcA.GeneratePool(context.Background(), "lotto", "", generator.StrategyStandard, 3, 1234)
	if err != nil {
		t.Fatalf("Failed to generate pool A: %v", err)
	}
	poolB, err := svcB.GeneratePool(context.Background(), "lotto", "", generator.StrategyStandard, 3, 1234)
	if err != nil {
		t.Fatalf("Failed to generate pool B: %v", err)
	}

	for i := range poolA {
		for j := range poolA[i].Numbers {
			if poolA[i].Numbers[j] != poolB[i].Numbers[j] {
				t.Fatalf("Expected identical pools for same seed, got %v vs %v", poolA[i].Numbers, poolB[i].Numbers)
			}
		}
	}
}

func TestGeneratePoolRejectsBadInput(t *testing.T) {
	game := testGame(t)
	svc := newTestGenerationService(t, newFakeDrawRepo(), &fakeSavedRepo{}, newFakeUnsuccessfulRepo(), game)
	ctx := context.Background()

	if _, err := svc.GeneratePool(ctx, "lotto", "", generator.StrategyStandard, 0, 1); err == nil {
		t.Error("Expected error for zero count")
	}
	if _, err := svc.GeneratePool(ctx, "mystery", "", generator.StrategyStandard, 1, 1); err == nil {
		t.Error("Expected error for unknown game")
	}
	if _, err := svc.GeneratePool(ctx, "lotto", "", generator.Strategy("lucky_dip"), 1, 1); err == nil {
		t.Error("Expected error for unknown strategy")
	}
}

func TestSaveCombination(t *testing.T) {
	game := testGame(t)
	drawRepo := newFakeDrawRepo()
	seedHistory(t, drawRepo, game, 20)
	savedRepo := &fakeSavedRepo{}

	svc := newTestGenerationService(t, drawRepo, savedRepo, newFakeUnsuccessfulRepo(), game)
	ctx := context.Background()

	candidates, err := svc.GeneratePool(ctx, "lotto", "", generator.StrategyStandard, 1, 7)
	if err != nil {
		t.Fatalf("Failed to generate candidate: %v", err)
	}

	userID := uuid.New()
	saved, err := svc.SaveCombination(ctx, "lotto", userID, candidates[0], "generated")
	if err != nil {
		t.Fatalf("Failed to save combination: %v", err)
	}

	if saved.UserID != userID || saved.GameID != game.ID {
		t.Error("Saved combination carries wrong ownership")
	}
	if saved.Source != "generated" {
		t.Errorf("Expected source 'generated', got %q", saved.Source)
	}
	if len(savedRepo.combos) != 1 {
		t.Errorf("Expected 1 persisted combination, got %d", len(savedRepo.combos))
	}
}

func TestRecordUnsuccessfulDeduplicatesAndInvalidates(t *testing.T) {
	game := testGame(t)
	drawRepo := newFakeDrawRepo()
	seedHistory(t, drawRepo, game, 15)
	unsuccessfulRepo := newFakeUnsuccessfulRepo()

	svc := newTestGenerationService(t, drawRepo, &fakeSavedRepo{}, unsuccessfulRepo, game)
	ctx := context.Background()

	// Warm the stats cache so invalidation is observable
	if _, err := svc.analysisService.GetGameStats(ctx, "lotto", ""); err != nil {
		t.Fatalf("Failed to warm stats cache: %v", err)
	}
	callsBefore := drawRepo.historyCall

	userID := uuid.New()
	numbers := []int{4, 18, 27, 50, 63, 89}

	if _, err := svc.RecordUnsuccessful(ctx, "lotto", userID, numbers); err != nil {
		t.Fatalf("Failed to record unsuccessful combination: %v", err)
	}
	if len(unsuccessfulRepo.combos) != 1 {
		t.Fatalf("Expected 1 stored combination, got %d", len(unsuccessfulRepo.combos))
	}

	// Same set again, different order: silent no-op
	if _, err := svc.RecordUnsuccessful(ctx, "lotto", userID, []int{89, 63, 50, 27, 18, 4}); err != nil {
		t.Fatalf("Expected duplicate record to be a no-op, got: %v", err)
	}
	if len(unsuccessfulRepo.combos) != 1 {
		t.Errorf("Expected duplicate to be dropped, got %d stored", len(unsuccessfulRepo.combos))
	}

	// The first record invalidated cached stats
	if _, err := svc.analysisService.GetGameStats(ctx, "lotto", ""); err != nil {
		t.Fatalf("Failed to recompute stats: %v", err)
	}
	if drawRepo.historyCall == callsBefore {
		t.Error("Expected stats cache invalidation after recording unsuccessful combination")
	}

	if _, err := svc.RecordUnsuccessful(ctx, "lotto", userID, []int{1, 2, 3}); err == nil {
		t.Error("Expected error for invalid number set")
	}
}
