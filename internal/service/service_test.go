package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/draw-advisor/internal/models"
)

// In-memory repository fakes for service tests. The real implementations
// are exercised by the repository package's integration tests.

type fakeDrawRepo struct {
	draws       []*models.DrawRecord // newest-first
	keys        map[string]bool
	historyCall int
}

func newFakeDrawRepo() *fakeDrawRepo {
	return &fakeDrawRepo{keys: make(map[string]bool)}
}

func (r *fakeDrawRepo) Create(ctx context.Context, draw *models.DrawRecord) error {
	if r.keys[draw.Key()] {
		return models.ErrDuplicateKey
	}
	r.keys[draw.Key()] = true
	r.draws = append([]*models.DrawRecord{draw}, r.draws...)
	return nil
}

func (r *fakeDrawRepo) CreateBatch(ctx context.Context, draws []*models.DrawRecord) (int, error) {
	inserted := 0
	for _, draw := range draws {
		if err := r.Create(ctx, draw); err == nil {
			inserted++
		}
	}
	return inserted, nil
}

func (r *fakeDrawRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.DrawRecord, error) {
	for _, draw := range r.draws {
		if draw.ID == id {
			return draw, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeDrawRepo) GetHistory(ctx context.Context, gameID uuid.UUID, limit int) ([]*models.DrawRecord, error) {
	r.historyCall++
	var result []*models.DrawRecord
	for _, draw := range r.draws {
		if draw.GameID == gameID {
			result = append(result, draw)
		}
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *fakeDrawRepo) GetByDateRange(ctx context.Context, gameID uuid.UUID, start, end time.Time) ([]*models.DrawRecord, error) {
	var result []*models.DrawRecord
	for _, draw := range r.draws {
		if draw.GameID == gameID && !draw.DrawDate.Before(start) && !draw.DrawDate.After(end) {
			result = append(result, draw)
		}
	}
	return result, nil
}

func (r *fakeDrawRepo) GetLatest(ctx context.Context, gameID uuid.UUID) (*models.DrawRecord, error) {
	for _, draw := range r.draws {
		if draw.GameID == gameID {
			return draw, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeDrawRepo) CountByGame(ctx context.Context, gameID uuid.UUID) (int, error) {
	count := 0
	for _, draw := range r.draws {
		if draw.GameID == gameID {
			count++
		}
	}
	return count, nil
}

func (r *fakeDrawRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type fakeUnsuccessfulRepo struct {
	combos []*models.UnsuccessfulCombination
	keys   map[string]bool
}

func newFakeUnsuccessfulRepo() *fakeUnsuccessfulRepo {
	return &fakeUnsuccessfulRepo{keys: make(map[string]bool)}
}

func (r *fakeUnsuccessfulRepo) Create(ctx context.Context, combo *models.UnsuccessfulCombination) error {
	key := combo.GameID.String() + "|" + combo.UserID.String() + "|" + models.NumbersKey(combo.Numbers)
	if r.keys[key] {
		return models.ErrDuplicateKey
	}
	r.keys[key] = true
	r.combos = append(r.combos, combo)
	return nil
}

func (r *fakeUnsuccessfulRepo) GetByGame(ctx context.Context, gameID uuid.UUID) ([]*models.UnsuccessfulCombination, error) {
	var result []*models.UnsuccessfulCombination
	for _, combo := range r.combos {
		if combo.GameID == gameID {
			result = append(result, combo)
		}
	}
	return result, nil
}

func (r *fakeUnsuccessfulRepo) GetByUser(ctx context.Context, gameID, userID uuid.UUID) ([]*models.UnsuccessfulCombination, error) {
	var result []*models.UnsuccessfulCombination
	for _, combo := range r.combos {
		if combo.GameID == gameID && combo.UserID == userID {
			result = append(result, combo)
		}
	}
	return result, nil
}

func (r *fakeUnsuccessfulRepo) CountByGame(ctx context.Context, gameID uuid.UUID) (int, error) {
	combos, _ := r.GetByGame(ctx, gameID)
	return len(combos), nil
}

func (r *fakeUnsuccessfulRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type fakeSavedRepo struct {
	combos []*models.SavedCombination
}

func (r *fakeSavedRepo) Create(ctx context.Context, comb *models.SavedCombination) error {
	r.combos = append(r.combos, comb)
	return nil
}

func (r *fakeSavedRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedCombination, error) {
	for _, comb := range r.combos {
		if comb.ID == id {
			return comb, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeSavedRepo) GetByUser(ctx context.Context, gameID, userID uuid.UUID, limit int) ([]*models.SavedCombination, error) {
	var result []*models.SavedCombination
	for _, comb := range r.combos {
		if comb.GameID == gameID && comb.UserID == userID {
			result = append(result, comb)
		}
	}
	return result, nil
}

func (r *fakeSavedRepo) MarkPlayed(ctx context.Context, id uuid.UUID, playedAt time.Time) error {
	for _, comb := range r.combos {
		if comb.ID == id {
			comb.PlayedAt = &playedAt
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakeSavedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

// testGame builds the standard 6-of-90 test game
func testGame(t *testing.T) *models.GameProfile {
	t.Helper()
	game, err := models.NewGameProfile("lotto", 90, 6, nil, nil)
	if err != nil {
		t.Fatalf("failed to build game profile: %v", err)
	}
	return game
}

// seedHistory inserts n synthetic draws for the game, newest-first
func seedHistory(t *testing.T, repo *fakeDrawRepo, game *models.GameProfile, n int) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		numbers := []int{
			(i*7)%90 + 1,
			(i*7+11)%90 + 1,
			(i*7+23)%90 + 1,
			(i*7+37)%90 + 1,
			(i*7+51)%90 + 1,
			(i*7+68)%90 + 1,
		}
		record, err := models.NewDrawRecord(game, base.AddDate(0, 0, i), numbers, nil, nil)
		if err != nil {
			t.Fatalf("failed to build draw record %d: %v", i, err)
		}
		if err := repo.Create(context.Background(), record); err != nil {
			t.Fatalf("failed to seed draw %d: %v", i, err)
		}
	}
}
