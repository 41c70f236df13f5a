package analysis

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/draw-advisor/internal/models"
)

func TestInfluenceScoresNormalization(t *testing.T) {
	game := testGame(t)
	history := historyOf(t, game, [][]int{
		{1, 2, 3, 4, 5, 6},
		{1, 2, 3, 40, 50, 60},
		{7, 8, 9, 10, 11, 12},
		{1, 20, 30, 40, 50, 60},
	})

	scores := InfluenceScores(history, nil, game, "", DefaultConfig())
	require.Len(t, scores, game.NumberRange)

	total := 0.0
	for _, s := range scores {
		assert.GreaterOrEqual(t, s.NormalizedScore, 0.0)
		total += s.NormalizedScore
	}
	assert.InDelta(t, 100.0, total, 1e-6)

	// Number 1 appears in three of four draws and must outrank number 90,
	// which never appears.
	assert.Greater(t, scores[0].NormalizedScore, scores[89].NormalizedScore)
}

func TestInfluenceScoresPenaltyCapped(t *testing.T) {
	game := testGame(t)
	history := historyOf(t, game, [][]int{
		{7, 10, 20, 30, 40, 50},
		{7, 11, 21, 31, 41, 51},
	})

	userID := uuid.New()
	combo, err := models.NewUnsuccessfulCombination(game, userID, []int{7, 12, 22, 32, 42, 52})
	require.NoError(t, err)

	scores := InfluenceScores(history, []*models.UnsuccessfulCombination{combo}, game, "", DefaultConfig())

	// Number 7 appears in every unsuccessful combination; the penalty is
	// capped at 0.5 rather than wiping the score out.
	assert.InDelta(t, 0.5, scores[6].UnsuccessfulPenalty, 1e-9)
	assert.Positive(t, scores[6].NormalizedScore)

	// An unaffected number carries no penalty.
	assert.Zero(t, scores[9].UnsuccessfulPenalty)
}

func TestInfluenceScoresEmptyHistory(t *testing.T) {
	game := testGame(t)
	scores := InfluenceScores(nil, nil, game, "", DefaultConfig())

	require.Len(t, scores, game.NumberRange)

	// With no history every number falls back to the uniform share.
	uniform := 100.0 / float64(game.NumberRange)
	for _, s := range scores {
		assert.InDelta(t, uniform, s.NormalizedScore, 1e-6)
		assert.Zero(t, s.Confidence)
	}
}

func TestInfluenceScoresVariantAbsentFromWindow(t *testing.T) {
	game, err := models.NewGameProfile("lotto", 90, 6, []string{"second_chance"}, nil)
	require.NoError(t, err)

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	newest, err := models.NewDrawRecord(game, base, []int{2, 4, 6, 8, 10, 12}, nil, nil)
	require.NoError(t, err)
	middle, err := models.NewDrawRecord(game, base.AddDate(0, 0, -1), []int{1, 3, 5, 7, 9, 11}, nil, nil)
	require.NoError(t, err)
	oldest, err := models.NewDrawRecord(game, base.AddDate(0, 0, -2), []int{20, 21, 22, 23, 24, 25},
		map[string][]int{"second_chance": {30, 40, 50, 60, 70, 80}}, nil)
	require.NoError(t, err)

	history := []*models.DrawRecord{newest, middle, oldest}

	cfg := DefaultConfig()
	cfg.RecentWindow = 2

	// The two newest draws carry no second_chance numbers, so the recent
	// window is empty for that variant and must fall back to the historical
	// rate instead of zeroing every score.
	scores := InfluenceScores(history, nil, game, "second_chance", cfg)
	require.Len(t, scores, game.NumberRange)

	total := 0.0
	for _, s := range scores {
		total += s.NormalizedScore
	}
	assert.InDelta(t, 100.0, total, 1e-6)

	assert.Positive(t, scores[29].NormalizedScore)
	assert.Greater(t, scores[29].NormalizedScore, scores[1].NormalizedScore)
}

func TestInfluenceScoresConfidenceBounded(t *testing.T) {
	game := testGame(t)

	sets := make([][]int, 200)
	for i := range sets {
		base := (i*7)%84 + 1
		sets[i] = []int{base, base + 1, base + 2, base + 3, base + 4, base + 5}
	}
	history := historyOf(t, game, sets)

	scores := InfluenceScores(history, nil, game, "", DefaultConfig())
	assert.InDelta(t, 100.0, scores[0].Confidence, 1e-9)

	short := InfluenceScores(history[:4], nil, game, "", DefaultConfig())
	assert.Less(t, short[0].Confidence, 100.0)
	assert.Positive(t, short[0].Confidence)
}

func TestImpact(t *testing.T) {
	game := testGame(t)
	history := historyOf(t, game, [][]int{
		{1, 2, 3, 4, 5, 6},
		{1, 2, 3, 40, 50, 60},
		{70, 71, 72, 73, 74, 75},
		{1, 2, 3, 4, 5, 6},
	})

	score := Impact([]int{1, 2, 3, 4, 5, 6}, history, game, "")
	require.Len(t, score.MatchDistribution, game.PickCount+1)

	// Two full matches, one 3-match, one 0-match.
	assert.InDelta(t, 0.5, score.MatchDistribution[6], 1e-9)
	assert.InDelta(t, 0.25, score.MatchDistribution[3], 1e-9)
	assert.InDelta(t, 0.25, score.MatchDistribution[0], 1e-9)

	assert.InDelta(t, 0.5*6+0.25*3, score.ExpectedMatches, 1e-9)
	assert.InDelta(t, 0.5*36+0.25*9, score.ImpactScore, 1e-9)
}

func TestImpactEmptyHistory(t *testing.T) {
	game := testGame(t)
	score := Impact([]int{1, 2, 3, 4, 5, 6}, nil, game, "")

	require.Len(t, score.MatchDistribution, game.PickCount+1)
	assert.Zero(t, score.ExpectedMatches)
	assert.Zero(t, score.ImpactScore)
}
