package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/draw-advisor/internal/models"
)

// testGame returns the 6-of-90 profile used across the analyzer tests.
func testGame(t *testing.T) *models.GameProfile {
	t.Helper()
	game, err := models.NewGameProfile("lotto", 90, 6, nil, nil)
	require.NoError(t, err)
	return game
}

// historyOf builds a newest-first history from explicit number sets;
// sets[0] is the most recent draw.
func historyOf(t *testing.T, game *models.GameProfile, sets [][]int) []*models.DrawRecord {
	t.Helper()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	history := make([]*models.DrawRecord, len(sets))
	for i, numbers := range sets {
		draw, err := models.NewDrawRecord(game, base.AddDate(0, 0, -i), numbers, nil, nil)
		require.NoError(t, err)
		history[i] = draw
	}
	return history
}
