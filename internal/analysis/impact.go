package analysis

import (
	"github.com/yourusername/draw-advisor/internal/models"
)

// Impact back-tests a fixed combination against the history: the normalized
// histogram of per-draw match counts, its mean, and a quadratically weighted
// summary that rewards rare higher-match outcomes more than proportionally.
// The result describes the past; it must never be framed as predictive.
func Impact(numbers []int, history []*models.DrawRecord, game *models.GameProfile, variant string) models.ImpactScore {
	distribution := make([]float64, game.PickCount+1)
	score := models.ImpactScore{MatchDistribution: distribution}

	inCombination := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		inCombination[n] = true
	}

	totalDraws := 0
	counts := make([]int, game.PickCount+1)
	for _, draw := range history {
		drawn := draw.NumbersFor(variant)
		if drawn == nil {
			continue
		}
		totalDraws++
		matches := 0
		for _, n := range drawn {
			if inCombination[n] {
				matches++
			}
		}
		if matches <= game.PickCount {
			counts[matches]++
		}
	}

	if totalDraws == 0 {
		return score
	}

	for k := 0; k <= game.PickCount; k++ {
		p := float64(counts[k]) / float64(totalDraws)
		distribution[k] = p
		score.ExpectedMatches += float64(k) * p
		score.ImpactScore += float64(k*k) * p
	}
	return score
}
