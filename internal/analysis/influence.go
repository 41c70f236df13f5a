package analysis

import (
	"math"

	"github.com/yourusername/draw-advisor/internal/models"
)

// InfluenceScores computes the per-number ranking weight for every number in
// the game's range. The weight blends full-history frequency, a bounded
// recent window, and a capped penalty from the user's unsuccessful
// combinations. Normalized scores sum to 100 unless the history is
// degenerate. The result is a ranking weight, never a draw probability.
func InfluenceScores(history []*models.DrawRecord, unsuccessful []*models.UnsuccessfulCombination, game *models.GameProfile, variant string, cfg Config) []models.InfluenceScore {
	cfg = cfg.Normalized()

	historical := Frequencies(history, game, variant)

	recentLen := cfg.RecentWindow
	if recentLen > len(history) {
		recentLen = len(history)
	}
	recentDraws := history[:recentLen]
	recent := Frequencies(recentDraws, game, variant)

	// A variant may be absent from every draw in the window even when the
	// window itself is non-empty; such a window is empty for scoring purposes.
	recentObserved := 0
	for _, draw := range recentDraws {
		if draw.NumbersFor(variant) != nil {
			recentObserved++
		}
	}

	unsuccessfulCounts := make([]int, game.NumberRange+1)
	for _, combo := range unsuccessful {
		for _, n := range combo.Numbers {
			if n >= 1 && n <= game.NumberRange {
				unsuccessfulCounts[n]++
			}
		}
	}

	uniformPct := 100.0 / float64(game.NumberRange)
	confidence := math.Min(100, math.Sqrt(float64(len(history)+recentLen))*10)

	scores := make([]models.InfluenceScore, game.NumberRange)
	rawSum := 0.0
	for i := 0; i < game.NumberRange; i++ {
		historicalPct := historical[i].Percentage
		if len(history) == 0 {
			historicalPct = uniformPct
		}
		recentPct := recent[i].Percentage
		if recentObserved == 0 {
			recentPct = historicalPct
		}

		penalty := 0.0
		if len(unsuccessful) > 0 {
			penalty = math.Min(0.5, float64(unsuccessfulCounts[i+1])/float64(len(unsuccessful)))
		}

		raw := (historicalPct / 100) * (recentPct / 100) * (1 - penalty) * 100
		rawSum += raw

		scores[i] = models.InfluenceScore{
			Number:                 i + 1,
			HistoricalFrequencyPct: historicalPct,
			RecentFrequencyPct:     recentPct,
			UnsuccessfulPenalty:    penalty,
			RawScore:               raw,
			Confidence:             confidence,
		}
	}

	// A zero raw sum means degenerate history; normalized scores stay 0.
	if rawSum > 0 {
		for i := range scores {
			scores[i].NormalizedScore = scores[i].RawScore / rawSum * 100
		}
	}
	return scores
}
