package analysis

import (
	"math"
	"sort"

	"github.com/yourusername/draw-advisor/internal/models"
)

type pairKey struct {
	a, b int
}

// CoOccurrences counts every unordered number pair across the history and
// scores surviving pairs by lift against the independence expectation from
// the per-number marginals. Pairs below cfg.MinPairOccurrences are discarded
// as noise. The result is sorted by lift score descending; callers truncate
// to a display window with TopPairs.
func CoOccurrences(history []*models.DrawRecord, game *models.GameProfile, variant string, cfg Config) []models.CoOccurrencePair {
	cfg = cfg.Normalized()

	pairCounts := make(map[pairKey]int)
	totalDraws := 0
	for _, draw := range history {
		numbers := draw.NumbersFor(variant)
		if numbers == nil {
			continue
		}
		totalDraws++
		for i := 0; i < len(numbers); i++ {
			for j := i + 1; j < len(numbers); j++ {
				a, b := numbers[i], numbers[j]
				if a > b {
					a, b = b, a
				}
				pairCounts[pairKey{a, b}]++
			}
		}
	}

	if totalDraws == 0 {
		return nil
	}

	marginals := make(map[int]float64, game.NumberRange)
	for _, stat := range Frequencies(history, game, variant) {
		marginals[stat.Number] = stat.Percentage
	}

	pairs := make([]models.CoOccurrencePair, 0, len(pairCounts))
	for key, count := range pairCounts {
		if count < cfg.MinPairOccurrences {
			continue
		}
		observed := float64(count) / float64(totalDraws) * 100
		expected := marginals[key.a] * marginals[key.b] / 100
		if expected < cfg.PairExpectedFloor {
			expected = cfg.PairExpectedFloor
		}
		lift := observed / expected
		pairs = append(pairs, models.CoOccurrencePair{
			NumberA:              key.a,
			NumberB:              key.b,
			ObservedCount:        count,
			ObservedFrequencyPct: observed,
			ExpectedFrequencyPct: expected,
			Lift:                 lift,
			LiftScore:            math.Tanh(lift - 1),
		})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].LiftScore != pairs[j].LiftScore {
			return pairs[i].LiftScore > pairs[j].LiftScore
		}
		if pairs[i].NumberA != pairs[j].NumberA {
			return pairs[i].NumberA < pairs[j].NumberA
		}
		return pairs[i].NumberB < pairs[j].NumberB
	})
	return pairs
}

// TopPairs truncates a sorted co-occurrence ranking to the display window.
func TopPairs(pairs []models.CoOccurrencePair, n int) []models.CoOccurrencePair {
	if n < len(pairs) {
		return pairs[:n]
	}
	return pairs
}
