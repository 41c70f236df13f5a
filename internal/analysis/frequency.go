package analysis

import (
	"sort"

	"github.com/yourusername/draw-advisor/internal/models"
)

// Frequencies computes per-number occurrence counts and percentages across
// the newest-first history. An empty variant selects the main numbers. An
// empty history is not an error: every percentage is 0.
func Frequencies(history []*models.DrawRecord, game *models.GameProfile, variant string) []models.FrequencyStat {
	counts := make([]int, game.NumberRange+1)
	totalDraws := 0
	for _, draw := range history {
		numbers := draw.NumbersFor(variant)
		if numbers == nil {
			continue
		}
		totalDraws++
		for _, n := range numbers {
			if n >= 1 && n <= game.NumberRange {
				counts[n]++
			}
		}
	}

	stats := make([]models.FrequencyStat, game.NumberRange)
	for n := 1; n <= game.NumberRange; n++ {
		pct := 0.0
		if totalDraws > 0 {
			pct = float64(counts[n]) / float64(totalDraws) * 100
		}
		stats[n-1] = models.FrequencyStat{Number: n, Count: counts[n], Percentage: pct}
	}
	return stats
}

// Delays computes, for each number observed at least once, the 0-based index
// of its most recent occurrence in the newest-first history. Numbers never
// seen are omitted.
func Delays(history []*models.DrawRecord, game *models.GameProfile, variant string) []models.DelayStat {
	delays := make(map[int]int, game.NumberRange)
	index := 0
	for _, draw := range history {
		numbers := draw.NumbersFor(variant)
		if numbers == nil {
			continue
		}
		for _, n := range numbers {
			if _, seen := delays[n]; !seen && n >= 1 && n <= game.NumberRange {
				delays[n] = index
			}
		}
		index++
	}

	stats := make([]models.DelayStat, 0, len(delays))
	for n, d := range delays {
		stats = append(stats, models.DelayStat{Number: n, Delay: d})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Number < stats[j].Number
	})
	return stats
}

// TopFrequent returns the n most frequent numbers; ties break on ascending
// number value for determinism.
func TopFrequent(stats []models.FrequencyStat, n int) []models.FrequencyStat {
	sorted := append([]models.FrequencyStat{}, stats...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Number < sorted[j].Number
	})
	return truncateFrequency(sorted, n)
}

// TopInfrequent returns the n least frequent numbers; ties break on
// ascending number value.
func TopInfrequent(stats []models.FrequencyStat, n int) []models.FrequencyStat {
	sorted := append([]models.FrequencyStat{}, stats...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count < sorted[j].Count
		}
		return sorted[i].Number < sorted[j].Number
	})
	return truncateFrequency(sorted, n)
}

// MostDelayed returns the n numbers whose most recent occurrence lies
// furthest back in the history; ties break on ascending number value.
func MostDelayed(stats []models.DelayStat, n int) []models.DelayStat {
	sorted := append([]models.DelayStat{}, stats...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Delay != sorted[j].Delay {
			return sorted[i].Delay > sorted[j].Delay
		}
		return sorted[i].Number < sorted[j].Number
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func truncateFrequency(stats []models.FrequencyStat, n int) []models.FrequencyStat {
	if n < len(stats) {
		return stats[:n]
	}
	return stats
}
