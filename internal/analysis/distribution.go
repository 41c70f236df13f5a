package analysis

import (
	"sort"

	"github.com/yourusername/draw-advisor/internal/models"
)

// Distribution computes the structural shape metrics of a set of distinct
// integers drawn from [1, numberRange]. The input need not be sorted.
func Distribution(numbers []int, numberRange int) models.DistributionProfile {
	s := append([]int{}, numbers...)
	sort.Ints(s)
	length := len(s)

	profile := models.DistributionProfile{
		DecadeBuckets: make([]int, decadeBucketCount(numberRange)),
		Gaps:          []int{},
		Density:       1,
	}
	if length == 0 {
		return profile
	}

	sum := 0
	evenCount := 0
	for _, n := range s {
		sum += n
		if n%2 == 0 {
			evenCount++
		}
		bucket := (n - 1) / 10
		if bucket >= 0 && bucket < len(profile.DecadeBuckets) {
			profile.DecadeBuckets[bucket]++
		}
	}
	oddCount := length - evenCount

	profile.Sum = sum
	profile.Spread = s[length-1] - s[0]
	if oddCount > 0 {
		profile.EvenOddRatio = float64(evenCount) / float64(oddCount)
	} else {
		profile.EvenOddRatio = float64(evenCount)
	}

	if length > 1 {
		gaps := make([]int, length-1)
		gapSum := 0
		for i := 0; i < length-1; i++ {
			gaps[i] = s[i+1] - s[i]
			gapSum += gaps[i]
		}
		profile.Gaps = gaps
		profile.AverageGap = float64(gapSum) / float64(len(gaps))
		profile.Density = 1 / (1 + gapVariance(gaps, profile.AverageGap))
	}

	profile.ConsecutiveRunCount = consecutiveRuns(s)
	return profile
}

// TargetProfile derives the heuristic design target for a game. These are
// policy values, not statistically derived optima.
func TargetProfile(game *models.GameProfile) models.TargetProfile {
	evenOdd := 0.8
	if game.PickCount%2 == 0 {
		evenOdd = 1
	}
	return models.TargetProfile{
		Sum:                 float64(game.PickCount) * float64(game.NumberRange+1) / 2,
		Spread:              float64(game.NumberRange) * 0.7,
		EvenOddRatio:        evenOdd,
		DecadePerBucket:     float64(game.PickCount) / float64(decadeBucketCount(game.NumberRange)),
		ConsecutiveRunCount: 0,
		AverageGap:          float64(game.NumberRange) / float64(game.PickCount),
		Density:             0.5,
	}
}

// consecutiveRuns counts maximal runs of two or more strictly consecutive
// integers in an ascending slice.
func consecutiveRuns(sorted []int) int {
	runs := 0
	runLength := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			runLength++
			continue
		}
		if runLength >= 2 {
			runs++
		}
		runLength = 1
	}
	if runLength >= 2 {
		runs++
	}
	return runs
}

func decadeBucketCount(numberRange int) int {
	return (numberRange + 9) / 10
}

func gapVariance(gaps []int, mean float64) float64 {
	if len(gaps) == 0 {
		return 0
	}
	variance := 0.0
	for _, g := range gaps {
		diff := float64(g) - mean
		variance += diff * diff
	}
	return variance / float64(len(gaps))
}
