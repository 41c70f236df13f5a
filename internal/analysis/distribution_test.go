package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistribution(t *testing.T) {
	profile := Distribution([]int{5, 6, 7, 20, 21, 40}, 90)

	assert.Equal(t, 99, profile.Sum)
	assert.Equal(t, 35, profile.Spread)
	assert.Equal(t, 2, profile.ConsecutiveRunCount)
	assert.InDelta(t, 1.0, profile.EvenOddRatio, 1e-9) // 6,20,40 even vs 5,7,21 odd
	assert.Equal(t, []int{1, 1, 13, 1, 19}, profile.Gaps)
	assert.InDelta(t, 7.0, profile.AverageGap, 1e-9)
	require.Len(t, profile.DecadeBuckets, 9)
	assert.Equal(t, 3, profile.DecadeBuckets[0]) // 5, 6, 7
	assert.Equal(t, 1, profile.DecadeBuckets[1]) // 20
	assert.Equal(t, 1, profile.DecadeBuckets[2]) // 21
	assert.Equal(t, 1, profile.DecadeBuckets[3]) // 40
}

func TestDistributionUnsortedInput(t *testing.T) {
	sorted := Distribution([]int{5, 6, 7, 20, 21, 40}, 90)
	shuffled := Distribution([]int{40, 21, 5, 20, 7, 6}, 90)
	assert.Equal(t, sorted, shuffled)
}

func TestConsecutiveRunCount(t *testing.T) {
	tests := []struct {
		name    string
		numbers []int
		want    int
	}{
		{"no runs", []int{1, 10, 20, 30, 40, 50}, 0},
		{"one long run", []int{1, 2, 3, 4, 5, 9}, 1},
		{"fully consecutive", []int{10, 11, 12, 13, 14, 15}, 1},
		{"two separate runs", []int{5, 6, 7, 20, 21, 40}, 2},
		{"three pairs", []int{1, 2, 10, 11, 30, 31}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distribution(tt.numbers, 90).ConsecutiveRunCount)
		})
	}
}

func TestDistributionEmptySet(t *testing.T) {
	profile := Distribution(nil, 90)

	assert.Zero(t, profile.Sum)
	assert.Zero(t, profile.Spread)
	assert.Zero(t, profile.ConsecutiveRunCount)
	assert.Empty(t, profile.Gaps)
	assert.Equal(t, 1.0, profile.Density)
}

func TestTargetProfile(t *testing.T) {
	target := TargetProfile(testGame(t))

	assert.InDelta(t, 273.0, target.Sum, 1e-9) // 6 * 91 / 2
	assert.InDelta(t, 63.0, target.Spread, 1e-9)
	assert.InDelta(t, 15.0, target.AverageGap, 1e-9)
	assert.InDelta(t, 1.0, target.EvenOddRatio, 1e-9)
	assert.Zero(t, target.ConsecutiveRunCount)
}

func TestFitnessBounds(t *testing.T) {
	game := testGame(t)
	target := TargetProfile(game)

	sets := [][]int{
		{1, 2, 3, 4, 5, 6},
		{85, 86, 87, 88, 89, 90},
		{10, 25, 37, 52, 68, 85},
		{1, 45, 46, 47, 89, 90},
	}
	for _, numbers := range sets {
		fs := Fitness(Distribution(numbers, game.NumberRange), target, nil, numbers, game)
		assert.GreaterOrEqual(t, fs.Score, 0.0)
		assert.LessOrEqual(t, fs.Score, 100.0)
	}
}

func TestFitnessPrefersTargetShapedSets(t *testing.T) {
	game := testGame(t)
	target := TargetProfile(game)

	spread := Fitness(Distribution([]int{10, 25, 37, 52, 68, 85}, game.NumberRange), target, nil, []int{10, 25, 37, 52, 68, 85}, game)
	clustered := Fitness(Distribution([]int{1, 2, 3, 4, 5, 6}, game.NumberRange), target, nil, []int{1, 2, 3, 4, 5, 6}, game)

	assert.Greater(t, spread.Score, clustered.Score)
	assert.Positive(t, clustered.RunPenalty)
	assert.Zero(t, spread.RunPenalty)
}

func TestFitnessInfluenceBonusCapped(t *testing.T) {
	game := testGame(t)
	target := TargetProfile(game)
	history := historyOf(t, game, [][]int{
		{10, 25, 37, 52, 68, 85},
		{10, 25, 37, 52, 68, 85},
		{10, 25, 37, 52, 68, 85},
	})
	influences := InfluenceScores(history, nil, game, "", DefaultConfig())

	numbers := []int{10, 25, 37, 52, 68, 85}
	fs := Fitness(Distribution(numbers, game.NumberRange), target, influences, numbers, game)

	assert.LessOrEqual(t, fs.InfluenceBonus, 30.0)
	assert.Positive(t, fs.MeanInfluence)
}
