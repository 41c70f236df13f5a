package analysis

import (
	"math"

	"github.com/yourusername/draw-advisor/internal/models"
)

// FitnessScore is the bounded [0,100] quality rating of one candidate
// combination with its component deductions and bonus retained for
// transparency. The score rates pattern shape for exploration and display;
// it says nothing about the chance of winning.
type FitnessScore struct {
	Score          float64 `json:"score"`
	SumPenalty     float64 `json:"sum_penalty"`
	SpreadPenalty  float64 `json:"spread_penalty"`
	RunPenalty     float64 `json:"run_penalty"`
	InfluenceBonus float64 `json:"influence_bonus"`
	DensityPenalty float64 `json:"density_penalty"`
	MeanInfluence  float64 `json:"mean_influence"`
}

// Fitness scores a candidate's distribution profile against the game's
// target profile and the current influence ranking. Each deduction and the
// influence bonus is individually capped; the final score is clamped to
// [0,100].
func Fitness(profile models.DistributionProfile, target models.TargetProfile, influences []models.InfluenceScore, numbers []int, game *models.GameProfile) FitnessScore {
	fs := FitnessScore{}

	if target.Sum > 0 {
		fs.SumPenalty = math.Min(20, math.Abs(float64(profile.Sum)-target.Sum)/target.Sum*20)
	}
	if target.Spread > 0 {
		fs.SpreadPenalty = math.Min(15, math.Abs(float64(profile.Spread)-target.Spread)/target.Spread*15)
	}
	fs.RunPenalty = math.Min(30, float64(profile.ConsecutiveRunCount)*10)
	fs.DensityPenalty = math.Min(10, math.Abs(profile.Density-target.Density)*10)

	fs.MeanInfluence = meanNormalizedInfluence(influences, numbers)
	uniformShare := 100.0 / float64(game.NumberRange)
	if uniformShare > 0 {
		fs.InfluenceBonus = math.Min(30, fs.MeanInfluence/uniformShare*10)
	}

	score := 100 - fs.SumPenalty - fs.SpreadPenalty - fs.RunPenalty - fs.DensityPenalty + fs.InfluenceBonus
	fs.Score = math.Max(0, math.Min(100, score))
	return fs
}

// meanNormalizedInfluence averages the normalized influence of the
// candidate's numbers. Numbers missing from the influence set contribute 0.
func meanNormalizedInfluence(influences []models.InfluenceScore, numbers []int) float64 {
	if len(numbers) == 0 {
		return 0
	}
	byNumber := make(map[int]float64, len(influences))
	for _, inf := range influences {
		byNumber[inf.Number] = inf.NormalizedScore
	}
	total := 0.0
	for _, n := range numbers {
		total += byNumber[n]
	}
	return total / float64(len(numbers))
}
