package analysis

import (
	"math"

	"github.com/yourusername/draw-advisor/internal/models"
)

// Combinations returns C(n,k), the number of k-element subsets of an
// n-element set. Invalid inputs (k<0 or k>n) yield 0 rather than an error.
// The multiplicative formula iterates over min(k, n-k) terms with
// incremental division to bound magnitude growth; the accumulation is exact
// apart from floating rounding, corrected once at the end.
func Combinations(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	if k > n-k {
		k = n - k
	}

	result := 1.0
	for i := 0; i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	return math.Round(result)
}

// MatchProbability returns the hypergeometric probability of matching
// exactly k of the drawn numbers: picking p numbers from a population of n
// in which m are drawn, P(X=k) = C(m,k)*C(n-m,p-k)/C(n,p). Any invalid inner
// term yields 0.
func MatchProbability(n, m, p, k int) float64 {
	total := Combinations(n, p)
	if total == 0 {
		return 0
	}
	favorable := Combinations(m, k) * Combinations(n-m, p-k)
	return favorable / total
}

// ExpectedMatches returns the mean of the hypergeometric match distribution.
func ExpectedMatches(n, m, p int) float64 {
	limit := m
	if p < m {
		limit = p
	}
	expected := 0.0
	for k := 0; k <= limit; k++ {
		expected += float64(k) * MatchProbability(n, m, p, k)
	}
	return expected
}

// MatchOdds is one row of the equal-chance probability table.
type MatchOdds struct {
	Matches     int     `json:"matches"`
	Probability float64 `json:"probability"`
	OneIn       float64 `json:"one_in"`
}

// ProbabilityTable returns the full-match distribution for a game profile:
// the probability of matching exactly k numbers for k = 0..pickCount. The
// table exists to show that these odds are fixed by the game parameters
// alone; no combination has better ones.
func ProbabilityTable(game *models.GameProfile) []MatchOdds {
	table := make([]MatchOdds, game.PickCount+1)
	for k := 0; k <= game.PickCount; k++ {
		p := MatchProbability(game.NumberRange, game.PickCount, game.PickCount, k)
		oneIn := 0.0
		if p > 0 {
			oneIn = 1 / p
		}
		table[k] = MatchOdds{Matches: k, Probability: p, OneIn: oneIn}
	}
	return table
}
