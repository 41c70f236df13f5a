package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinations(t *testing.T) {
	tests := []struct {
		name string
		n    int
		k    int
		want float64
	}{
		{"6 of 90", 90, 6, 622614630},
		{"6 of 49", 49, 6, 13983816},
		{"5 of 45", 45, 5, 1221759},
		{"choose zero", 10, 0, 1},
		{"choose all", 7, 7, 1},
		{"choose one", 90, 1, 90},
		{"k greater than n", 4, 6, 0},
		{"negative k", 5, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Combinations(tt.n, tt.k))
		})
	}
}

func TestCombinationsSymmetry(t *testing.T) {
	assert.Equal(t, Combinations(90, 6), Combinations(90, 84))
	assert.Equal(t, Combinations(45, 5), Combinations(45, 40))
}

func TestMatchProbability(t *testing.T) {
	// P(zero matches) playing 6 of 90 against a 6-number draw.
	p := MatchProbability(90, 6, 6, 0)
	assert.InDelta(t, 0.653, p, 0.001)

	// Full match is exactly one combination out of C(90,6).
	jackpot := MatchProbability(90, 6, 6, 6)
	assert.InEpsilon(t, 1.0/622614630, jackpot, 1e-9)
}

func TestMatchProbabilityDistributionSumsToOne(t *testing.T) {
	total := 0.0
	for k := 0; k <= 6; k++ {
		total += MatchProbability(90, 6, 6, k)
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestMatchProbabilityInvalidInputs(t *testing.T) {
	assert.Equal(t, 0.0, MatchProbability(90, 6, 6, 7))
	assert.Equal(t, 0.0, MatchProbability(90, 6, 6, -1))
	assert.Equal(t, 0.0, MatchProbability(0, 6, 6, 2))
}

func TestExpectedMatches(t *testing.T) {
	// The hypergeometric mean is p*m/n.
	assert.InDelta(t, 0.4, ExpectedMatches(90, 6, 6), 1e-9)
	assert.InDelta(t, 6.0*6.0/49.0, ExpectedMatches(49, 6, 6), 1e-9)
}

func TestProbabilityTable(t *testing.T) {
	game := testGame(t)
	table := ProbabilityTable(game)

	require.Len(t, table, game.PickCount+1)

	total := 0.0
	for k, row := range table {
		assert.Equal(t, k, row.Matches)
		total += row.Probability
		if row.Probability > 0 {
			assert.InEpsilon(t, 1/row.Probability, row.OneIn, 1e-9)
		}
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	// The jackpot row matches the closed-form count.
	assert.InEpsilon(t, 622614630.0, table[6].OneIn, 1e-6)
}
