package recommend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/draw-advisor/internal/models"
)

func testGame(t *testing.T) *models.GameProfile {
	t.Helper()
	game, err := models.NewGameProfile("lotto", 90, 6, nil, nil)
	require.NoError(t, err)
	return game
}

func validRecommendation() *Recommendation {
	return &Recommendation{
		Numbers:    []int{3, 17, 24, 45, 61, 88},
		Confidence: 72.5,
		Rationale:  []string{"balanced decade coverage", "no consecutive runs"},
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.NoError(t, Validate(validRecommendation(), testGame(t)))
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Recommendation)
		wantRule string
	}{
		{
			name:     "too few numbers",
			mutate:   func(r *Recommendation) { r.Numbers = []int{1, 2, 3} },
			wantRule: RuleLength,
		},
		{
			name:     "too many numbers",
			mutate:   func(r *Recommendation) { r.Numbers = append(r.Numbers, 90) },
			wantRule: RuleLength,
		},
		{
			name:     "number above range",
			mutate:   func(r *Recommendation) { r.Numbers[0] = 91 },
			wantRule: RuleRange,
		},
		{
			name:     "number below range",
			mutate:   func(r *Recommendation) { r.Numbers[0] = 0 },
			wantRule: RuleRange,
		},
		{
			name:     "duplicate numbers",
			mutate:   func(r *Recommendation) { r.Numbers[1] = r.Numbers[0] },
			wantRule: RuleDistinct,
		},
		{
			name:     "confidence above bounds",
			mutate:   func(r *Recommendation) { r.Confidence = 100.5 },
			wantRule: RuleConfidence,
		},
		{
			name:     "negative confidence",
			mutate:   func(r *Recommendation) { r.Confidence = -1 },
			wantRule: RuleConfidence,
		},
		{
			name:     "missing rationale",
			mutate:   func(r *Recommendation) { r.Rationale = nil },
			wantRule: RuleRationale,
		},
		{
			name:     "empty rationale entry",
			mutate:   func(r *Recommendation) { r.Rationale = []string{"ok", ""} },
			wantRule: RuleRationale,
		},
	}

	game := testGame(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecommendation()
			tt.mutate(rec)

			err := Validate(rec, game)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantRule, verr.Rule)
		})
	}
}

func TestValidateNilRecommendation(t *testing.T) {
	err := Validate(nil, testGame(t))
	require.Error(t, err)
}

func TestValidateConfidenceBoundaries(t *testing.T) {
	game := testGame(t)

	rec := validRecommendation()
	rec.Confidence = 0
	assert.NoError(t, Validate(rec, game))

	rec.Confidence = 100
	assert.NoError(t, Validate(rec, game))
}
