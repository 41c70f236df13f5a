package recommend

import (
	"fmt"

	"github.com/yourusername/draw-advisor/internal/models"
)

// Recommendation is a candidate produced by the external provider. Nothing
// in it is trusted until it passes Validate.
type Recommendation struct {
	Numbers       []int    `json:"numbers"`
	Supplementary []int    `json:"supplementary,omitempty"`
	Confidence    float64  `json:"confidence"`
	Rationale     []string `json:"rationale"`
}

// Validation rule names, one per independently testable check.
const (
	RuleLength     = "numbers_length"
	RuleRange      = "numbers_range"
	RuleDistinct   = "numbers_distinct"
	RuleConfidence = "confidence_bounds"
	RuleRationale  = "rationale_present"
)

// ValidationError names the first violated rule. The error is propagated to
// the caller unmodified; no partial acceptance or silent repair happens.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("recommendation validation failed (%s): %s", e.Rule, e.Message)
}

// Validate applies the acceptance rules in order and fails on the first
// violation. A nil return means the recommendation is structurally valid
// for the given game; it implies nothing about its quality.
func Validate(rec *Recommendation, game *models.GameProfile) error {
	if rec == nil {
		return &ValidationError{Rule: RuleLength, Message: "recommendation is empty"}
	}

	if len(rec.Numbers) != game.PickCount {
		return &ValidationError{
			Rule:    RuleLength,
			Message: fmt.Sprintf("expected %d numbers, got %d", game.PickCount, len(rec.Numbers)),
		}
	}

	for _, n := range rec.Numbers {
		if !game.InRange(n) {
			return &ValidationError{
				Rule:    RuleRange,
				Message: fmt.Sprintf("number %d outside range [1,%d]", n, game.NumberRange),
			}
		}
	}

	seen := make(map[int]bool, len(rec.Numbers))
	for _, n := range rec.Numbers {
		if seen[n] {
			return &ValidationError{
				Rule:    RuleDistinct,
				Message: fmt.Sprintf("duplicate number %d", n),
			}
		}
		seen[n] = true
	}

	if rec.Confidence < 0 || rec.Confidence > 100 {
		return &ValidationError{
			Rule:    RuleConfidence,
			Message: fmt.Sprintf("confidence %.2f outside [0,100]", rec.Confidence),
		}
	}

	if len(rec.Rationale) == 0 {
		return &ValidationError{Rule: RuleRationale, Message: "rationale must be a non-empty list"}
	}
	for i, r := range rec.Rationale {
		if r == "" {
			return &ValidationError{
				Rule:    RuleRationale,
				Message: fmt.Sprintf("rationale entry %d is empty", i),
			}
		}
	}

	return nil
}
