package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/draw-advisor/internal/datasource"
	"github.com/yourusername/draw-advisor/internal/models"
)

// DrawValidator validates incoming draw results against their game profile
type DrawValidator struct {
	logger *log.Logger
}

// NewDrawValidator creates a new draw validator
func NewDrawValidator(logger *log.Logger) *DrawValidator {
	return &DrawValidator{logger: logger}
}

// ValidateDraw validates raw draw data for required fields and constraints
func (v *DrawValidator) ValidateDraw(draw *datasource.DrawData, game *models.GameProfile) []string {
	var errors []string

	if draw.SourceID == "" {
		errors = append(errors, "source draw id is required")
	}

	if draw.GameName == "" {
		errors = append(errors, "game name is required")
	}

	if draw.DrawDate.IsZero() {
		errors = append(errors, "draw_date is required")
	}

	errors = append(errors, v.validateNumbers(draw.Numbers, game, "numbers")...)

	for variant, numbers := range draw.VariantNumbers {
		if !game.HasVariant(variant) {
			errors = append(errors, fmt.Sprintf("unknown variant %q for game %s", variant, game.Name))
			continue
		}
		errors = append(errors, v.validateNumbers(numbers, game, fmt.Sprintf("variant %s", variant))...)
	}

	if len(draw.Supplementary) > 0 {
		if game.Supplementary == nil {
			errors = append(errors, fmt.Sprintf("game %s does not define supplementary numbers", game.Name))
		} else {
			errors = append(errors, v.validateSupplementary(draw.Supplementary, game.Supplementary)...)
		}
	}

	// Draws are results, never fixtures: a future draw date means a
	// provider clock or parsing problem.
	now := time.Now()
	if draw.DrawDate.After(now.Add(24 * time.Hour)) {
		errors = append(errors, fmt.Sprintf("draw date %s is in the future", draw.DrawDate.Format("2006-01-02")))
	}

	return errors
}

// validateNumbers checks count, range, and distinctness of a number set
func (v *DrawValidator) validateNumbers(numbers []int, game *models.GameProfile, field string) []string {
	var errors []string

	if len(numbers) != game.PickCount {
		errors = append(errors, fmt.Sprintf("%s: expected %d numbers, got %d", field, game.PickCount, len(numbers)))
		return errors
	}

	seen := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		if !game.InRange(n) {
			errors = append(errors, fmt.Sprintf("%s: number %d outside range 1-%d", field, n, game.NumberRange))
		}
		if seen[n] {
			errors = append(errors, fmt.Sprintf("%s: duplicate number %d", field, n))
		}
		seen[n] = true
	}

	return errors
}

// validateSupplementary checks the supplementary set against its own rule
func (v *DrawValidator) validateSupplementary(numbers []int, rule *models.SupplementaryRule) []string {
	var errors []string

	if len(numbers) != rule.Count {
		errors = append(errors, fmt.Sprintf("supplementary: expected %d numbers, got %d", rule.Count, len(numbers)))
		return errors
	}

	seen := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		if n < 1 || n > rule.NumberRange {
			errors = append(errors, fmt.Sprintf("supplementary: number %d outside range 1-%d", n, rule.NumberRange))
		}
		if seen[n] {
			errors = append(errors, fmt.Sprintf("supplementary: duplicate number %d", n))
		}
		seen[n] = true
	}

	return errors
}

// IsValidGameName checks if a game name is in expected format
func (v *DrawValidator) IsValidGameName(name string) bool {
	return len(name) > 0 && len(name) < 100
}
