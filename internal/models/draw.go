package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PrizeTier records one prize division of a draw. Prize amounts are
// ingestion-side metadata and never feed the analysis math.
type PrizeTier struct {
	Division int             `db:"division" json:"division"`
	Winners  int             `db:"winners" json:"winners"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
}

// DrawRecord represents one historical outcome of a game. Numbers are held
// in canonical ascending order; the canonical form doubles as the
// deduplication key used by the ingestion layer. Records are immutable once
// created and are consumed newest-first by the analysis engine.
type DrawRecord struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	GameID         uuid.UUID        `db:"game_id" json:"game_id"`
	DrawDate       time.Time        `db:"draw_date" json:"draw_date"`
	Numbers        []int            `db:"numbers" json:"numbers"`
	VariantNumbers map[string][]int `db:"variant_numbers" json:"variant_numbers,omitempty"`
	Supplementary  []int            `db:"supplementary" json:"supplementary,omitempty"`
	Jackpot        *decimal.Decimal `db:"jackpot" json:"jackpot,omitempty"`
	PrizeTiers     []PrizeTier      `db:"prize_tiers" json:"prize_tiers,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
}

// NewDrawRecord builds a draw record with numbers validated against the game
// profile and normalized to canonical ascending order.
func NewDrawRecord(game *GameProfile, drawDate time.Time, numbers []int, variantNumbers map[string][]int, supplementary []int) (*DrawRecord, error) {
	canonical, err := CanonicalNumbers(game, numbers)
	if err != nil {
		return nil, err
	}

	var variants map[string][]int
	if len(variantNumbers) > 0 {
		variants = make(map[string][]int, len(variantNumbers))
		for name, nums := range variantNumbers {
			if !game.HasVariant(name) {
				return nil, fmt.Errorf("unknown variant %q for game %s", name, game.Name)
			}
			vc, err := CanonicalNumbers(game, nums)
			if err != nil {
				return nil, fmt.Errorf("variant %q: %w", name, err)
			}
			variants[name] = vc
		}
	}

	return &DrawRecord{
		ID:             uuid.New(),
		GameID:         game.ID,
		DrawDate:       drawDate,
		Numbers:        canonical,
		VariantNumbers: variants,
		Supplementary:  supplementary,
		CreatedAt:      time.Now(),
	}, nil
}

// CanonicalNumbers validates a number set against the game profile and
// returns a sorted ascending copy.
func CanonicalNumbers(game *GameProfile, numbers []int) ([]int, error) {
	if len(numbers) != game.PickCount {
		return nil, fmt.Errorf("expected %d numbers, got %d", game.PickCount, len(numbers))
	}

	seen := make(map[int]bool, len(numbers))
	canonical := make([]int, len(numbers))
	for i, n := range numbers {
		if !game.InRange(n) {
			return nil, fmt.Errorf("number %d outside range [1,%d]", n, game.NumberRange)
		}
		if seen[n] {
			return nil, fmt.Errorf("duplicate number %d", n)
		}
		seen[n] = true
		canonical[i] = n
	}
	sort.Ints(canonical)

	return canonical, nil
}

// NumbersFor returns the canonical number set for the given variant, or the
// main numbers when variant is empty or unknown to this record.
func (d *DrawRecord) NumbersFor(variant string) []int {
	if variant == "" {
		return d.Numbers
	}
	if nums, ok := d.VariantNumbers[variant]; ok {
		return nums
	}
	return nil
}

// Key returns the deduplication key: game, draw date, and the canonical
// ascending number sequence.
func (d *DrawRecord) Key() string {
	parts := make([]string, 0, len(d.Numbers)+2)
	parts = append(parts, d.GameID.String(), d.DrawDate.UTC().Format("2006-01-02"))
	for _, n := range d.Numbers {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return strings.Join(parts, ":")
}
