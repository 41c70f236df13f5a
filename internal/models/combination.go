package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnsuccessfulCombination is a user-tagged number set used only as a
// negative signal. It need not correspond to any real draw; it shares the
// shape invariant of DrawRecord.Numbers.
type UnsuccessfulCombination struct {
	ID        uuid.UUID `db:"id" json:"id"`
	GameID    uuid.UUID `db:"game_id" json:"game_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Numbers   []int     `db:"numbers" json:"numbers"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewUnsuccessfulCombination validates and canonicalizes a negative-signal
// combination for a game.
func NewUnsuccessfulCombination(game *GameProfile, userID uuid.UUID, numbers []int) (*UnsuccessfulCombination, error) {
	canonical, err := CanonicalNumbers(game, numbers)
	if err != nil {
		return nil, err
	}
	return &UnsuccessfulCombination{
		ID:        uuid.New(),
		GameID:    game.ID,
		UserID:    userID,
		Numbers:   canonical,
		CreatedAt: time.Now(),
	}, nil
}

// GenerationMetadata records how a candidate was produced. SoftFilterViolated
// is set when the generator exhausted its retry ceiling and returned the last
// candidate anyway.
type GenerationMetadata struct {
	Strategy           string    `json:"strategy"`
	Attempts           int       `json:"attempts"`
	SoftFilterViolated bool      `json:"soft_filter_violated"`
	Seed               int64     `json:"seed,omitempty"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// CandidateCombination is a synthesized number combination. The attached
// fitness and influence values are bounded analytical scores for ordering
// and exploration; none of them represents a probability of winning.
type CandidateCombination struct {
	ID            uuid.UUID          `json:"id"`
	GameID        uuid.UUID          `json:"game_id"`
	Numbers       []int              `json:"numbers"`
	Supplementary []int              `json:"supplementary,omitempty"`
	FitnessScore  *float64           `json:"fitness_score,omitempty"`
	MeanInfluence *float64           `json:"mean_influence,omitempty"`
	Metadata      GenerationMetadata `json:"generation_metadata"`
}

// SavedCombination is a candidate persisted on a user's behalf by the
// storage collaborator.
type SavedCombination struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	GameID        uuid.UUID  `db:"game_id" json:"game_id"`
	UserID        uuid.UUID  `db:"user_id" json:"user_id"`
	Numbers       []int      `db:"numbers" json:"numbers"`
	Supplementary []int      `db:"supplementary" json:"supplementary,omitempty"`
	FitnessScore  *float64   `db:"fitness_score" json:"fitness_score,omitempty"`
	Strategy      string     `db:"strategy" json:"strategy"`
	Source        string     `db:"source" json:"source"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	PlayedAt      *time.Time `db:"played_at" json:"played_at,omitempty"`
}

// NumbersKey returns the canonical string form of a sorted number set,
// used for set-equality checks against negative signals.
func NumbersKey(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ",")
}
