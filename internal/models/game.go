package models

import (
	"github.com/google/uuid"
)

// SupplementaryRule describes the optional supplementary numbers of a game,
// drawn from a range that may differ from the main range. Supplementary
// values are tracked alongside draws but never enter the core combinatorics.
type SupplementaryRule struct {
	Count       int `json:"count" validate:"required,gt=0"`
	NumberRange int `json:"number_range" validate:"required,gt=0"`
}

// GameProfile holds the static parameters of a pick-K-of-N draw game.
// It is the single source of truth for all range and count validation,
// and is treated as read-only after construction.
type GameProfile struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	NumberRange   int                `json:"number_range"`
	PickCount     int                `json:"pick_count"`
	Variants      []string           `json:"variants,omitempty"`
	Supplementary *SupplementaryRule `json:"supplementary,omitempty"`
}

// NewGameProfile constructs a validated game profile. Invalid parameters are
// fatal configuration errors, never clamped.
func NewGameProfile(name string, numberRange, pickCount int, variants []string, supplementary *SupplementaryRule) (*GameProfile, error) {
	if name == "" {
		return nil, ErrGameNameRequired
	}
	if numberRange < 1 {
		return nil, ErrInvalidNumberRange
	}
	if pickCount < 1 || pickCount > numberRange {
		return nil, ErrInvalidPickCount
	}

	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if v == "" || seen[v] {
			return nil, ErrInvalidVariantName
		}
		seen[v] = true
	}

	if supplementary != nil {
		if supplementary.Count < 1 || supplementary.NumberRange < 1 || supplementary.Count > supplementary.NumberRange {
			return nil, ErrInvalidPickCount
		}
	}

	return &GameProfile{
		ID:            uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		Name:          name,
		NumberRange:   numberRange,
		PickCount:     pickCount,
		Variants:      variants,
		Supplementary: supplementary,
	}, nil
}

// HasVariant reports whether the named variant belongs to this game.
func (g *GameProfile) HasVariant(name string) bool {
	for _, v := range g.Variants {
		if v == name {
			return true
		}
	}
	return false
}

// InRange reports whether n is a drawable number for this game.
func (g *GameProfile) InRange(n int) bool {
	return n >= 1 && n <= g.NumberRange
}
