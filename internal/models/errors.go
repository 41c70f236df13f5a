package models

import "errors"

// Custom errors
var (
	ErrGameNameRequired   = errors.New("game name is required")
	ErrInvalidNumberRange = errors.New("number range must be at least 1")
	ErrInvalidPickCount   = errors.New("pick count must be between 1 and the number range")
	ErrInvalidVariantName = errors.New("variant name must be non-empty and unique")
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateKey       = errors.New("duplicate key violation")
	ErrInvalidID          = errors.New("invalid ID format")
)
