package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/draw-advisor/internal/models"
)

// DrawRepository defines the interface for draw history data access. History
// reads return records newest-first, matching the order the analysis engine
// consumes them in.
type DrawRepository interface {
	Create(ctx context.Context, draw *models.DrawRecord) error
	CreateBatch(ctx context.Context, draws []*models.DrawRecord) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.DrawRecord, error)
	GetHistory(ctx context.Context, gameID uuid.UUID, limit int) ([]*models.DrawRecord, error)
	GetByDateRange(ctx context.Context, gameID uuid.UUID, start, end time.Time) ([]*models.DrawRecord, error)
	GetLatest(ctx context.Context, gameID uuid.UUID) (*models.DrawRecord, error)
	CountByGame(ctx context.Context, gameID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SavedCombinationRepository defines the interface for saved combination
// data access
type SavedCombinationRepository interface {
	Create(ctx context.Context, comb *models.SavedCombination) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SavedCombination, error)
	GetByUser(ctx context.Context, gameID, userID uuid.UUID, limit int) ([]*models.SavedCombination, error)
	MarkPlayed(ctx context.Context, id uuid.UUID, playedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnsuccessfulCombinationRepository defines the interface for the
// negative-signal combination set
type UnsuccessfulCombinationRepository interface {
	Create(ctx context.Context, comb *models.UnsuccessfulCombination) error
	GetByGame(ctx context.Context, gameID uuid.UUID) ([]*models.UnsuccessfulCombination, error)
	GetByUser(ctx context.Context, gameID, userID uuid.UUID) ([]*models.UnsuccessfulCombination, error)
	CountByGame(ctx context.Context, gameID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
