package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/draw-advisor/internal/database"
	"github.com/yourusername/draw-advisor/internal/models"
)

const errScanCombination = "failed to scan saved combination: %w"

// PostgresSavedCombinationRepository implements SavedCombinationRepository
// for PostgreSQL
type PostgresSavedCombinationRepository struct {
	db *database.DB
}

// NewPostgresSavedCombinationRepository creates a new saved combination repository
func NewPostgresSavedCombinationRepository(db *database.DB) SavedCombinationRepository {
	return &PostgresSavedCombinationRepository{db: db}
}

// Create inserts a saved combination
func (r *PostgresSavedCombinationRepository) Create(ctx context.Context, comb *models.SavedCombination) error {
	query := `
		INSERT INTO saved_combinations (id, game_id, user_id, numbers, supplementary, fitness_score, strategy, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		comb.ID, comb.GameID, comb.UserID, comb.Numbers, comb.Supplementary,
		comb.FitnessScore, comb.Strategy, comb.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to create saved combination: %w", err)
	}

	return nil
}

// GetByID retrieves a saved combination by ID
func (r *PostgresSavedCombinationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedCombination, error) {
	query := `
		SELECT id, game_id, user_id, numbers, supplementary, fitness_score, strategy, source, created_at, played_at
		FROM saved_combinations WHERE id = $1
	`

	comb := &models.SavedCombination{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&comb.ID, &comb.GameID, &comb.UserID, &comb.Numbers, &comb.Supplementary,
		&comb.FitnessScore, &comb.Strategy, &comb.Source, &comb.CreatedAt, &comb.PlayedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved combination: %w", err)
	}

	return comb, nil
}

// GetByUser retrieves a user's saved combinations for a game, newest first
func (r *PostgresSavedCombinationRepository) GetByUser(ctx context.Context, gameID, userID uuid.UUID, limit int) ([]*models.SavedCombination, error) {
	query := `
		SELECT id, game_id, user_id, numbers, supplementary, fitness_score, strategy, source, created_at, played_at
		FROM saved_combinations
		WHERE game_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`
	args := []interface{}{gameID, userID}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved combinations: %w", err)
	}
	defer rows.Close()

	var combs []*models.SavedCombination
	for rows.Next() {
		comb := &models.SavedCombination{}
		err := rows.Scan(
			&comb.ID, &comb.GameID, &comb.UserID, &comb.Numbers, &comb.Supplementary,
			&comb.FitnessScore, &comb.Strategy, &comb.Source, &comb.CreatedAt, &comb.PlayedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanCombination, err)
		}
		combs = append(combs, comb)
	}

	return combs, rows.Err()
}

// MarkPlayed records when a saved combination was actually played
func (r *PostgresSavedCombinationRepository) MarkPlayed(ctx context.Context, id uuid.UUID, playedAt time.Time) error {
	query := `UPDATE saved_combinations SET played_at = $2 WHERE id = $1`

	commandTag, err := r.db.GetPool().Exec(ctx, query, id, playedAt)
	if err != nil {
		return fmt.Errorf("failed to mark combination played: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete deletes a saved combination
func (r *PostgresSavedCombinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	commandTag, err := r.db.GetPool().Exec(ctx, "DELETE FROM saved_combinations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete saved combination: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
