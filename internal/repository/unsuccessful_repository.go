package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/draw-advisor/internal/database"
	"github.com/yourusername/draw-advisor/internal/models"
)

const errScanUnsuccessful = "failed to scan unsuccessful combination: %w"

// PostgresUnsuccessfulCombinationRepository implements
// UnsuccessfulCombinationRepository for PostgreSQL
type PostgresUnsuccessfulCombinationRepository struct {
	db *database.DB
}

// NewPostgresUnsuccessfulCombinationRepository creates a new unsuccessful combination repository
func NewPostgresUnsuccessfulCombinationRepository(db *database.DB) UnsuccessfulCombinationRepository {
	return &PostgresUnsuccessfulCombinationRepository{db: db}
}

// Create inserts an unsuccessful combination. The same number set may be
// recorded by different users; per user it is kept once.
func (r *PostgresUnsuccessfulCombinationRepository) Create(ctx context.Context, comb *models.UnsuccessfulCombination) error {
	query := `
		INSERT INTO unsuccessful_combinations (id, game_id, user_id, numbers)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (game_id, user_id, numbers) DO NOTHING
	`

	tag, err := r.db.GetPool().Exec(ctx, query, comb.ID, comb.GameID, comb.UserID, comb.Numbers)
	if err != nil {
		return fmt.Errorf("failed to create unsuccessful combination: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrDuplicateKey
	}

	return nil
}

// GetByGame retrieves all unsuccessful combinations for a game
func (r *PostgresUnsuccessfulCombinationRepository) GetByGame(ctx context.Context, gameID uuid.UUID) ([]*models.UnsuccessfulCombination, error) {
	query := `
		SELECT id, game_id, user_id, numbers, created_at
		FROM unsuccessful_combinations
		WHERE game_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsuccessful combinations: %w", err)
	}
	defer rows.Close()

	return collectUnsuccessful(rows)
}

// GetByUser retrieves a user's unsuccessful combinations for a game
func (r *PostgresUnsuccessfulCombinationRepository) GetByUser(ctx context.Context, gameID, userID uuid.UUID) ([]*models.UnsuccessfulCombination, error) {
	query := `
		SELECT id, game_id, user_id, numbers, created_at
		FROM unsuccessful_combinations
		WHERE game_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsuccessful combinations: %w", err)
	}
	defer rows.Close()

	return collectUnsuccessful(rows)
}

// CountByGame counts the unsuccessful combinations recorded for a game
func (r *PostgresUnsuccessfulCombinationRepository) CountByGame(ctx context.Context, gameID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetPool().QueryRow(ctx,
		"SELECT COUNT(*) FROM unsuccessful_combinations WHERE game_id = $1", gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unsuccessful combinations: %w", err)
	}
	return count, nil
}

// Delete deletes an unsuccessful combination
func (r *PostgresUnsuccessfulCombinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	commandTag, err := r.db.GetPool().Exec(ctx, "DELETE FROM unsuccessful_combinations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete unsuccessful combination: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// collectUnsuccessful drains a row set into unsuccessful combinations.
func collectUnsuccessful(rows pgx.Rows) ([]*models.UnsuccessfulCombination, error) {
	var combs []*models.UnsuccessfulCombination
	for rows.Next() {
		comb := &models.UnsuccessfulCombination{}
		err := rows.Scan(&comb.ID, &comb.GameID, &comb.UserID, &comb.Numbers, &comb.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf(errScanUnsuccessful, err)
		}
		combs = append(combs, comb)
	}
	return combs, rows.Err()
}
