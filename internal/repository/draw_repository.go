package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/draw-advisor/internal/database"
	"github.com/yourusername/draw-advisor/internal/models"
)

const errScanDraw = "failed to scan draw record: %w"

const drawColumns = `id, game_id, draw_date, numbers, variant_numbers, supplementary, jackpot, prize_tiers, created_at`

// PostgresDrawRepository implements DrawRepository for PostgreSQL
type PostgresDrawRepository struct {
	db *database.DB
}

// NewPostgresDrawRepository creates a new draw repository
func NewPostgresDrawRepository(db *database.DB) DrawRepository {
	return &PostgresDrawRepository{db: db}
}

// Create inserts a new draw record. A record with the same game, date, and
// canonical number sequence is skipped, keeping the first ingested copy.
func (r *PostgresDrawRepository) Create(ctx context.Context, draw *models.DrawRecord) error {
	query := `
		INSERT INTO draws (id, game_id, draw_date, numbers, variant_numbers, supplementary, jackpot, prize_tiers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_id, draw_date, numbers) DO NOTHING
	`

	variants, tiers, err := marshalDrawJSON(draw)
	if err != nil {
		return err
	}

	tag, err := r.db.GetPool().Exec(ctx, query,
		draw.ID, draw.GameID, draw.DrawDate, draw.Numbers, variants,
		draw.Supplementary, draw.Jackpot, tiers,
	)
	if err != nil {
		return fmt.Errorf("failed to create draw record: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrDuplicateKey
	}

	return nil
}

// CreateBatch inserts draw records inside one transaction, skipping
// duplicates. It returns the number of records actually inserted.
func (r *PostgresDrawRepository) CreateBatch(ctx context.Context, draws []*models.DrawRecord) (int, error) {
	inserted := 0
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO draws (id, game_id, draw_date, numbers, variant_numbers, supplementary, jackpot, prize_tiers)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (game_id, draw_date, numbers) DO NOTHING
		`
		for _, draw := range draws {
			variants, tiers, err := marshalDrawJSON(draw)
			if err != nil {
				return err
			}
			tag, err := tx.Exec(ctx, query,
				draw.ID, draw.GameID, draw.DrawDate, draw.Numbers, variants,
				draw.Supplementary, draw.Jackpot, tiers,
			)
			if err != nil {
				return fmt.Errorf("failed to insert draw record: %w", err)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetByID retrieves a draw record by ID
func (r *PostgresDrawRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DrawRecord, error) {
	query := `SELECT ` + drawColumns + ` FROM draws WHERE id = $1`

	draw, err := scanDraw(r.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw record: %w", err)
	}

	return draw, nil
}

// GetHistory retrieves the newest draws for a game, newest first. A limit of
// zero or less returns the full history.
func (r *PostgresDrawRepository) GetHistory(ctx context.Context, gameID uuid.UUID, limit int) ([]*models.DrawRecord, error) {
	query := `
		SELECT ` + drawColumns + `
		FROM draws
		WHERE game_id = $1
		ORDER BY draw_date DESC, created_at DESC
	`
	args := []interface{}{gameID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw history: %w", err)
	}
	defer rows.Close()

	return collectDraws(rows)
}

// GetByDateRange retrieves draws for a game within a date range, newest first
func (r *PostgresDrawRepository) GetByDateRange(ctx context.Context, gameID uuid.UUID, start, end time.Time) ([]*models.DrawRecord, error) {
	query := `
		SELECT ` + drawColumns + `
		FROM draws
		WHERE game_id = $1 AND draw_date >= $2 AND draw_date <= $3
		ORDER BY draw_date DESC, created_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws by date range: %w", err)
	}
	defer rows.Close()

	return collectDraws(rows)
}

// GetLatest retrieves the most recent draw for a game
func (r *PostgresDrawRepository) GetLatest(ctx context.Context, gameID uuid.UUID) (*models.DrawRecord, error) {
	query := `
		SELECT ` + drawColumns + `
		FROM draws
		WHERE game_id = $1
		ORDER BY draw_date DESC, created_at DESC
		LIMIT 1
	`

	draw, err := scanDraw(r.db.GetPool().QueryRow(ctx, query, gameID))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest draw: %w", err)
	}

	return draw, nil
}

// CountByGame counts the stored draws for a game
func (r *PostgresDrawRepository) CountByGame(ctx context.Context, gameID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetPool().QueryRow(ctx, "SELECT COUNT(*) FROM draws WHERE game_id = $1", gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return count, nil
}

// Delete deletes a draw record
func (r *PostgresDrawRepository) Delete(ctx context.Context, id uuid.UUID) error {
	commandTag, err := r.db.GetPool().Exec(ctx, "DELETE FROM draws WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete draw record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// marshalDrawJSON encodes the JSONB columns of a draw record.
func marshalDrawJSON(draw *models.DrawRecord) ([]byte, []byte, error) {
	var variants, tiers []byte
	var err error

	if draw.VariantNumbers != nil {
		variants, err = json.Marshal(draw.VariantNumbers)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal variant numbers: %w", err)
		}
	}
	if draw.PrizeTiers != nil {
		tiers, err = json.Marshal(draw.PrizeTiers)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal prize tiers: %w", err)
		}
	}
	return variants, tiers, nil
}

// scanDraw scans one draw row, decoding the JSONB columns.
func scanDraw(row pgx.Row) (*models.DrawRecord, error) {
	draw := &models.DrawRecord{}
	var variants, tiers []byte

	err := row.Scan(
		&draw.ID, &draw.GameID, &draw.DrawDate, &draw.Numbers, &variants,
		&draw.Supplementary, &draw.Jackpot, &tiers, &draw.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(variants) > 0 {
		if err := json.Unmarshal(variants, &draw.VariantNumbers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal variant numbers: %w", err)
		}
	}
	if len(tiers) > 0 {
		if err := json.Unmarshal(tiers, &draw.PrizeTiers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prize tiers: %w", err)
		}
	}

	return draw, nil
}

// collectDraws drains a row set into draw records.
func collectDraws(rows pgx.Rows) ([]*models.DrawRecord, error) {
	var draws []*models.DrawRecord
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanDraw, err)
		}
		draws = append(draws, draw)
	}
	return draws, rows.Err()
}
