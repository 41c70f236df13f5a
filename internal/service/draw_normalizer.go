package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/draw-advisor/internal/datasource"
	"github.com/yourusername/draw-advisor/internal/models"
)

// DrawNormalizer converts draw data from any source into the internal record
// format: game names mapped to canonical configured names, numbers sorted
// ascending, dates in UTC.
type DrawNormalizer struct {
	gameNameMap map[string]string // Maps provider game names to canonical names
	logger      *log.Logger
}

// NewDrawNormalizer creates a new draw normalizer
func NewDrawNormalizer(logger *log.Logger) *DrawNormalizer {
	return &DrawNormalizer{
		gameNameMap: buildGameNameMap(),
		logger:      logger,
	}
}

// NormalizeDraw converts DrawData from any source to the internal DrawRecord
// model. Number canonicalization (sorting, range and distinctness checks) is
// delegated to the model constructor so the invariant lives in one place.
func (n *DrawNormalizer) NormalizeDraw(sourceDraw *datasource.DrawData, game *models.GameProfile) (*models.DrawRecord, error) {
	if sourceDraw == nil {
		return nil, fmt.Errorf("source draw is nil")
	}

	record, err := models.NewDrawRecord(
		game,
		sourceDraw.DrawDate.UTC(),
		sourceDraw.Numbers,
		sourceDraw.VariantNumbers,
		sourceDraw.Supplementary,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize draw %s: %w", sourceDraw.SourceID, err)
	}

	record.Jackpot = sourceDraw.Jackpot
	for _, tier := range sourceDraw.PrizeTiers {
		record.PrizeTiers = append(record.PrizeTiers, models.PrizeTier{
			Division: tier.Division,
			Winners:  tier.Winners,
			Amount:   tier.Amount,
		})
	}

	return record, nil
}

// NormalizeGameName converts provider-specific game names to canonical format
func (n *DrawNormalizer) NormalizeGameName(name string) string {
	if name == "" {
		return ""
	}

	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")

	if canonical, ok := n.gameNameMap[key]; ok {
		return canonical
	}

	return key
}

// buildGameNameMap returns mapping of game name variations to canonical names
func buildGameNameMap() map[string]string {
	return map[string]string{
		"lotto":          "lotto",
		"lotto_6/90":     "lotto",
		"six_of_ninety":  "lotto",
		"mini":           "mini",
		"mini_lotto":     "mini",
		"five_of_fortyfive": "mini",
	}
}
