package service

import (
	"fmt"

	"github.com/yourusername/draw-advisor/internal/analysis"
	"github.com/yourusername/draw-advisor/internal/config"
	"github.com/yourusername/draw-advisor/internal/generator"
	"github.com/yourusername/draw-advisor/internal/models"
)

// GameProfilesFromConfig builds validated game profiles from configuration
func GameProfilesFromConfig(games []config.GameConfig) ([]*models.GameProfile, error) {
	profiles := make([]*models.GameProfile, 0, len(games))
	for _, gc := range games {
		var supplementary *models.SupplementaryRule
		if gc.SupplementaryCount > 0 {
			supplementary = &models.SupplementaryRule{
				Count:       gc.SupplementaryCount,
				NumberRange: gc.SupplementaryRange,
			}
		}

		profile, err := models.NewGameProfile(gc.Name, gc.NumberRange, gc.PickCount, gc.Variants, supplementary)
		if err != nil {
			return nil, fmt.Errorf("invalid game %q: %w", gc.Name, err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// AnalysisConfigFromConfig maps the configured analyzer policy
func AnalysisConfigFromConfig(cfg config.AnalysisConfig) analysis.Config {
	return analysis.Config{
		RecentWindow:       cfg.RecentWindow,
		TopPoolSize:        cfg.TopPoolSize,
		MinPairOccurrences: cfg.MinPairOccurrences,
		PairExpectedFloor:  cfg.PairExpectedFloor,
		TopPairWindow:      cfg.TopPairWindow,
	}.Normalized()
}

// GeneratorConfigFromConfig maps the configured generation policy
func GeneratorConfigFromConfig(cfg config.GeneratorConfig) (generator.Config, error) {
	strategy, err := generator.ParseStrategy(cfg.Strategy)
	if err != nil {
		return generator.Config{}, err
	}

	return generator.Config{
		Strategy:            strategy,
		PoolSize:            cfg.PoolSize,
		MaxAttempts:         cfg.MaxAttempts,
		MaxConsecutiveRuns:  cfg.MaxConsecutiveRuns,
		UnluckyPairMinCount: cfg.UnluckyPairMinCount,
		AttachScores:        cfg.AttachScores,
	}, nil
}
