// Package main provides the recommendation CLI: it requests candidate
// combinations from the external recommendation provider, computed against
// the current draw history.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yourusername/draw-advisor/internal/config"
	"github.com/yourusername/draw-advisor/internal/database"
	"github.com/yourusername/draw-advisor/internal/recommend"
	"github.com/yourusername/draw-advisor/internal/repository"
	"github.com/yourusername/draw-advisor/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	gameName   string
	variant    string
	count      int
	logger     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&gameName, "game", "g", "", "Game to request recommendations for (required)")
	rootCmd.Flags().StringVar(&variant, "variant", "", "Game variant (empty for main numbers)")
	rootCmd.Flags().IntVarP(&count, "count", "n", 3, "Number of recommendations to request")
	rootCmd.MarkFlagRequired("game")
	rootCmd.AddCommand(healthCmd)
}

var rootCmd = &cobra.Command{
	Use:     "recommend",
	Short:   "Request combination recommendations from the provider",
	Long:    `Feeds the current game statistics to the external recommendation provider and prints its validated suggestions.`,
	Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		runRecommendations()
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check recommendation provider connectivity",
	Run: func(cmd *cobra.Command, args []string) {
		runHealthCheck()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("DRAW_ADVISOR")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

func setupDependencies() error {
	logger = logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	return nil
}

func buildRecommendationService() *service.RecommendationService {
	games, err := service.GameProfilesFromConfig(cfg.Games)
	if err != nil {
		logger.WithError(err).Fatal("Invalid game configuration")
	}

	analysisSvc := service.NewAnalysisService(
		repos.Draw,
		repos.Unsuccessful,
		games,
		service.AnalysisConfigFromConfig(cfg.Analysis),
		0,
		nil,
		logger,
	)

	client := recommend.NewCachedClient(&cfg.Recommender, logger)

	return service.NewRecommendationService(
		analysisSvc,
		client,
		cfg.Features.RecommendationsEnabled && cfg.Recommender.Enabled,
		logger,
	)
}

func runRecommendations() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	svc := buildRecommendationService()
	defer svc.Close()

	if !svc.Enabled() {
		log.Fatal("Recommendations are disabled; enable features.recommendations_enabled and recommender.enabled in config")
	}

	recs, err := svc.GetRecommendations(ctx, gameName, variant, count)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get recommendations")
	}

	fmt.Printf("\n=== %d provider recommendations for %s ===\n\n", len(recs), gameName)
	for i, rec := range recs {
		fmt.Printf("%2d. %v", i+1, rec.Numbers)
		if len(rec.Supplementary) > 0 {
			fmt.Printf(" + %v", rec.Supplementary)
		}
		fmt.Printf("  confidence %.2f\n", rec.Confidence)
		for _, reason := range rec.Rationale {
			fmt.Printf("      - %s\n", reason)
		}
	}
	fmt.Println("\nProvider suggestions are advisory rankings only; every combination has identical odds of winning.")
}

func runHealthCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := buildRecommendationService()
	defer svc.Close()

	if err := svc.HealthCheck(ctx); err != nil {
		log.Fatalf("Provider unhealthy: %v", err)
	}
	fmt.Println("Provider healthy")
}
