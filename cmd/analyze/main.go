// Package main provides the statistics CLI: it prints the analytical picture
// of a game's draw history, or evaluates a user-supplied combination.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-advisor/internal/config"
	"github.com/yourusername/draw-advisor/internal/database"
	"github.com/yourusername/draw-advisor/internal/repository"
	"github.com/yourusername/draw-advisor/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		gameName   = flag.String("game", "", "Game to analyze (required)")
		variant    = flag.String("variant", "", "Game variant (empty for main numbers)")
		evaluate   = flag.String("evaluate", "", "Comma-separated numbers to evaluate instead of printing stats")
	)
	flag.Parse()

	logger := newLogger()
	ctx := context.Background()

	if *gameName == "" {
		logger.Fatal("The -game flag is required")
	}

	cfg := loadConfigWithSecrets(*configPath, logger)
	analysisSvc := buildAnalysisService(ctx, cfg, logger)

	if *evaluate != "" {
		numbers, err := parseNumbers(*evaluate)
		if err != nil {
			logger.Fatalf("Invalid -evaluate value: %v", err)
		}
		printEvaluation(ctx, analysisSvc, *gameName, *variant, numbers, logger)
		return
	}

	printStats(ctx, analysisSvc, *gameName, *variant, cfg.Features.EqualChanceReportShown, logger)
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

func loadConfigWithSecrets(path string, logger *logrus.Logger) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			logger.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			logger.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildAnalysisService(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *service.AnalysisService {
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		logger.Fatalf("Failed to initialize repositories: %v", err)
	}

	games, err := service.GameProfilesFromConfig(cfg.Games)
	if err != nil {
		logger.Fatalf("Invalid game configuration: %v", err)
	}

	return service.NewAnalysisService(
		repos.Draw,
		repos.Unsuccessful,
		games,
		service.AnalysisConfigFromConfig(cfg.Analysis),
		0,
		nil,
		logger,
	)
}

// parseNumbers parses a comma-separated list of integers
func parseNumbers(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	numbers := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", field)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

func printStats(ctx context.Context, svc *service.AnalysisService, gameName, variant string, showOdds bool, logger *logrus.Logger) {
	stats, err := svc.GetGameStats(ctx, gameName, variant)
	if err != nil {
		logger.Fatalf("Failed to compute statistics: %v", err)
	}

	fmt.Printf("\n=== %s", gameName)
	if variant != "" {
		fmt.Printf(" (%s)", variant)
	}
	fmt.Printf(": %d draws analyzed ===\n", stats.HistorySize)

	fmt.Println("\nMost frequent numbers:")
	for _, s := range stats.TopFrequent {
		fmt.Printf("  %3d  drawn %d times (%.1f%% of draws)\n", s.Number, s.Count, s.Percentage)
	}

	fmt.Println("\nLeast frequent numbers:")
	for _, s := range stats.TopInfrequent {
		fmt.Printf("  %3d  drawn %d times (%.1f%% of draws)\n", s.Number, s.Count, s.Percentage)
	}

	fmt.Println("\nLongest absent numbers:")
	for _, s := range stats.MostDelayed {
		fmt.Printf("  %3d  last seen %d draws ago\n", s.Number, s.Delay)
	}

	fmt.Println("\nStrongest co-occurring pairs (lift over independence):")
	for _, p := range stats.TopPairs {
		fmt.Printf("  %3d & %-3d  seen %d times, lift %.2f (score %+.3f)\n",
			p.NumberA, p.NumberB, p.ObservedCount, p.Lift, p.LiftScore)
	}

	// Every combination has identical true odds; the table makes that
	// explicit next to the descriptive statistics above.
	if showOdds {
		fmt.Println("\nFixed match odds for any combination:")
		for _, row := range stats.ProbabilityTable {
			if row.Probability == 0 {
				fmt.Printf("  %d matches: never\n", row.Matches)
				continue
			}
			fmt.Printf("  %d matches: %.9f (1 in %.0f)\n", row.Matches, row.Probability, row.OneIn)
		}
	}

	fmt.Printf("\nHistory fingerprint: %s\n\n", stats.HistoryHash[:16])
}

func printEvaluation(ctx context.Context, svc *service.AnalysisService, gameName, variant string, numbers []int, logger *logrus.Logger) {
	eval, err := svc.EvaluateCombination(ctx, gameName, variant, numbers)
	if err != nil {
		logger.Fatalf("Failed to evaluate combination: %v", err)
	}

	fmt.Printf("\n=== Evaluation of %v ===\n", eval.Numbers)
	fmt.Printf("\nShape:\n")
	fmt.Printf("  Sum: %d (target %.0f)\n", eval.Distribution.Sum, eval.Target.Sum)
	fmt.Printf("  Spread: %d (target %.0f)\n", eval.Distribution.Spread, eval.Target.Spread)
	fmt.Printf("  Even/odd ratio: %.2f\n", eval.Distribution.EvenOddRatio)
	fmt.Printf("  Consecutive runs: %d\n", eval.Distribution.ConsecutiveRunCount)
	fmt.Printf("  Average gap: %.1f\n", eval.Distribution.AverageGap)

	fmt.Printf("\nFitness: %.1f / 100\n", eval.Fitness.Score)
	fmt.Printf("  Sum penalty: -%.1f\n", eval.Fitness.SumPenalty)
	fmt.Printf("  Spread penalty: -%.1f\n", eval.Fitness.SpreadPenalty)
	fmt.Printf("  Run penalty: -%.1f\n", eval.Fitness.RunPenalty)
	fmt.Printf("  Density penalty: -%.1f\n", eval.Fitness.DensityPenalty)
	fmt.Printf("  Influence bonus: +%.1f\n", eval.Fitness.InfluenceBonus)

	fmt.Printf("\nHistorical matches (descriptive, not predictive):\n")
	for k, share := range eval.Impact.MatchDistribution {
		fmt.Printf("  %d matches in %.1f%% of past draws\n", k, share*100)
	}
	fmt.Printf("  Mean matches: %.3f\n", eval.Impact.ExpectedMatches)
	fmt.Printf("  Impact score: %.3f\n\n", eval.Impact.ImpactScore)
}
