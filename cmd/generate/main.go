// Package main provides the candidate generation CLI: it synthesizes a pool
// of combinations for a game, optionally saving them or recording past sets
// as unsuccessful.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-advisor/internal/config"
	"github.com/yourusername/draw-advisor/internal/database"
	"github.com/yourusername/draw-advisor/internal/generator"
	"github.com/yourusername/draw-advisor/internal/repository"
	"github.com/yourusername/draw-advisor/internal/service"
)

func main() {
	var (
		configPath   = flag.String("config", "config/config.yaml", "Path to config file")
		gameName     = flag.String("game", "", "Game to generate for (required)")
		variant      = flag.String("variant", "", "Game variant (empty for main numbers)")
		strategyName = flag.String("strategy", "", "Generation strategy (default from config)")
		count        = flag.Int("count", 5, "Number of candidates to generate")
		seed         = flag.Int64("seed", 0, "Random seed (0 derives one from the clock)")
		saveUser     = flag.String("save-user", "", "User UUID to save generated candidates for")
		unsuccessful = flag.String("record-unsuccessful", "", "Comma-separated numbers to record as unsuccessful instead of generating")
		userID       = flag.String("user", "", "User UUID for -record-unsuccessful")
	)
	flag.Parse()

	logger := newLogger()
	ctx := context.Background()

	if *gameName == "" {
		logger.Fatal("The -game flag is required")
	}

	cfg := loadConfigWithSecrets(*configPath, logger)
	generationSvc := buildGenerationService(ctx, cfg, logger)

	if *unsuccessful != "" {
		recordUnsuccessful(ctx, generationSvc, *gameName, *userID, *unsuccessful, logger)
		return
	}

	strategy, err := resolveStrategy(*strategyName)
	if err != nil {
		logger.Fatalf("Invalid strategy: %v", err)
	}

	candidates, err := generationSvc.GeneratePool(ctx, *gameName, *variant, strategy, *count, *seed)
	if err != nil {
		logger.Fatalf("Generation failed: %v", err)
	}

	fmt.Printf("\n=== %d candidates for %s ===\n\n", len(candidates), *gameName)
	for i, candidate := range candidates {
		fmt.Printf("%2d. %v", i+1, candidate.Numbers)
		if len(candidate.Supplementary) > 0 {
			fmt.Printf(" + %v", candidate.Supplementary)
		}
		if candidate.FitnessScore != nil {
			fmt.Printf("  fitness %.1f", *candidate.FitnessScore)
		}
		fmt.Printf("  (%s, %d attempts", candidate.Metadata.Strategy, candidate.Metadata.Attempts)
		if candidate.Metadata.SoftFilterViolated {
			fmt.Print(", soft filters relaxed")
		}
		fmt.Println(")")
	}
	fmt.Printf("\nSeed: %d (pass -seed to reproduce this pool against the same history)\n", candidates[0].Metadata.Seed)
	fmt.Println("Scores are descriptive rankings only; every combination has identical odds of winning.")

	if *saveUser != "" {
		uid, err := uuid.Parse(*saveUser)
		if err != nil {
			logger.Fatalf("Invalid -save-user UUID: %v", err)
		}
		for _, candidate := range candidates {
			saved, err := generationSvc.SaveCombination(ctx, *gameName, uid, candidate, "cli")
			if err != nil {
				logger.Fatalf("Failed to save combination %v: %v", candidate.Numbers, err)
			}
			fmt.Printf("Saved %v as %s\n", saved.Numbers, saved.ID)
		}
	}
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

func buildGenerationService(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *service.GenerationService {
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

	analysisSvc := service.NewAnalysisService(
		repos.Draw,
		repos.Unsuccessful,
		games,
		service.AnalysisConfigFromConfig(cfg.Analysis),
		0,
		nil,
		logger,
	)

	genCfg, err := service.GeneratorConfigFromConfig(cfg.Generator)
	if err != nil {
		logger.Fatalf("Invalid generator configuration: %v", err)
	}

	return service.NewGenerationService(
		analysisSvc,
		repos.Draw,
		repos.Saved,
		repos.Unsuccessful,
		genCfg,
		logger,
	)
}

// resolveStrategy parses the optional strategy override; empty keeps the
// configured default.
func resolveStrategy(name string) (generator.Strategy, error) {
	if name == "" {
		return "", nil
	}
	return generator.ParseStrategy(name)
}

func recordUnsuccessful(ctx context.Context, svc *service.GenerationService, gameName, user, numbersArg string, logger *logrus.Logger) {
	if user == "" {
		logger.Fatal("The -user flag is required with -record-unsuccessful")
	}
	uid, err := uuid.Parse(user)
	if err != nil {
		logger.Fatalf("Invalid -user UUID: %v", err)
	}

	numbers, err := parseNumbers(numbersArg)
	if err != nil {
		logger.Fatalf("Invalid -record-unsuccessful value: %v", err)
	}

	combo, err := svc.RecordUnsuccessful(ctx, gameName, uid, numbers)
	if err != nil {
		logger.Fatalf("Failed to record unsuccessful combination: %v", err)
	}
	fmt.Printf("Recorded %v as unsuccessful for %s\n", combo.Numbers, gameName)
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
