// Package main provides the one-shot historical backfill CLI: it pulls a
// date range of draw results from a configured source into the database and
// prints the ingestion metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-advisor/internal/config"
	"github.com/yourusername/draw-advisor/internal/database"
	"github.com/yourusername/draw-advisor/internal/datasource"
	"github.com/yourusername/draw-advisor/internal/logger"
	"github.com/yourusername/draw-advisor/internal/repository"
	"github.com/yourusername/draw-advisor/internal/service"
)

const dateLayout = "2006-01-02"

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		sourceName = flag.String("source", "", "Data source name (default: first enabled source)")
		gameName   = flag.String("game", "", "Game to backfill (required)")
		startArg   = flag.String("start-date", "", "Start date, YYYY-MM-DD (required)")
		endArg     = flag.String("end-date", time.Now().Format(dateLayout), "End date, YYYY-MM-DD")
	)
	flag.Parse()

	appLog := newLogger()
	ctx := context.Background()

	if *gameName == "" {
		appLog.Fatal("The -game flag is required")
	}
	if *startArg == "" {
		appLog.Fatal("The -start-date flag is required")
	}

	startDate, err := time.Parse(dateLayout, *startArg)
	if err != nil {
		appLog.Fatalf("Invalid -start-date: %v", err)
	}
	endDate, err := time.Parse(dateLayout, *endArg)
	if err != nil {
		appLog.Fatalf("Invalid -end-date: %v", err)
	}
	if endDate.Before(startDate) {
		appLog.Fatal("-end-date must not be before -start-date")
	}

	cfg := loadConfigWithSecrets(*configPath, appLog)

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.Fatalf("Failed to initialize repositories: %v", err)
	}

	games, err := service.GameProfilesFromConfig(cfg.Games)
	if err != nil {
		appLog.Fatalf("Invalid game configuration: %v", err)
	}

	httpLogger := log.New(os.Stdout, "datasource: ", log.LstdFlags)
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), appLog)
	factory := datasource.NewFactory(cfg, httpLogger)

	sources, err := factory.NewDataSources(cfg.DataIngestion, httpClient)
	if err != nil {
		appLog.Fatalf("Failed to initialize data sources: %v", err)
	}

	source := *sourceName
	if source == "" {
		source = sources[0].Name()
	}

	svcLogger := log.New(os.Stdout, "ingestion: ", log.LstdFlags)
	ingestionSvc := service.NewIngestionService(
		sources,
		repos.Draw,
		games,
		service.NewDrawValidator(svcLogger),
		service.NewDrawNormalizer(svcLogger),
		logger.NewAuditLogger(appLog),
		svcLogger,
		batchSizeFor(cfg),
	)

	fmt.Printf("Backfilling %s from %s (%s to %s)...\n",
		*gameName, source, startDate.Format(dateLayout), endDate.Format(dateLayout))

	metrics, err := ingestionSvc.IngestHistoricalData(ctx, source, *gameName, startDate, endDate)
	if err != nil {
		appLog.Fatalf("Backfill failed: %v", err)
	}

	fmt.Printf("Backfill complete: %s\n", metrics.String())
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
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

// batchSizeFor picks the batch size of the first enabled source
func batchSizeFor(cfg *config.Config) int {
	for _, src := range cfg.DataIngestion.Sources {
		if src.Enabled && src.BatchSize > 0 {
			return src.BatchSize
		}
	}
	return 100
}
