// Package main provides the entry point for the draw advisor service: it
// keeps draw history synchronized on a schedule, consumes the live results
// feed when enabled, and serves health and metrics endpoints.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-advisor/internal/config"
	"github.com/yourusername/draw-advisor/internal/database"
	"github.com/yourusername/draw-advisor/internal/datasource"
	"github.com/yourusername/draw-advisor/internal/health"
	"github.com/yourusername/draw-advisor/internal/logger"
	"github.com/yourusername/draw-advisor/internal/metrics"
	"github.com/yourusername/draw-advisor/internal/recommend"
	"github.com/yourusername/draw-advisor/internal/repository"
	"github.com/yourusername/draw-advisor/internal/scheduler"
	"github.com/yourusername/draw-advisor/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		log.Fatalf("Invalid environment configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Draw Advisor service starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()
	appLog.Info("Database connection established")

	// Initialize repositories
	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	// Build game profiles
	games, err := service.GameProfilesFromConfig(cfg.Games)
	if err != nil {
		appLog.WithError(err).Fatal("Invalid game configuration")
	}

	// Initialize data sources
	httpLogger := log.New(os.Stdout, "datasource: ", log.LstdFlags)
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), appLog)
	factory := datasource.NewFactory(cfg, httpLogger)

	sources, err := factory.NewDataSources(cfg.DataIngestion, httpClient)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize data sources")
	}

	// Initialize services
	audit := logger.NewAuditLogger(appLog)
	svcLogger := log.New(os.Stdout, "ingestion: ", log.LstdFlags)
	ingestionSvc := service.NewIngestionService(
		sources,
		repos.Draw,
		games,
		service.NewDrawValidator(svcLogger),
		service.NewDrawNormalizer(svcLogger),
		audit,
		svcLogger,
		batchSizeFor(cfg),
	)

	analysisSvc := service.NewAnalysisService(
		repos.Draw,
		repos.Unsuccessful,
		games,
		service.AnalysisConfigFromConfig(cfg.Analysis),
		time.Duration(cfg.Analysis.CacheTTLSeconds)*time.Second,
		audit,
		appLog,
	)

	// New draws invalidate cached statistics
	ingestionSvc.SetIngestedHook(func(gameName string, ingested int) {
		analysisSvc.InvalidateGame(gameName, "draws_ingested")
	})

	// Optional recommendation provider
	var recommender *recommend.CachedClient
	if cfg.Features.RecommendationsEnabled && cfg.Recommender.Enabled {
		recommender = recommend.NewCachedClient(&cfg.Recommender, appLog)
		defer recommender.Close()
		appLog.WithField("provider_url", cfg.Recommender.URL).Info("Recommendation provider initialized")
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		go func() {
			mux := http.NewServeMux()
			mux.Handle(cfg.Metrics.Path, metrics.Handler())
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			appLog.WithField("addr", addr).Info("Metrics server starting")
			if err := http.ListenAndServe(addr, mux); err != nil {
				appLog.WithError(err).Error("Metrics server error")
			}
		}()
	}

	// Health server
	healthCfg := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
		DB:          db,
	}
	if recommender != nil {
		healthCfg.Provider = recommender
	}
	healthServer := health.NewServer(healthCfg)
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Schedule synchronization jobs
	primarySource := sources[0].Name()
	gameNames := make([]string, len(games))
	for i, game := range games {
		gameNames[i] = game.Name
	}

	sched := scheduler.NewScheduler(ingestionSvc, log.New(os.Stdout, "scheduler: ", log.LstdFlags))
	if err := sched.ScheduleHistoricalSync(cfg.DataIngestion.Schedule.HistoricalSync, primarySource, gameNames); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule historical sync")
	}
	if err := sched.ScheduleLivePolling(cfg.DataIngestion.Schedule.LivePollingIntervalSeconds, primarySource); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule live polling")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	// Live results stream
	var stream *datasource.StreamClient
	if cfg.Features.LiveResultsEnabled {
		stream, err = factory.NewStreamClient(cfg.DataIngestion)
		if err != nil {
			appLog.WithError(err).Warn("Live results feed not configured; relying on polling")
		} else {
			stream.AddHandler(ingestionSvc.HandleStreamResult(ctx))
			if err := connectStream(ctx, stream, gameNames); err != nil {
				appLog.WithError(err).Warn("Failed to connect to live results feed; relying on polling")
			} else {
				appLog.Info("Live results feed connected")
			}
		}
	}

	healthServer.SetReady(true)
	appLog.WithFields(logrus.Fields{
		"games":           gameNames,
		"primary_source":  primarySource,
		"live_results":    cfg.Features.LiveResultsEnabled,
		"recommendations": recommender != nil,
		"next_sync":       sched.GetNextRun(),
	}).Info("Draw Advisor service running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthServer.SetReady(false)
	cancel()

	if stream != nil {
		if err := stream.Close(); err != nil {
			appLog.WithError(err).Error("Error closing results stream")
		}
	}
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error stopping scheduler")
	}

	appLog.Info("Draw Advisor service shut down successfully")
}

// connectStream connects, authenticates, and subscribes the live feed
func connectStream(ctx context.Context, stream *datasource.StreamClient, gameNames []string) error {
	if err := stream.Connect(ctx); err != nil {
		return err
	}
	if err := stream.Authenticate(ctx); err != nil {
		return err
	}
	return stream.SubscribeToGames(ctx, gameNames)
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
