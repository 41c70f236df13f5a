// Package config provides configuration management for the Draw Advisor application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database" validate:"required"`
	Games         []GameConfig        `mapstructure:"games" validate:"required,min=1,dive"`
	Analysis      AnalysisConfig      `mapstructure:"analysis" validate:"required"`
	Generator     GeneratorConfig     `mapstructure:"generator" validate:"required"`
	Recommender   RecommenderConfig   `mapstructure:"recommender" validate:"required"`
	DataIngestion DataIngestionConfig `mapstructure:"data_ingestion" validate:"required"`
	Metrics       MetricsConfig       `mapstructure:"metrics" validate:"required"`
	Features      FeaturesConfig      `mapstructure:"features" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// GameConfig describes one pick-K-of-N draw game, its named variants, and an
// optional supplementary pool.
type GameConfig struct {
	Name               string   `mapstructure:"name" validate:"required"`
	NumberRange        int      `mapstructure:"number_range" validate:"required,gt=0"`
	PickCount          int      `mapstructure:"pick_count" validate:"required,gt=0"`
	Variants           []string `mapstructure:"variants" validate:"omitempty,unique"`
	SupplementaryCount int      `mapstructure:"supplementary_count" validate:"gte=0"`
	SupplementaryRange int      `mapstructure:"supplementary_range" validate:"gte=0"`
}

// AnalysisConfig represents the analyzer policy constants. The values are
// carried from long-standing practice without a documented derivation, which
// is why they live in configuration rather than code.
type AnalysisConfig struct {
	RecentWindow       int     `mapstructure:"recent_window" validate:"required,gt=0"`
	TopPoolSize        int     `mapstructure:"top_pool_size" validate:"required,gt=0"`
	MinPairOccurrences int     `mapstructure:"min_pair_occurrences" validate:"required,gt=0"`
	PairExpectedFloor  float64 `mapstructure:"pair_expected_floor" validate:"required,gt=0"`
	TopPairWindow      int     `mapstructure:"top_pair_window" validate:"required,gt=0"`
	CacheTTLSeconds    int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// GeneratorConfig represents the combination generation policy
type GeneratorConfig struct {
	Strategy            string `mapstructure:"strategy" validate:"required,strategy"`
	PoolSize            int    `mapstructure:"pool_size" validate:"required,gt=0"`
	MaxAttempts         int    `mapstructure:"max_attempts" validate:"required,gt=0"`
	MaxConsecutiveRuns  int    `mapstructure:"max_consecutive_runs" validate:"gte=0"`
	UnluckyPairMinCount int    `mapstructure:"unlucky_pair_min_count" validate:"required,gt=0"`
	AttachScores        bool   `mapstructure:"attach_scores"`
}

// RecommenderConfig represents the external recommendation provider configuration
type RecommenderConfig struct {
	Enabled               bool   `mapstructure:"enabled"`
	URL                   string `mapstructure:"url" validate:"required,url"`
	APIKey                string `mapstructure:"api_key"`
	Model                 string `mapstructure:"model" validate:"required"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	RetryAttempts         int    `mapstructure:"retry_attempts" validate:"gte=0"`
	CacheTTLSeconds       int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize          int    `mapstructure:"cache_max_size" validate:"required,gt=0"`
}

// DataIngestionConfig represents data ingestion configuration
type DataIngestionConfig struct {
	Sources  []DataSourceConfig `mapstructure:"sources" validate:"required,min=1"`
	Schedule ScheduleConfig     `mapstructure:"schedule" validate:"required"`
}

// DataSourceConfig represents a single draw-results source configuration
type DataSourceConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Enabled   bool   `mapstructure:"enabled"`
	BaseURL   string `mapstructure:"base_url"`
	StreamURL string `mapstructure:"stream_url"`
	BatchSize int    `mapstructure:"batch_size" validate:"omitempty,gt=0"`
	APIKey    string `mapstructure:"api_key"`
}

// ScheduleConfig represents draw-history synchronization scheduling
type ScheduleConfig struct {
	HistoricalSync             string `mapstructure:"historical_sync" validate:"required"`
	LivePollingIntervalSeconds int    `mapstructure:"live_polling_interval_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	RecommendationsEnabled bool `mapstructure:"recommendations_enabled"`
	LiveResultsEnabled     bool `mapstructure:"live_results_enabled"`
	EqualChanceReportShown bool `mapstructure:"equal_chance_report_shown"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GameByName returns the configured game with the given name
func (c *Config) GameByName(name string) (*GameConfig, error) {
	for i := range c.Games {
		if c.Games[i].Name == name {
			return &c.Games[i], nil
		}
	}
	return nil, fmt.Errorf("game not configured: %s", name)
}
