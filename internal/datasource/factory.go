package datasource

import (
	"fmt"
	"log"

	"github.com/yourusername/draw-advisor/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// National lottery results API source type
	NationalLotterySourceType SourceType = "national_lottery"
	// Historical archive source type
	ArchiveSourceType SourceType = "archive"
)

// Factory creates DataSource implementations based on configuration
type Factory struct {
	logger *log.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *log.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewDataSource creates a new DataSource based on the provided configuration
func (f *Factory) NewDataSource(cfg config.DataSourceConfig, httpClient *RateLimitedHTTPClient) (DataSource, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("HTTP client is required")
	}

	switch cfg.Name {
	case "national_lottery":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("national lottery API key is required")
		}
		return NewNationalLotteryClient(httpClient, cfg.BaseURL, cfg.APIKey, cfg.Enabled, f.logger), nil

	case "archive":
		return NewArchiveClient(httpClient, cfg.BaseURL, cfg.APIKey, cfg.Enabled, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.Name)
	}
}

// NewDataSources creates all enabled data sources from configuration
func (f *Factory) NewDataSources(dataCfg config.DataIngestionConfig, httpClient *RateLimitedHTTPClient) ([]DataSource, error) {
	var sources []DataSource

	for _, srcCfg := range dataCfg.Sources {
		if !srcCfg.Enabled {
			if f.logger != nil {
				f.logger.Printf("Skipping disabled data source: %s", srcCfg.Name)
			}
			continue
		}

		source, err := f.NewDataSource(srcCfg, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create data source %s: %w", srcCfg.Name, err)
		}

		sources = append(sources, source)
		if f.logger != nil {
			f.logger.Printf("Created data source: %s", srcCfg.Name)
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no enabled data sources configured")
	}

	return sources, nil
}

// NewStreamClient creates the live results stream client for the first
// configured source that carries a stream URL.
func (f *Factory) NewStreamClient(dataCfg config.DataIngestionConfig) (*StreamClient, error) {
	for _, srcCfg := range dataCfg.Sources {
		if !srcCfg.Enabled || srcCfg.StreamURL == "" {
			continue
		}
		return NewStreamClient(srcCfg.StreamURL, srcCfg.APIKey, f.logger), nil
	}
	return nil, fmt.Errorf("no enabled data source with a stream URL configured")
}
