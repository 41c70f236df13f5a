package recommend

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-advisor/internal/config"
	"github.com/yourusername/draw-advisor/internal/models"
)

// CachedClient wraps Client with a history-versioned response cache. A
// request is only answered from cache when the history hash matches, so a
// new ingested draw always forces a fresh provider call.
type CachedClient struct {
	client *Client
	cache  *RecommendationCache
	logger *logrus.Logger
}

// NewCachedClient creates a caching provider client from configuration.
func NewCachedClient(cfg *config.RecommenderConfig, logger *logrus.Logger) *CachedClient {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	return &CachedClient{
		client: NewClient(cfg, logger),
		cache:  NewRecommendationCache(ttl, cfg.CacheMaxSize),
		logger: logger,
	}
}

// GetRecommendations returns validated recommendations, from cache when the
// same game/history/count was answered within the TTL.
func (c *CachedClient) GetRecommendations(ctx context.Context, game *models.GameProfile, historyHash string, stats StatsSummary, count int) ([]Recommendation, error) {
	key := CacheKey{GameName: game.Name, HistoryHash: historyHash, Count: count}

	if cached := c.cache.Get(key); cached != nil {
		c.logger.WithFields(logrus.Fields{
			"game":  game.Name,
			"count": len(cached),
		}).Debug("Recommendation cache hit")
		return cached, nil
	}

	recs, err := c.client.GetRecommendations(ctx, game, stats, count)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, recs)
	return recs, nil
}

// HealthCheck verifies the underlying provider is reachable.
func (c *CachedClient) HealthCheck(ctx context.Context) error {
	return c.client.HealthCheck(ctx)
}

// Flush clears the response cache.
func (c *CachedClient) Flush() {
	c.cache.Flush()
}

// Close releases client resources.
func (c *CachedClient) Close() {
	c.client.Close()
}
