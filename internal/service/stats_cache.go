package service

import (
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// StatsCache memoizes computed game statistics between draws. Entries expire
// on TTL and are invalidated eagerly when new draws land, so a stale window
// only ever shows between ingestion and the invalidation hook firing.
type StatsCache struct {
	cache *gocache.Cache
}

// NewStatsCache creates a stats cache with the given TTL
func NewStatsCache(ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatsCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// statsKey builds the cache key for a game and variant
func statsKey(gameName, variant string) string {
	return fmt.Sprintf("%s|%s", gameName, variant)
}

// Get returns the cached stats for a game variant, or nil on miss
func (c *StatsCache) Get(gameName, variant string) *GameStats {
	if entry, found := c.cache.Get(statsKey(gameName, variant)); found {
		if stats, ok := entry.(*GameStats); ok {
			return stats
		}
	}
	return nil
}

// Set stores computed stats for a game variant
func (c *StatsCache) Set(gameName, variant string, stats *GameStats) {
	c.cache.Set(statsKey(gameName, variant), stats, gocache.DefaultExpiration)
}

// Invalidate drops all cached entries for a game across its variants and
// returns the number of entries dropped
func (c *StatsCache) Invalidate(gameName string) int {
	prefix := gameName + "|"
	dropped := 0
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
			dropped++
		}
	}
	return dropped
}

// Flush drops every cached entry
func (c *StatsCache) Flush() {
	c.cache.Flush()
}

// ItemCount returns the number of live cache entries
func (c *StatsCache) ItemCount() int {
	return c.cache.ItemCount()
}
