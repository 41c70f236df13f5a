package recommend

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// CacheKey identifies one recommendation request. HistoryHash versions the
// draw history and unsuccessful set, so stale statistics never answer a
// fresh request.
type CacheKey struct {
	GameName    string
	HistoryHash string
	Count       int
}

// String returns the string form used by the underlying cache.
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%d", k.GameName, k.HistoryHash, k.Count)
}

// RecommendationCache provides in-memory caching of validated provider
// responses.
type RecommendationCache struct {
	cache   *cache.Cache
	ttl     time.Duration
	maxSize int
	mu      sync.RWMutex
}

// NewRecommendationCache creates a cache with the given TTL and size bound.
func NewRecommendationCache(ttl time.Duration, maxSize int) *RecommendationCache {
	return &RecommendationCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves cached recommendations, or nil on a miss.
func (rc *RecommendationCache) Get(key CacheKey) []Recommendation {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	if result, found := rc.cache.Get(key.String()); found {
		RecommendationCacheHits.Inc()
		if recs, ok := result.([]Recommendation); ok {
			return recs
		}
	}
	RecommendationCacheMisses.Inc()
	return nil
}

// Set stores validated recommendations.
func (rc *RecommendationCache) Set(key CacheKey, recs []Recommendation) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.cache.ItemCount() >= rc.maxSize {
		rc.cache.DeleteExpired()
	}
	rc.cache.Set(key.String(), recs, rc.ttl)
}

// Flush removes every cached entry.
func (rc *RecommendationCache) Flush() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cache.Flush()
}

// ItemCount returns the number of cached entries including expired ones not
// yet purged.
func (rc *RecommendationCache) ItemCount() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.cache.ItemCount()
}
