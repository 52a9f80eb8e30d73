package cache

import (
	"time"

	"github.com/cet3001/CreatorShelf/config"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
)

// Cache is the in-process (L1) cache for resolved link records. It sits in
// front of Redis and Postgres on the redirect hot path; entries expire on a
// TTL so deactivations and expiry edits converge within a bounded window.
type Cache struct {
	client *ristretto.Cache
	ttl    time.Duration
}

// New creates a cache instance with the given configuration
func New(cfg config.CacheConfig) (*Cache, error) {
	maxCost := int64(cfg.MaxSizeMB) * 1024 * 1024

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CounterSize), // keys tracked for admission frequency
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("max_size_mb", cfg.MaxSizeMB).
		Int("ttl_seconds", cfg.TTLSeconds).
		Msg("Link cache initialized")

	return &Cache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}, nil
}

// Get retrieves a value from the cache
func (c *Cache) Get(key string) (interface{}, bool) {
	if c.client == nil {
		return nil, false
	}
	return c.client.Get(key)
}

// Set stores a value with the configured TTL. cost approximates the memory
// footprint of the entry.
func (c *Cache) Set(key string, value interface{}, cost int64) bool {
	if c.client == nil {
		return false
	}
	return c.client.SetWithTTL(key, value, cost, c.ttl)
}

// Delete removes a key from the cache
func (c *Cache) Delete(key string) {
	if c.client == nil {
		return
	}
	c.client.Del(key)
}

// Close cleanly shuts down the cache
func (c *Cache) Close() {
	if c.client != nil {
		c.client.Close()
		log.Info().Msg("Link cache closed")
	}
}

// MetricsSnapshot is a point-in-time view of cache performance
type MetricsSnapshot struct {
	Hits        uint64  `json:"hits"`
	Misses      uint64  `json:"misses"`
	KeysAdded   uint64  `json:"keys_added"`
	KeysEvicted uint64  `json:"keys_evicted"`
	HitRatio    float64 `json:"hit_ratio"`
	TTLSeconds  int     `json:"ttl_seconds"`
}

// GetMetricsSnapshot returns current cache metrics as a snapshot
func (c *Cache) GetMetricsSnapshot() MetricsSnapshot {
	if c.client == nil || c.client.Metrics == nil {
		return MetricsSnapshot{TTLSeconds: int(c.ttl.Seconds())}
	}

	m := c.client.Metrics
	hits := m.Hits()
	misses := m.Misses()
	total := hits + misses

	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return MetricsSnapshot{
		Hits:        hits,
		Misses:      misses,
		KeysAdded:   m.KeysAdded(),
		KeysEvicted: m.KeysEvicted(),
		HitRatio:    hitRatio,
		TTLSeconds:  int(c.ttl.Seconds()),
	}
}
