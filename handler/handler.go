package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cet3001/CreatorShelf/analytics"
	"github.com/cet3001/CreatorShelf/cache"
	"github.com/cet3001/CreatorShelf/config"
	"github.com/cet3001/CreatorShelf/model"
	"github.com/cet3001/CreatorShelf/store"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// linkKeyPrefix namespaces link records in the shared Redis instance.
const linkKeyPrefix = "link:"

// LinkHandler serves the Spark link surface: the public redirect, link
// creation, QR rendering, and the owning app's analytics query. Redis and
// the in-process cache are optional; Postgres is the source of truth.
type LinkHandler struct {
	store     *store.Store
	redis     *redis.Client
	cache     *cache.Cache
	analytics *analytics.Service
	config    config.Config
	baseURL   string
}

// NewLinkHandler creates a handler with its dependencies injected
func NewLinkHandler(s *store.Store, redisClient *redis.Client, cacheClient *cache.Cache, cfg config.Config) *LinkHandler {
	// Use configured base_url if provided, otherwise construct from scheme, IP, and port
	baseURL := cfg.WebServer.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s://%s:%s", cfg.WebServer.Scheme, cfg.WebServer.IP, cfg.WebServer.Port)
	}

	var svc *analytics.Service
	if s != nil {
		svc = analytics.NewService(s, cfg.Analytics.RecentWindow)
	}

	return &LinkHandler{
		store:     s,
		redis:     redisClient,
		cache:     cacheClient,
		analytics: svc,
		config:    cfg,
		baseURL:   baseURL,
	}
}

// cachedLink tries L1 (ristretto) then L2 (Redis) for a resolved active
// link record.
func (h *LinkHandler) cachedLink(ctx context.Context, shortCode string) (*model.Link, bool) {
	if h.config.Cache.Enabled && h.cache != nil {
		if cachedData, found := h.cache.Get(linkKeyPrefix + shortCode); found {
			if link, ok := cachedData.(model.Link); ok {
				log.Debug().Str("short_code", shortCode).Msg("Link cache hit (L1)")
				return &link, true
			}
		}
	}

	if h.redis != nil {
		data, err := h.redis.Get(ctx, linkKeyPrefix+shortCode).Bytes()
		if err == nil {
			var link model.Link
			if err := json.Unmarshal(data, &link); err == nil {
				log.Debug().Str("short_code", shortCode).Msg("Link cache hit (L2)")
				if h.config.Cache.Enabled && h.cache != nil {
					h.cache.Set(linkKeyPrefix+shortCode, link, 1024)
				}
				return &link, true
			}
		} else if err != redis.Nil {
			log.Warn().Err(err).Str("short_code", shortCode).Msg("Redis link lookup failed")
		}
	}

	return nil, false
}

// cacheLink populates both cache tiers after a store read. Failures only
// cost future cache hits, so they are logged and ignored.
func (h *LinkHandler) cacheLink(ctx context.Context, link *model.Link) {
	if h.config.Cache.Enabled && h.cache != nil {
		h.cache.Set(linkKeyPrefix+link.ShortCode, *link, 1024)
	}

	if h.redis != nil {
		data, err := json.Marshal(link)
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal link for cache")
			return
		}
		ttl := time.Duration(h.config.Cache.TTLSeconds) * time.Second
		if err := h.redis.Set(ctx, linkKeyPrefix+link.ShortCode, data, ttl).Err(); err != nil {
			log.Warn().Err(err).Str("short_code", link.ShortCode).Msg("Failed to cache link in Redis")
		}
	}
}

func (h *LinkHandler) operationTimeout() time.Duration {
	return time.Duration(h.config.Database.OperationTimeout) * time.Second
}
