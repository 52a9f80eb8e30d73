package redis

import (
	"context"

	"github.com/cet3001/CreatorShelf/config"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// NewClient connects the Redis client used as the L2 link-record cache on
// the redirect hot path. Postgres stays the source of truth, so a missing
// Redis is an error the caller may choose to run without.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	log.Info().Str("address", cfg.Address).Msg("Connected to Redis")
	return rdb, nil
}
