package redis

import (
	"context"

	"card-casino/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewClient creates a Redis client. A failed ping is logged but not
// fatal; commands return errors until the server is reachable and the
// affected endpoints degrade to a storage error.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) *goredis.Client {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().
			Err(err).
			Str("addr", cfg.Addr()).
			Msg("redis unreachable, continuing in degraded mode")
	} else {
		log.Info().
			Str("addr", cfg.Addr()).
			Int("db", cfg.DB).
			Msg("Redis connection established")
	}

	return client
}
