package throttle

import (
	"context"
	"fmt"

	"dsa_arena/internal/platform/config"
	"dsa_arena/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens a client for cfg and pings it.
func ConnectRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	log.Info("Connected to Redis", "addr", cfg.RedisAddr)
	return rdb, nil
}

func CloseRedis(rdb *redis.Client, log *logger.Logger) {
	if rdb == nil {
		return
	}
	if err := rdb.Close(); err != nil {
		log.Warn("Redis close failed", "error", err)
		return
	}
	log.Info("Redis connection closed")
}
