package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/trafficai/backend/internal/config"
)

// InitRedis initializes the Redis client. A failed connection is not fatal:
// the application runs without caching and a nil client is returned.
func InitRedis(cfg *config.Config, logger *zap.Logger) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	redisAddr := cfg.GetRedisAddr()
	logger.Info("connecting to Redis", zap.String("addr", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		logger.Warn("failed to connect to Redis, continuing without caching", zap.Error(err))
		return nil
	}

	logger.Info("connected to Redis")
	return client
}
