package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/config"
	"github.com/namefreezers/weather-lookup/internal/weather/openweathermap"
)

// BuildFetcher constructs the Fetcher used by every front-end:
// 1) the OpenWeatherMap client, configured once from cfg
// 2) optionally decorated with a Redis cache when REDIS_ADDR is set
func BuildFetcher(cfg *config.Config, logger *zap.Logger) (Fetcher, error) {
	owm, err := openweathermap.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("openweathermap client: %w", err)
	}

	if cfg.RedisAddr == "" {
		logger.Info("redis cache disabled")
		return owm, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("redis cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	return NewCachingFetcher(owm, rdb, cfg.CacheTTL, logger), nil
}
