package weather

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/weather/types"
)

// CachingFetcher decorates another Fetcher with a Redis cache.
// Only successful lookups are cached; Redis failures degrade to pass-through.
type CachingFetcher struct {
	inner  Fetcher
	redis  redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachingFetcher returns a Fetcher that first looks in Redis,
// falling back to inner on cache-miss.
func NewCachingFetcher(inner Fetcher, rdb redis.Cmdable, ttl time.Duration, logger *zap.Logger) *CachingFetcher {
	return &CachingFetcher{inner: inner, redis: rdb, ttl: ttl, logger: logger}
}

// CacheKey normalises a city name into its cache key.
func CacheKey(city string) string {
	return "weather:" + strings.ToLower(strings.TrimSpace(city))
}

func (c *CachingFetcher) FetchCurrent(ctx context.Context, city string) (types.Weather, error) {
	key := CacheKey(city)

	// 1) Try cache
	raw, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var w types.Weather
		if uerr := json.Unmarshal([]byte(raw), &w); uerr == nil {
			c.logger.Debug("cache hit", zap.String("city", city))
			return w, nil
		} else {
			c.logger.Warn("cache unmarshal failed", zap.String("key", key), zap.Error(uerr))
		}
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("redis GET failed", zap.Error(err))
	}

	// 2) Cache-miss -> delegate to inner
	w, err := c.inner.FetchCurrent(ctx, city)
	if err != nil {
		return w, err
	}

	// 3) Store in cache
	blob, merr := json.Marshal(w)
	if merr != nil {
		c.logger.Warn("json marshal failed", zap.Error(merr))
	} else if serr := c.redis.Set(ctx, key, blob, c.ttl).Err(); serr != nil {
		c.logger.Warn("redis SET failed", zap.Error(serr))
	}

	return w, nil
}
