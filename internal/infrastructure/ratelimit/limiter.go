// Package ratelimit bounds request rates per client key, backed by redis when
// configured and by in-process token buckets otherwise.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether a request identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LocalLimiter keeps one token bucket per key in memory
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	maxKeys  int
}

// NewLocalLimiter creates a LocalLimiter refilling requestsPerSecond tokens up to burst
func NewLocalLimiter(requestsPerSecond, burst int) *LocalLimiter {
	return &LocalLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		maxKeys:  10000,
	}
}

func (l *LocalLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		// reset rather than grow without bound
		if len(l.limiters) >= l.maxKeys {
			l.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow(), nil
}

// RedisLimiter counts requests per key in fixed redis windows shared by all instances
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

// NewRedisLimiter allows limit requests per key in each window
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: int64(limit), window: window, prefix: "carelink:ratelimit:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, bucket)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, 2*l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to count request in redis: %w", err)
	}
	return incr.Val() <= l.limit, nil
}

// NewLimiter builds the limiter for settings. When redis is enabled but unreachable
// it falls back to the in-process limiter. The returned close function releases
// the redis client.
func NewLimiter(ctx context.Context, redisSettings *config.RedisSettings, settings *config.RateLimitSettings, logger logger.Logger) (Limiter, func() error) {
	local := NewLocalLimiter(settings.RequestsPerSecond, settings.Burst)
	noop := func() error { return nil }

	if !redisSettings.Enabled {
		return local, noop
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisSettings.Addr,
		Password: redisSettings.Password,
		DB:       redisSettings.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, using in-process rate limiter", "addr", redisSettings.Addr, "error", err)
		_ = client.Close()
		return local, noop
	}

	limit := settings.Burst
	if settings.RequestsPerSecond > limit {
		limit = settings.RequestsPerSecond
	}
	logger.Info("Using redis rate limiter", "addr", redisSettings.Addr, "limit_per_second", limit)
	return NewRedisLimiter(client, limit, time.Second), client.Close
}
