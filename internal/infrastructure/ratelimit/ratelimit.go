// Package ratelimit counts requests per key in Redis with a fixed window.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/AppHatchery-01/kirana-pos-easy/pkg/config"
)

// Window length of one counting period.
const Window = time.Minute

// Counter the two Redis commands the limiter needs; *redis.Client satisfies it.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// NewClient connects to Redis. It returns nil (limiting disabled) when no
// address is configured or the server does not answer a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) *redis.Client {
	if cfg.Addr == "" {
		log.Info().Msg("redis not configured, rate limiting disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unreachable, rate limiting disabled")
		_ = client.Close()
		return nil
	}
	return client
}

// Limiter allows at most Limit hits per key per Window.
type Limiter struct {
	counter Counter
	limit   int64
	prefix  string
}

// New returns a limiter; a nil counter means every request is allowed.
func New(counter Counter, limit int, prefix string) *Limiter {
	return &Limiter{counter: counter, limit: int64(limit), prefix: prefix}
}

// Allow increments the key's counter. The first hit of a window sets its expiry.
// Redis errors are returned together with allowed=true so callers fail open.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.counter == nil || l.limit <= 0 {
		return true, nil
	}
	k := fmt.Sprintf("%s:%s", l.prefix, key)
	count, err := l.counter.Incr(ctx, k).Result()
	if err != nil {
		return true, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := l.counter.Expire(ctx, k, Window).Err(); err != nil {
			return true, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return count <= l.limit, nil
}
