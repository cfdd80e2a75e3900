package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter backs the fixed-window counter with a shared Redis key
// so the limit holds across restarts and horizontally scaled instances.
type RedisLimiter struct {
	client *redis.Client
	opts   Options
	prefix string
}

// NewRedisLimiter constructs a Redis-backed limiter.
func NewRedisLimiter(client *redis.Client, opts Options) *RedisLimiter {
	return &RedisLimiter{client: client, opts: opts.withDefaults(), prefix: "ratelimit:"}
}

// Allow implements Limiter. The counter and its expiry are set in one
// pipeline; the NX expire runs on every hit, so a counter left without
// a TTL by an interrupted earlier call still times out.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.prefix + key

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.opts.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit incr %s: %w", key, err)
	}
	return incr.Val() <= int64(l.opts.Max), nil
}
