package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter admits at most Max hits per key within Window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Config struct {
	Max    int
	Window time.Duration
}

// DefaultAuthConfig bounds login and register attempts per client IP.
func DefaultAuthConfig() Config {
	return Config{Max: 10, Window: time.Minute}
}

// RedisLimiter is a fixed-window counter shared by every server instance.
type RedisLimiter struct {
	rdb    *redis.Client
	prefix string
	cfg    Config
}

func NewRedisLimiter(rdb *redis.Client, prefix string, cfg Config) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, prefix: prefix, cfg: cfg}
}

func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if rl == nil || rl.rdb == nil {
		return false, fmt.Errorf("redis client not available")
	}

	k := fmt.Sprintf("rate:%s:%s", rl.prefix, key)
	count, err := rl.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	// first hit opens the window
	if count == 1 {
		if err := rl.rdb.Expire(ctx, k, rl.cfg.Window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(rl.cfg.Max), nil
}

// MemoryLimiter is the single-instance fallback used when Redis is not configured.
type MemoryLimiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
}

func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{cfg: cfg, now: time.Now, windows: make(map[string]*window)}
}

func (ml *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	now := ml.now()
	w, ok := ml.windows[key]
	if !ok || !now.Before(w.resetAt) {
		ml.sweep(now)
		w = &window{resetAt: now.Add(ml.cfg.Window)}
		ml.windows[key] = w
	}
	w.count++
	return w.count <= ml.cfg.Max, nil
}

// sweep drops expired windows. Caller holds mu.
func (ml *MemoryLimiter) sweep(now time.Time) {
	for k, w := range ml.windows {
		if !now.Before(w.resetAt) {
			delete(ml.windows, k)
		}
	}
}
