package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request from key fits in the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ======================================================
// REDIS (shared across instances)
// ======================================================

// RedisLimiter is a fixed-window limiter backed by Redis, so every API
// instance draws from the same budget.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string) *RedisLimiter {
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return false, err
	}

	var count int64
	switch v := res.(type) {
	case int64:
		count = v
	case string:
		count, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unexpected redis script result type %T", res)
	}

	return count <= int64(l.limit), nil
}

// ======================================================
// MEMORY (single instance)
// ======================================================

// MemoryLimiter is a per-key token bucket refilled at limit per window.
// A bucket idle for a whole window is full again, so it is dropped and
// recreated on demand; the map only holds keys seen in the last window.
type MemoryLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*memoryEntry
	every     rate.Limit
	burst     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type memoryEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		limiters: make(map[string]*memoryEntry),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(now)
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &memoryEntry{lim: rate.NewLimiter(l.every, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1), nil
}

// sweep must be called with mu held.
func (l *MemoryLimiter) sweep(now time.Time) {
	for key, e := range l.limiters {
		if now.Sub(e.lastSeen) >= l.window {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

func (l *MemoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
