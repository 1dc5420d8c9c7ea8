package rate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Window is the length of one counting window.
const Window = time.Minute

// Limiter admits or rejects one request.
type Limiter interface {
	Admit(ctx context.Context) error
}

// FixedWindow is an in-process fixed-window counter.
type FixedWindow struct {
	limit int
	now   func() time.Time

	mu          sync.Mutex
	count       int
	windowStart time.Time
}

// NewFixedWindow allows limit requests per window. A nil clock uses time.Now.
func NewFixedWindow(limit int, now func() time.Time) (*FixedWindow, error) {
	if limit <= 0 {
		return nil, errors.New("rate: limit must be > 0")
	}
	if now == nil {
		now = time.Now
	}
	return &FixedWindow{limit: limit, now: now, windowStart: now()}, nil
}

// Admit implements Limiter.
func (l *FixedWindow) Admit(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) >= Window {
		l.count = 0
		l.windowStart = now
	}

	l.count++
	if l.count > l.limit {
		return ErrRateLimited
	}
	return nil
}

// Count returns the number of requests seen in the current window.
func (l *FixedWindow) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// RedisWindow is a fixed-window counter shared through Redis.
type RedisWindow struct {
	redis  redis.UniversalClient
	limit  int
	prefix string
	now    func() time.Time
}

// NewRedisWindow allows limit requests per window across every process sharing
// client and prefix.
func NewRedisWindow(client redis.UniversalClient, prefix string, limit int, now func() time.Time) (*RedisWindow, error) {
	if client == nil {
		return nil, errors.New("rate: redis client is required")
	}
	if limit <= 0 {
		return nil, errors.New("rate: limit must be > 0")
	}
	if prefix == "" {
		prefix = "tr"
	}
	if now == nil {
		now = time.Now
	}
	return &RedisWindow{redis: client, limit: limit, prefix: prefix, now: now}, nil
}

// Admit implements Limiter. Redis failures are returned wrapped in
// ErrUnavailable so callers fail closed.
func (l *RedisWindow) Admit(ctx context.Context) error {
	count, err := l.incrementWithTTL(ctx, l.key(l.now()), Window)
	if err != nil {
		return err
	}
	if count > int64(l.limit) {
		return ErrRateLimited
	}
	return nil
}

func (l *RedisWindow) key(now time.Time) string {
	return l.prefix + ":rl:" + strconv.FormatInt(now.Unix()/int64(Window/time.Second), 10)
}

func (l *RedisWindow) incrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	return count, nil
}
