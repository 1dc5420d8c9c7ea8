package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultPrefix namespaces denylist keys.
	DefaultPrefix = "tr"
	// DefaultFallbackTTL is applied to tokens whose exp cannot be decoded.
	DefaultFallbackTTL = 30 * 24 * time.Hour

	minEntryTTL = time.Second
)

// RedisConfig configures a [Redis] store.
type RedisConfig struct {
	Prefix      string
	FallbackTTL time.Duration
	Expiry      ExpiryFunc
	Now         func() time.Time
}

// Redis is a Store shared across processes. Entries are keyed by the SHA-256
// fingerprint of the token and expire with the token itself.
type Redis struct {
	redis       redis.UniversalClient
	prefix      string
	fallbackTTL time.Duration
	expiry      ExpiryFunc
	now         func() time.Time
}

// NewRedis returns a Redis-backed store.
func NewRedis(client redis.UniversalClient, cfg RedisConfig) (*Redis, error) {
	if client == nil {
		return nil, errors.New("revocation: redis client is required")
	}
	if cfg.Expiry == nil {
		return nil, errors.New("revocation: expiry func is required")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.FallbackTTL <= 0 {
		cfg.FallbackTTL = DefaultFallbackTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Redis{
		redis:       client,
		prefix:      cfg.Prefix,
		fallbackTTL: cfg.FallbackTTL,
		expiry:      cfg.Expiry,
		now:         cfg.Now,
	}, nil
}

// Key returns the Redis key holding token's entry.
func (r *Redis) Key(token string) string {
	sum := sha256.Sum256([]byte(normalize(token)))
	return r.prefix + ":revoked:" + hex.EncodeToString(sum[:])
}

// Add implements Store.
func (r *Redis) Add(ctx context.Context, token string) (bool, error) {
	token = normalize(token)
	if token == "" {
		return false, nil
	}

	added, err := r.redis.SetNX(ctx, r.Key(token), "1", r.ttlFor(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return added, nil
}

// Contains implements Store.
func (r *Redis) Contains(ctx context.Context, token string) (bool, error) {
	token = normalize(token)
	if token == "" {
		return false, nil
	}

	n, err := r.redis.Exists(ctx, r.Key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n > 0, nil
}

// Sweep implements Store. Entries expire through their TTLs, so nothing is
// scanned and zero is reported.
func (r *Redis) Sweep(context.Context) (int, error) {
	return 0, nil
}

// Len implements Store. It scans the key prefix and is meant for admin tooling,
// not request paths.
func (r *Redis) Len(ctx context.Context) (int, error) {
	pattern := r.prefix + ":revoked:*"
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := r.redis.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return total, nil
}

func (r *Redis) ttlFor(token string) time.Duration {
	exp, ok := r.expiry(token)
	if !ok {
		return r.fallbackTTL
	}
	// exp has second precision and the token stays valid through that second.
	ttl := exp.Sub(r.now()) + time.Second
	if ttl < minEntryTTL {
		return minEntryTTL
	}
	return ttl
}
