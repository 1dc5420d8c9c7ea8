package tokenauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MrEthical07/tokenauth/internal/audit"
	"github.com/MrEthical07/tokenauth/internal/rate"
	"github.com/MrEthical07/tokenauth/jwt"
	"github.com/MrEthical07/tokenauth/revocation"
)

// Engine defines a public type used by tokenauth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config  Config
	logger  *slog.Logger
	now     func() time.Time
	manager *jwt.Manager
	codec   *jwt.Codec
	store   revocation.Store
	limiter rate.Limiter
	audit   *audit.Dispatcher
	ids     *audit.IDGenerator
	metrics *Metrics

	stopWatch context.CancelFunc
}

// Close stops the key watcher and drains pending audit events.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.stopWatch != nil {
		e.stopWatch()
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// Config returns a copy of the engine configuration with the secret redacted.
func (e *Engine) Config() Config {
	if e == nil {
		return Config{}
	}
	cfg := e.config
	if cfg.JWT.Secret != "" {
		cfg.JWT.Secret = "[redacted]"
	}
	return cfg
}

// AuditDropped reports how many audit events were dropped on a full buffer.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns the engine counters. It is empty when metrics are
// disabled.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return emptySnapshot()
	}
	return e.metrics.Snapshot()
}

// InvalidateKeys drops the cached signing algorithm so the next operation
// re-reads key settings.
func (e *Engine) InvalidateKeys() {
	if e == nil || e.manager == nil {
		return
	}
	e.manager.Invalidate()
}

func (e *Engine) ready() error {
	if e == nil || e.manager == nil || e.codec == nil || e.store == nil {
		return ErrEngineNotReady
	}
	return nil
}

// admit consumes one rate-limiter slot for a public operation.
func (e *Engine) admit(ctx context.Context) error {
	if e.limiter == nil {
		return nil
	}
	err := e.limiter.Admit(ctx)
	if err == nil {
		return nil
	}
	e.metrics.Inc(MetricRateLimitHit)
	if errors.Is(err, rate.ErrRateLimited) {
		e.logger.Warn("rate limit exceeded")
		return ErrRateLimitExceeded
	}
	// A limiter that cannot count denies the request.
	e.logger.Warn("rate limiter unavailable, denying request", slog.Any("error", err))
	return fmt.Errorf("%w: %v", ErrRateLimitExceeded, err)
}

func (e *Engine) algorithm() (*jwt.Algorithm, error) {
	alg, err := e.manager.Resolve()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return alg, nil
}

func (e *Engine) debug(msg string, attrs ...slog.Attr) {
	if !e.config.Debug {
		return
	}
	e.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}

// expiryOf adapts the codec to revocation.ExpiryFunc.
func expiryOf(codec *jwt.Codec) revocation.ExpiryFunc {
	return func(token string) (time.Time, bool) {
		claims, err := codec.Decode(strings.TrimSpace(token))
		if err != nil || claims.ExpiresAt == nil {
			return time.Time{}, false
		}
		return claims.ExpiresAt.Time, true
	}
}
