package tokenauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrEthical07/tokenauth/config"
	"github.com/MrEthical07/tokenauth/internal/audit"
	"github.com/MrEthical07/tokenauth/internal/rate"
	"github.com/MrEthical07/tokenauth/jwt"
	"github.com/MrEthical07/tokenauth/revocation"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by tokenauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config   Config
	provider config.Provider
	redis    redis.UniversalClient

	auditSink AuditSink
	store     revocation.Store
	logger    *slog.Logger
	now       func() time.Time

	built bool
}

// New returns a builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	b.provider = nil
	return b
}

// WithConfigProvider reads the configuration from p at Build. Key settings
// (algorithm, secret, key paths) are re-read from p every time the cached
// algorithm expires, so rotated secrets take effect without a restart.
func (b *Builder) WithConfigProvider(p config.Provider) *Builder {
	b.provider = p
	return b
}

// WithRedis shares the denylist and the rate-limit window through client.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithRevocationStore overrides the denylist backend.
func (b *Builder) WithRevocationStore(store revocation.Store) *Builder {
	b.store = store
	return b
}

// WithAuditSink sets the audit destination. The sink receives events only when auditing is enabled. The default sink logs
// each event through the engine logger.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger sets the structured logger. Default slog.Default().
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithClock injects the time source used for issuance, expiry, rate windows,
// and cache ageing.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// WithMetricsEnabled turns on the engine counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms turns on the validate latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build wires the engine. It returns an error when configuration validation or dependency wiring
// fails. A Builder can be built once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	now := b.now
	if now == nil {
		now = time.Now
	}

	cfg := b.config
	if b.provider != nil {
		cfg = ConfigFromProvider(b.provider, logger)
		cfg.Metrics.Enabled = cfg.Metrics.Enabled || b.config.Metrics.Enabled
		cfg.Metrics.EnableLatencyHistograms = cfg.Metrics.EnableLatencyHistograms || b.config.Metrics.EnableLatencyHistograms
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	codec := jwt.NewCodec(now)
	manager, err := jwt.NewManager(jwt.ManagerConfig{
		Settings: b.keySettings(cfg),
		Now:      now,
		Logger:   logger,
		Debug:    cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	store, err := b.buildStore(cfg, codec, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	var limiter rate.Limiter
	if cfg.RateLimit.Enabled {
		limiter, err = b.buildLimiter(cfg, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}

	e := &Engine{
		config:  cfg,
		logger:  logger,
		now:     now,
		manager: manager,
		codec:   codec,
		store:   store,
		limiter: limiter,
		ids:     audit.NewIDGenerator(),
		metrics: NewMetrics(cfg.Metrics),
	}

	if cfg.JWT.WatchKeyFiles {
		ctx, cancel := context.WithCancel(context.Background())
		if err := jwt.WatchKeyFiles(ctx, manager, cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath); err != nil {
			cancel()
			return nil, fmt.Errorf("%w: watch key files: %v", ErrConfiguration, err)
		}
		e.stopWatch = cancel
	}

	if cfg.Audit.Enabled {
		sink := b.auditSink
		if sink == nil {
			sink = audit.NewSlogSink(logger)
		}
		e.audit = audit.NewDispatcher(audit.Config{
			Enabled:    true,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
			Logger:     logger,
		}, sink)
	}

	b.built = true
	return e, nil
}

func (b *Builder) keySettings(cfg Config) func() jwt.Settings {
	if b.provider == nil {
		s := jwt.Settings{
			Algorithm:      cfg.JWT.Algorithm,
			Secret:         cfg.JWT.Secret,
			PrivateKeyPath: cfg.JWT.PrivateKeyPath,
			PublicKeyPath:  cfg.JWT.PublicKeyPath,
		}
		return func() jwt.Settings { return s }
	}

	p := b.provider
	return func() jwt.Settings {
		return jwt.Settings{
			Algorithm:      config.String(p, config.KeyAlgorithm, "HS256"),
			Secret:         config.String(p, config.KeySecret, ""),
			PrivateKeyPath: config.String(p, config.KeyPrivateKeyPath, ""),
			PublicKeyPath:  config.String(p, config.KeyPublicKeyPath, ""),
		}
	}
}

func (b *Builder) buildStore(cfg Config, codec *jwt.Codec, now func() time.Time) (revocation.Store, error) {
	if b.store != nil {
		return b.store, nil
	}
	if b.redis != nil {
		return revocation.NewRedis(b.redis, revocation.RedisConfig{
			Prefix:      cfg.Revocation.Prefix,
			FallbackTTL: cfg.JWT.RefreshTTL,
			Expiry:      expiryOf(codec),
			Now:         now,
		})
	}
	return revocation.NewMemory(expiryOf(codec), now)
}

func (b *Builder) buildLimiter(cfg Config, now func() time.Time) (rate.Limiter, error) {
	if b.redis != nil {
		return rate.NewRedisWindow(b.redis, cfg.Revocation.Prefix, cfg.RateLimit.RequestsPerMinute, now)
	}
	return rate.NewFixedWindow(cfg.RateLimit.RequestsPerMinute, now)
}
