package tokenauth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrEthical07/tokenauth/config"
)

// Config defines a public type used by tokenauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	JWT        JWTConfig
	IPBinding  IPBindingConfig
	RateLimit  RateLimitConfig
	Refresh    RefreshConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
	Revocation RevocationConfig
	Debug      bool
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig holds the signing settings and token lifetimes.
type JWTConfig struct {
	// Algorithm is one of HS256, HS384, HS512, RS256, RS384, RS512. Unsupported
	// names fall back to HS256 with a warning.
	Algorithm      string
	Secret         string
	PrivateKeyPath string
	PublicKeyPath  string
	Issuer         string
	Audience       string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	// WatchKeyFiles invalidates the algorithm cache when the RSA key files change.
	WatchKeyFiles bool
}

/*
====================================
POLICY CONFIG
====================================
*/

// IPBindingConfig controls the client-IP check in Validate.
type IPBindingConfig struct {
	Enabled bool
}

// RateLimitConfig controls the fixed one-minute window applied to every operation.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
}

// RefreshConfig controls refresh token rotation.
type RefreshConfig struct {
	// RotationEnabled revokes each refresh token when it is exchanged, so a
	// token refreshes at most once.
	RotationEnabled bool
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig controls audit event dispatch.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls in-process counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// RevocationConfig controls the Redis-backed denylist and rate-limit key namespace.
type RevocationConfig struct {
	Prefix string
}

/*
====================================
DEFAULTS
====================================
*/

// DefaultConfig returns the configuration used when no provider sets a value.
// It carries no secret; one must be supplied before tokens can be issued.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			Algorithm:  "HS256",
			Issuer:     "tokenauth",
			Audience:   "tokenauth-app",
			AccessTTL:  60 * time.Minute,
			RefreshTTL: 30 * 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Revocation: RevocationConfig{
			Prefix: "tr",
		},
	}
}

// ConfigFromProvider reads every recognized key from p, using the defaults of
// DefaultConfig for absent keys. Malformed integers are logged and replaced by
// their defaults.
func ConfigFromProvider(p config.Provider, logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()

	accessMinutes := config.Int(p, config.KeyAccessExpireMinutes, int(def.JWT.AccessTTL/time.Minute), logger)
	refreshDays := config.Int(p, config.KeyRefreshExpireDays, int(def.JWT.RefreshTTL/(24*time.Hour)), logger)

	return Config{
		JWT: JWTConfig{
			Algorithm:      config.String(p, config.KeyAlgorithm, def.JWT.Algorithm),
			Secret:         config.String(p, config.KeySecret, ""),
			PrivateKeyPath: config.String(p, config.KeyPrivateKeyPath, ""),
			PublicKeyPath:  config.String(p, config.KeyPublicKeyPath, ""),
			Issuer:         config.String(p, config.KeyIssuer, def.JWT.Issuer),
			Audience:       config.String(p, config.KeyAudience, def.JWT.Audience),
			AccessTTL:      time.Duration(accessMinutes) * time.Minute,
			RefreshTTL:     time.Duration(refreshDays) * 24 * time.Hour,
			WatchKeyFiles:  config.Bool(p, config.KeyKeysWatchEnabled, false),
		},
		IPBinding: IPBindingConfig{
			Enabled: config.Bool(p, config.KeyIPValidationEnabled, false),
		},
		RateLimit: RateLimitConfig{
			Enabled:           config.Bool(p, config.KeyRateLimitEnabled, false),
			RequestsPerMinute: config.Int(p, config.KeyRateLimitPerMinute, def.RateLimit.RequestsPerMinute, logger),
		},
		Refresh: RefreshConfig{
			RotationEnabled: config.Bool(p, config.KeyRefreshRotation, false),
		},
		Audit: AuditConfig{
			Enabled:    config.Bool(p, config.KeyAuditEnabled, def.Audit.Enabled),
			BufferSize: config.Int(p, config.KeyAuditBufferSize, def.Audit.BufferSize, logger),
			DropIfFull: config.Bool(p, config.KeyAuditDropIfFull, def.Audit.DropIfFull),
		},
		Metrics: MetricsConfig{
			Enabled:                 config.Bool(p, config.KeyMetricsEnabled, false),
			EnableLatencyHistograms: config.Bool(p, config.KeyMetricsLatencyEnabled, false),
		},
		Revocation: RevocationConfig{
			Prefix: config.String(p, config.KeyRevocationPrefix, def.Revocation.Prefix),
		},
		Debug: config.Bool(p, config.KeyDebugLogging, false),
	}
}

/*
====================================
VALIDATION
====================================
*/

// Validate checks structural settings. Key material is checked lazily when the
// algorithm is first resolved.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

func (c *Config) validate() error {
	// JWT
	if c.JWT.AccessTTL < time.Second {
		return errors.New("JWT AccessTTL must be >= 1s")
	}
	if c.JWT.RefreshTTL < time.Second {
		return errors.New("JWT RefreshTTL must be >= 1s")
	}
	if c.JWT.Issuer == "" {
		return errors.New("JWT Issuer must not be empty")
	}
	if c.JWT.Audience == "" {
		return errors.New("JWT Audience must not be empty")
	}

	// Rate limiting
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return errors.New("RateLimit RequestsPerMinute must be > 0 when enabled")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when enabled")
	}

	if c.Revocation.Prefix == "" {
		return errors.New("Revocation Prefix must not be empty")
	}
	return nil
}
