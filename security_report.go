package tokenauth

import (
	"context"
	"time"
)

// SecurityReport is a structured view of the engine's security posture.
type SecurityReport struct {
	SigningAlgorithm       string
	AlgorithmResolved      bool
	Issuer                 string
	Audience               string
	AccessTTL              time.Duration
	RefreshTTL             time.Duration
	IPBindingEnabled       bool
	RateLimitingActive     bool
	RequestsPerMinute      int
	RefreshRotationEnabled bool
	AuditEnabled           bool
	DebugLogging           bool
	KeyWatchEnabled        bool
	RevokedTokens          int
}

// SecurityReport resolves the algorithm and counts denylist entries; RevokedTokens
// is -1 when the store cannot be read.
func (e *Engine) SecurityReport(ctx context.Context) SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	report := SecurityReport{
		SigningAlgorithm:       e.config.JWT.Algorithm,
		Issuer:                 e.config.JWT.Issuer,
		Audience:               e.config.JWT.Audience,
		AccessTTL:              e.config.JWT.AccessTTL,
		RefreshTTL:             e.config.JWT.RefreshTTL,
		IPBindingEnabled:       e.config.IPBinding.Enabled,
		RateLimitingActive:     e.config.RateLimit.Enabled && e.limiter != nil,
		RequestsPerMinute:      e.config.RateLimit.RequestsPerMinute,
		RefreshRotationEnabled: e.config.Refresh.RotationEnabled,
		AuditEnabled:           e.audit != nil,
		DebugLogging:           e.config.Debug,
		KeyWatchEnabled:        e.stopWatch != nil,
		RevokedTokens:          -1,
	}
	if !report.RateLimitingActive {
		report.RequestsPerMinute = 0
	}

	if e.manager != nil {
		if alg, err := e.manager.Resolve(); err == nil {
			report.SigningAlgorithm = string(alg.Name())
			report.AlgorithmResolved = true
		}
	}
	if e.store != nil {
		if n, err := e.store.Len(ctx); err == nil {
			report.RevokedTokens = n
		}
	}
	return report
}
