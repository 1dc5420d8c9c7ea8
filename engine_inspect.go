package tokenauth

import (
	"fmt"
	"strings"
	"time"
)

// SubjectOf returns the userId claim of token without verifying it, or "" when
// the token cannot be decoded. Use it for display and audit only.
func (e *Engine) SubjectOf(token string) string {
	if e == nil || e.codec == nil {
		return ""
	}
	claims, err := e.codec.Decode(strings.TrimSpace(token))
	if err != nil {
		return ""
	}
	return claims.Principal()
}

// IsExpired reports whether token's exp claim has passed. Undecodable tokens
// count as expired; a decodable token without exp does not.
func (e *Engine) IsExpired(token string) bool {
	if e == nil || e.codec == nil {
		return true
	}
	claims, err := e.codec.Decode(strings.TrimSpace(token))
	if err != nil {
		return true
	}
	return claims.ExpiredAt(e.now())
}

// RemainingSeconds returns the whole seconds until token expires. It is -1 when
// the token cannot be decoded or has no exp, and never below -1.
func (e *Engine) RemainingSeconds(token string) int64 {
	if e == nil || e.codec == nil {
		return -1
	}
	claims, err := e.codec.Decode(strings.TrimSpace(token))
	if err != nil || claims.ExpiresAt == nil {
		return -1
	}
	remaining := int64(claims.ExpiresAt.Sub(e.now().Truncate(time.Second)).Seconds())
	if remaining < -1 {
		return -1
	}
	return remaining
}

// AlgorithmInfo describes the active signing setup. The algorithm shown is the
// resolved one, which differs from the configured name after an HS256 fallback.
func (e *Engine) AlgorithmInfo() string {
	if e == nil {
		return ""
	}
	name := e.config.JWT.Algorithm
	if alg, err := e.manager.Resolve(); err == nil {
		name = string(alg.Name())
	}
	return fmt.Sprintf("Algorithm: %s, Issuer: %s, Audience: %s", name, e.config.JWT.Issuer, e.config.JWT.Audience)
}

// SecurityInfo summarizes the policy switches.
func (e *Engine) SecurityInfo() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("IP Validation: %t, Rate Limiting: %t, Audit: %t, Debug: %t",
		e.config.IPBinding.Enabled, e.config.RateLimit.Enabled, e.config.Audit.Enabled, e.config.Debug)
}
