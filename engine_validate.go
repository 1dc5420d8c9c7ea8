package tokenauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MrEthical07/tokenauth/internal/audit"
	"github.com/MrEthical07/tokenauth/jwt"
)

// Validate checks token in a fixed order: rate limit, revocation, signature and
// standard claims, type, IP binding, not-before. The first failing check sets
// Reason.
//
// Token problems never produce an error. err is non-nil only for
// ErrRateLimitExceeded, ErrConfiguration, and ErrRevocationUnavailable; in each
// case the returned result is not valid.
func (e *Engine) Validate(ctx context.Context, token, clientIP string) (ValidationResult, error) {
	if err := e.ready(); err != nil {
		return ValidationResult{Reason: ReasonInvalid}, err
	}

	var start time.Time
	if e.metrics.LatencyEnabled() {
		start = time.Now()
	}

	if err := e.admit(ctx); err != nil {
		e.emitAudit(ctx, audit.OpValidate, "", clientIP, false, ReasonRateLimited)
		return ValidationResult{Reason: ReasonRateLimited}, err
	}

	result, _, err := e.validate(ctx, token, clientIP)
	e.recordValidation(result)
	e.emitAudit(ctx, audit.OpValidate, result.Subject, clientIP, result.Valid, result.Reason)

	if e.metrics.LatencyEnabled() {
		e.metrics.Observe(MetricValidateLatency, time.Since(start))
	}
	return result, err
}

// validate runs every check after rate limiting. claims is set only when the
// signature verified.
func (e *Engine) validate(ctx context.Context, token, clientIP string) (ValidationResult, *jwt.Claims, error) {
	token = strings.TrimSpace(token)

	revoked, err := e.store.Contains(ctx, token)
	if err != nil {
		e.metrics.Inc(MetricRevocationUnavailable)
		e.logger.Warn("revocation check failed, rejecting token", slog.Any("error", err))
		return ValidationResult{Reason: ReasonRevocationFailed}, nil, fmt.Errorf("%w: %v", ErrRevocationUnavailable, err)
	}
	if revoked {
		e.debug("token rejected", slog.String("reason", ReasonRevoked))
		return ValidationResult{Reason: ReasonRevoked}, nil, nil
	}

	alg, err := e.algorithm()
	if err != nil {
		e.logger.Error("jwt algorithm unavailable", slog.Any("error", err))
		return ValidationResult{Reason: ReasonInvalid}, nil, err
	}

	claims, err := e.codec.DecodeAndVerify(token, alg, e.config.JWT.Issuer, e.config.JWT.Audience)
	if err != nil {
		reject := ValidationResult{Reason: ReasonInvalid}
		if errors.Is(err, jwt.ErrTokenExpired) {
			reject.Reason = ReasonExpired
		}
		if claims != nil {
			reject.Subject = claims.Principal()
		}
		e.debug("token rejected", slog.String("reason", reject.Reason), slog.String("subject", reject.Subject))
		return reject, nil, nil
	}

	subject := claims.Principal()
	if claims.Type == "" {
		return ValidationResult{Subject: subject, Reason: ReasonInvalidType}, claims, nil
	}

	if e.config.IPBinding.Enabled && clientIP != "" && claims.ClientIP != "" && clientIP != claims.ClientIP {
		e.logger.Warn("token presented from a different client IP",
			slog.String("subject", subject),
			slog.String("token_id", claims.TokenID))
		return ValidationResult{Subject: subject, Reason: ReasonIPMismatch}, claims, nil
	}

	if claims.NotYetValidAt(e.now()) {
		return ValidationResult{Subject: subject, Reason: ReasonNotYetValid}, claims, nil
	}

	e.debug("token validated", slog.String("subject", subject), slog.String("token_id", claims.TokenID))
	return ValidationResult{Valid: true, Subject: subject, Reason: ReasonValid}, claims, nil
}

func (e *Engine) recordValidation(result ValidationResult) {
	switch result.Reason {
	case ReasonValid:
		e.metrics.Inc(MetricValidateSuccess)
	case ReasonRevoked:
		e.metrics.Inc(MetricValidateRevoked)
	case ReasonExpired:
		e.metrics.Inc(MetricValidateExpired)
	case ReasonIPMismatch:
		e.metrics.Inc(MetricValidateIPMismatch)
	case ReasonNotYetValid:
		e.metrics.Inc(MetricValidateNotYetValid)
	case ReasonInvalid, ReasonInvalidType:
		e.metrics.Inc(MetricValidateInvalid)
	}
}
