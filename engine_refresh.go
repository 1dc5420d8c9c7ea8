package tokenauth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MrEthical07/tokenauth/internal/audit"
	"github.com/MrEthical07/tokenauth/jwt"
)

const opRefresh = "refresh"

// Refresh exchanges a valid refresh token for a new pair bound to clientIP.
//
// The refresh token passes the same checks as Validate (without a second rate
// limiter admission) and must be of type refresh. With rotation enabled the
// presented token is revoked before the new pair is issued; of several
// concurrent refreshes of one token at most one succeeds and the rest are
// rejected as revoked.
//
// Token problems return a *RejectionError matching ErrTokenRejected.
func (e *Engine) Refresh(ctx context.Context, refreshToken, clientIP string) (TokenPair, error) {
	if err := e.ready(); err != nil {
		return TokenPair{}, err
	}
	if err := e.admit(ctx); err != nil {
		e.emitAudit(ctx, audit.OpRefresh, "", clientIP, false, auditMessage(err))
		return TokenPair{}, err
	}

	pair, subject, err := e.refresh(ctx, strings.TrimSpace(refreshToken), clientIP)
	if err != nil {
		e.metrics.Inc(MetricRefreshFailure)
		e.logger.Warn("refresh rejected", slog.String("subject", subject), slog.String("reason", auditMessage(err)))
		e.emitAudit(ctx, audit.OpRefresh, subject, clientIP, false, auditMessage(err))
		return TokenPair{}, err
	}

	e.metrics.Inc(MetricRefreshSuccess)
	e.emitAudit(ctx, audit.OpRefresh, subject, clientIP, true, auditMsgRefreshed)
	return pair, nil
}

func (e *Engine) refresh(ctx context.Context, token, clientIP string) (TokenPair, string, error) {
	result, claims, err := e.validate(ctx, token, clientIP)
	if err != nil {
		return TokenPair{}, result.Subject, err
	}
	if !result.Valid {
		if result.Reason == ReasonRevoked && e.config.Refresh.RotationEnabled {
			e.metrics.Inc(MetricRefreshReuseDetected)
		}
		return TokenPair{}, result.Subject, &RejectionError{Op: opRefresh, Reason: result.Reason}
	}
	if claims.Type != jwt.TypeRefresh {
		return TokenPair{}, result.Subject, &RejectionError{Op: opRefresh, Reason: ReasonInvalidRefreshType}
	}

	if e.config.Refresh.RotationEnabled {
		added, err := e.store.Add(ctx, token)
		if err != nil {
			e.metrics.Inc(MetricRevocationUnavailable)
			return TokenPair{}, result.Subject, fmt.Errorf("%w: %v", ErrRevocationUnavailable, err)
		}
		if !added {
			e.metrics.Inc(MetricRefreshReuseDetected)
			return TokenPair{}, result.Subject, &RejectionError{Op: opRefresh, Reason: ReasonRevoked}
		}
		e.debug("refresh token rotated", slog.String("token_id", claims.TokenID))
	}

	pair, err := e.issuePair(result.Subject, clientIP)
	if err != nil {
		return TokenPair{}, result.Subject, err
	}
	return pair, result.Subject, nil
}
