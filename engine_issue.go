package tokenauth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MrEthical07/tokenauth/internal/audit"
	"github.com/MrEthical07/tokenauth/jwt"
	"github.com/google/uuid"
)

// Issue creates an access/refresh token pair for subject, optionally bound to
// clientIP.
//
// Errors: ErrRateLimitExceeded, ErrInvalidSubject, ErrConfiguration (missing or
// malformed key material), ErrIssuanceFailed (signing failed).
func (e *Engine) Issue(ctx context.Context, subject, clientIP string) (TokenPair, error) {
	if err := e.ready(); err != nil {
		return TokenPair{}, err
	}
	if err := e.admit(ctx); err != nil {
		e.emitAudit(ctx, audit.OpIssue, subject, clientIP, false, auditMessage(err))
		return TokenPair{}, err
	}

	pair, err := e.issuePair(subject, clientIP)
	if err != nil {
		e.metrics.Inc(MetricIssueFailure)
		e.emitAudit(ctx, audit.OpIssue, subject, clientIP, false, auditMessage(err))
		return TokenPair{}, err
	}

	e.metrics.Inc(MetricIssueSuccess)
	e.emitAudit(ctx, audit.OpIssue, subject, clientIP, true, auditMsgIssued)
	return pair, nil
}

// issuePair signs a fresh pair without consulting the rate limiter.
func (e *Engine) issuePair(subject, clientIP string) (TokenPair, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return TokenPair{}, ErrInvalidSubject
	}

	alg, err := e.algorithm()
	if err != nil {
		e.logger.Error("jwt algorithm unavailable", slog.Any("error", err))
		return TokenPair{}, err
	}

	now := e.now()
	template := jwt.Template{
		Subject:  subject,
		ClientIP: clientIP,
		Issuer:   e.config.JWT.Issuer,
		Audience: e.config.JWT.Audience,
		IssuedAt: now,
	}

	access, accessID, err := e.sign(alg, template, jwt.TypeAccess)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshID, err := e.sign(alg, template, jwt.TypeRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	e.debug("token pair issued",
		slog.String("subject", subject),
		slog.String("access_token_id", accessID),
		slog.String("refresh_token_id", refreshID),
		slog.String("algorithm", string(alg.Name())))

	return TokenPair{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpiresIn: int64(e.config.JWT.AccessTTL.Seconds()),
	}, nil
}

func (e *Engine) sign(alg *jwt.Algorithm, template jwt.Template, typ jwt.TokenType) (string, string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", "", fmt.Errorf("%w: token id: %v", ErrIssuanceFailed, err)
	}

	template.Type = typ
	template.TokenID = id.String()
	template.TTL = e.config.JWT.AccessTTL
	if typ == jwt.TypeRefresh {
		template.TTL = e.config.JWT.RefreshTTL
	}

	token, err := e.codec.Encode(jwt.NewClaims(template), alg)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}
	return token, template.TokenID, nil
}
