package tokenauth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MrEthical07/tokenauth/internal/audit"
)

// Revoke adds token to the denylist. It reports false for blank input and for
// tokens that were already revoked. Any token string is accepted; the subject
// recorded in the audit event is best effort.
func (e *Engine) Revoke(ctx context.Context, token string) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}
	if err := e.admit(ctx); err != nil {
		e.emitAudit(ctx, audit.OpRevoke, "", "", false, auditMessage(err))
		return false, err
	}

	added, err := e.store.Add(ctx, token)
	if err != nil {
		e.metrics.Inc(MetricRevocationUnavailable)
		wrapped := fmt.Errorf("%w: %v", ErrRevocationUnavailable, err)
		e.logger.Warn("revoke failed", slog.Any("error", err))
		e.emitAudit(ctx, audit.OpRevoke, "", "", false, auditMessage(wrapped))
		return false, wrapped
	}

	subject := e.SubjectOf(token)
	if !added {
		e.metrics.Inc(MetricRevokeDuplicate)
		e.emitAudit(ctx, audit.OpRevoke, subject, "", false, auditMsgAlreadyRevoked)
		return false, nil
	}

	e.metrics.Inc(MetricRevokeSuccess)
	e.debug("token revoked", slog.String("subject", subject))
	e.emitAudit(ctx, audit.OpRevoke, subject, "", true, auditMsgRevoked)
	return true, nil
}

// SweepRevoked removes denylist entries whose tokens have naturally expired and
// reports how many were removed.
func (e *Engine) SweepRevoked(ctx context.Context) (int, error) {
	if err := e.ready(); err != nil {
		return 0, err
	}
	removed, err := e.store.Sweep(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRevocationUnavailable, err)
	}
	e.metrics.Add(MetricRevocationSwept, uint64(removed))
	if removed > 0 {
		e.logger.Info("expired revocations swept", slog.Int("removed", removed))
	}
	return removed, nil
}

// RunSweeper calls SweepRevoked every interval until ctx is done. It blocks and
// returns ctx.Err().
func (e *Engine) RunSweeper(ctx context.Context, interval time.Duration) error {
	if err := e.ready(); err != nil {
		return err
	}
	if interval <= 0 {
		return fmt.Errorf("%w: sweep interval must be > 0", ErrConfiguration)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := e.SweepRevoked(ctx); err != nil {
				e.logger.Warn("revocation sweep failed", slog.Any("error", err))
			}
		}
	}
}
