package tokenauth

import (
	"context"
	"errors"

	"github.com/MrEthical07/tokenauth/internal/audit"
)

const (
	auditMsgIssued          = "token pair issued"
	auditMsgRefreshed       = "access token refreshed"
	auditMsgRevoked         = "token revoked"
	auditMsgAlreadyRevoked  = "token already revoked"
	auditMsgIssueFailed     = "issuance failed"
	auditMsgInvalidSubject  = "invalid subject"
	auditMsgConfiguration   = "configuration error"
	auditMsgStoreFailed     = "revocation store unavailable"
	auditMsgUnexpectedError = "unexpected error"
)

func (e *Engine) emitAudit(ctx context.Context, op audit.Operation, subject, clientIP string, success bool, message string) {
	if e == nil || e.audit == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := e.now()
	e.audit.Emit(ctx, audit.Event{
		ID:        e.ids.NewAt(now),
		Timestamp: now.UTC(),
		Operation: op,
		Subject:   subject,
		ClientIP:  clientIP,
		Success:   success,
		Message:   message,
	})
}

// auditMessage maps an operation error to the message recorded with it.
func auditMessage(err error) string {
	var rejection *RejectionError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rejection):
		return rejection.Reason
	case errors.Is(err, ErrRateLimitExceeded):
		return ReasonRateLimited
	case errors.Is(err, ErrRevocationUnavailable):
		return auditMsgStoreFailed
	case errors.Is(err, ErrConfiguration):
		return auditMsgConfiguration
	case errors.Is(err, ErrInvalidSubject):
		return auditMsgInvalidSubject
	case errors.Is(err, ErrIssuanceFailed):
		return auditMsgIssueFailed
	default:
		return auditMsgUnexpectedError
	}
}
