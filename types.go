package tokenauth

import (
	"context"
	"fmt"
)

// TokenPair is the result of a successful Issue or Refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// AccessExpiresIn is the access token lifetime in whole seconds.
	AccessExpiresIn int64 `json:"expires_in"`
}

// ValidationResult is the outcome of Validate. Subject is set on success and on
// failures detected after the signature was verified.
type ValidationResult struct {
	Valid   bool
	Subject string
	Reason  string
}

// Validation reasons.
const (
	ReasonValid              = "valid"
	ReasonRevoked            = "revoked"
	ReasonExpired            = "expired"
	ReasonInvalid            = "invalid"
	ReasonInvalidType        = "invalid token type"
	ReasonIPMismatch         = "IP address mismatch"
	ReasonNotYetValid        = "not yet valid"
	ReasonInvalidRefreshType = "invalid token type for refresh"
	ReasonRateLimited        = "rate limit exceeded"
	ReasonRevocationFailed   = "revocation check failed"
)

// RejectionError reports why a refresh token was not accepted. It matches
// ErrTokenRejected under errors.Is.
type RejectionError struct {
	Op     string
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrTokenRejected, e.Reason)
}

// Is reports whether target is ErrTokenRejected.
func (e *RejectionError) Is(target error) bool {
	return target == ErrTokenRejected
}

// PrincipalDirectory resolves display names for subjects. It is consumed by the
// HTTP middleware only; the engine never performs account lookups.
type PrincipalDirectory interface {
	LookupDisplayName(ctx context.Context, subject string) (string, error)
}
