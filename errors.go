package tokenauth

import "errors"

var (
	// ErrConfiguration is an exported constant or variable used by the authentication engine.
	// It wraps missing or malformed key material and invalid Config values.
	ErrConfiguration = errors.New("tokenauth: configuration error")
	// ErrRateLimitExceeded is an exported constant or variable used by the authentication engine.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrIssuanceFailed is an exported constant or variable used by the authentication engine.
	ErrIssuanceFailed = errors.New("token issuance failed")
	// ErrTokenRejected is an exported constant or variable used by the authentication engine.
	// Match it with errors.Is; the concrete error is a *RejectionError carrying the reason.
	ErrTokenRejected = errors.New("token rejected")
	// ErrRevocationUnavailable is an exported constant or variable used by the authentication engine.
	ErrRevocationUnavailable = errors.New("revocation store unavailable")
	// ErrInvalidSubject is an exported constant or variable used by the authentication engine.
	ErrInvalidSubject = errors.New("subject must not be empty")
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
