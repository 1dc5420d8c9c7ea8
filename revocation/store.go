package revocation

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrUnavailable reports that the backing store could not be reached. Callers
// treat it as "membership unknown" and fail closed.
var ErrUnavailable = errors.New("revocation store unavailable")

// Store is a concurrency-safe denylist of raw token strings.
type Store interface {
	// Add records token. It reports true only when this call inserted the entry.
	Add(ctx context.Context, token string) (bool, error)
	Contains(ctx context.Context, token string) (bool, error)
	// Sweep removes entries whose tokens have naturally expired and reports
	// how many were removed.
	Sweep(ctx context.Context) (int, error)
	Len(ctx context.Context) (int, error)
}

// ExpiryFunc reports the exp claim of token. ok is false when the token cannot
// be decoded or carries no exp.
type ExpiryFunc func(token string) (exp time.Time, ok bool)

func normalize(token string) string {
	return strings.TrimSpace(token)
}
