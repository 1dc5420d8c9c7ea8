package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	tokenauth "github.com/MrEthical07/tokenauth"
)

// Principal is the authenticated caller of a guarded request.
type Principal struct {
	Subject     string
	DisplayName string
}

type principalContextKey struct{}

// PrincipalFromContext returns the principal stored by Guard.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// Guard rejects requests without a valid access token. directory may be nil;
// when it is, or when a lookup fails, DisplayName falls back to the subject.
//
// Responses: 401 for missing or rejected tokens, 429 when the engine is rate
// limiting, 503 when the engine cannot decide (revocation store or key
// material unavailable).
func Guard(engine *tokenauth.Engine, directory tokenauth.PrincipalDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			res, err := engine.Validate(r.Context(), token, ClientIP(r))
			if err != nil {
				writeEngineError(w, err)
				return
			}
			if !res.Valid {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			p := Principal{Subject: res.Subject, DisplayName: res.Subject}
			if directory != nil {
				if name, err := directory.LookupDisplayName(r.Context(), res.Subject); err == nil && name != "" {
					p.DisplayName = name
				}
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tokenauth.ErrRateLimitExceeded):
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	case errors.Is(err, tokenauth.ErrRevocationUnavailable), errors.Is(err, tokenauth.ErrConfiguration):
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if len(value) < len(bearer) || !strings.EqualFold(value[:len(bearer)], bearer) {
		return "", false
	}

	token := strings.TrimSpace(value[len(bearer):])
	if token == "" {
		return "", false
	}
	return token, true
}
