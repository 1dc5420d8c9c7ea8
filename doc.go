// Package tokenauth issues, validates, refreshes, and revokes signed bearer tokens
// that name an authenticated principal, with per-minute rate limits and optional
// client-IP binding.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// tokenauth is the public surface. It exposes [Engine], [Builder], [Config], and value types
// (TokenPair, ValidationResult, SecurityReport, MetricsSnapshot). Signing lives in the jwt
// sub-package, the denylist in revocation, settings lookup in config. Rate limiting, audit
// dispatch, and the refreshing key cache live under internal/ and are never exported.
//
// # Validation order
//
// Validate short-circuits in a fixed order: rate limit, revocation, signature and
// standard claims, token type, IP binding, not-before. Token problems are reported
// through [ValidationResult.Reason]; Go errors are reserved for rate limiting,
// configuration, and an unreachable revocation store.
//
// # What this package must NOT do
//
//   - Look up user accounts, manage credentials, or make authorization decisions.
//   - Extract tokens or client IPs from HTTP requests (see the middleware package).
//   - Log secrets or full token strings.
package tokenauth
