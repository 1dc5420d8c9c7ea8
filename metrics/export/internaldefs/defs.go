package internaldefs

import (
	tokenauth "github.com/MrEthical07/tokenauth"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   tokenauth.MetricID
	Name string
	Help string
}

// HistogramDef names one exported histogram.
type HistogramDef struct {
	ID   tokenauth.MetricID
	Name string
	Help string
}

// CounterDefs lists every engine counter in export order.
var CounterDefs = []CounterDef{
	{ID: tokenauth.MetricIssueSuccess, Name: "tokenauth_issue_success_total", Help: "Issued token pairs."},
	{ID: tokenauth.MetricIssueFailure, Name: "tokenauth_issue_failure_total", Help: "Failed issuance attempts."},
	{ID: tokenauth.MetricValidateSuccess, Name: "tokenauth_validate_success_total", Help: "Tokens accepted by validation."},
	{ID: tokenauth.MetricValidateRevoked, Name: "tokenauth_validate_revoked_total", Help: "Tokens rejected as revoked."},
	{ID: tokenauth.MetricValidateExpired, Name: "tokenauth_validate_expired_total", Help: "Tokens rejected as expired."},
	{ID: tokenauth.MetricValidateInvalid, Name: "tokenauth_validate_invalid_total", Help: "Malformed, forged, or mis-typed tokens."},
	{ID: tokenauth.MetricValidateIPMismatch, Name: "tokenauth_validate_ip_mismatch_total", Help: "Tokens presented from a different client IP."},
	{ID: tokenauth.MetricValidateNotYetValid, Name: "tokenauth_validate_not_yet_valid_total", Help: "Tokens presented before their not-before time."},
	{ID: tokenauth.MetricRefreshSuccess, Name: "tokenauth_refresh_success_total", Help: "Successful refresh operations."},
	{ID: tokenauth.MetricRefreshFailure, Name: "tokenauth_refresh_failure_total", Help: "Failed refresh operations."},
	{ID: tokenauth.MetricRefreshReuseDetected, Name: "tokenauth_refresh_reuse_detected_total", Help: "Rotated refresh tokens presented again."},
	{ID: tokenauth.MetricRevokeSuccess, Name: "tokenauth_revoke_success_total", Help: "Tokens added to the denylist."},
	{ID: tokenauth.MetricRevokeDuplicate, Name: "tokenauth_revoke_duplicate_total", Help: "Revocations of already-revoked tokens."},
	{ID: tokenauth.MetricRevocationSwept, Name: "tokenauth_revocation_swept_total", Help: "Expired denylist entries removed by sweeps."},
	{ID: tokenauth.MetricRevocationUnavailable, Name: "tokenauth_revocation_unavailable_total", Help: "Operations failed closed on the revocation store."},
	{ID: tokenauth.MetricRateLimitHit, Name: "tokenauth_rate_limit_hit_total", Help: "Requests denied by the rate limiter."},
}

// HistogramDefs lists every engine histogram.
var HistogramDefs = []HistogramDef{
	{ID: tokenauth.MetricValidateLatency, Name: "tokenauth_validate_latency_seconds", Help: "Validate latency histogram."},
}

// HistogramBounds are the upper bounds, in seconds, of the engine's latency buckets.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// NormalizeBuckets copies raw into a fixed eight-bucket array, zero-filling or
// truncating as needed.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets turns per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
