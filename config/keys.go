package config

// Recognized keys.
const (
	KeySecret                = "jwt.secret"
	KeyIssuer                = "jwt.issuer"
	KeyAudience              = "jwt.audience"
	KeyAlgorithm             = "jwt.algorithm"
	KeyAccessExpireMinutes   = "jwt.access.expire.minutes"
	KeyRefreshExpireDays     = "jwt.refresh.expire.days"
	KeyIPValidationEnabled   = "jwt.ip.validation.enabled"
	KeyAuditEnabled          = "jwt.audit.enabled"
	KeyDebugLogging          = "jwt.debug.logging"
	KeyPrivateKeyPath        = "jwt.private.key.path"
	KeyPublicKeyPath         = "jwt.public.key.path"
	KeyRateLimitEnabled      = "jwt.rate.limit.enabled"
	KeyRateLimitPerMinute    = "jwt.rate.limit.requests.per.minute"
	KeyRefreshRotation       = "jwt.refresh.rotation.enabled"
	KeyAuditBufferSize       = "jwt.audit.buffer.size"
	KeyAuditDropIfFull       = "jwt.audit.drop.if.full"
	KeyMetricsEnabled        = "jwt.metrics.enabled"
	KeyMetricsLatencyEnabled = "jwt.metrics.latency.enabled"
	KeyRevocationPrefix      = "jwt.revocation.prefix"
	KeyKeysWatchEnabled      = "jwt.keys.watch.enabled"
)

// Keys lists every recognized key in a stable order.
func Keys() []string {
	return []string{
		KeySecret, KeyIssuer, KeyAudience, KeyAlgorithm,
		KeyAccessExpireMinutes, KeyRefreshExpireDays,
		KeyIPValidationEnabled, KeyAuditEnabled, KeyDebugLogging,
		KeyPrivateKeyPath, KeyPublicKeyPath,
		KeyRateLimitEnabled, KeyRateLimitPerMinute, KeyRefreshRotation,
		KeyAuditBufferSize, KeyAuditDropIfFull,
		KeyMetricsEnabled, KeyMetricsLatencyEnabled,
		KeyRevocationPrefix, KeyKeysWatchEnabled,
	}
}
