package tokenauth

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one engine counter or histogram.
type MetricID uint16

const (
	// MetricIssueSuccess counts issued token pairs.
	MetricIssueSuccess MetricID = iota
	// MetricIssueFailure counts issuance failures other than rate limiting.
	MetricIssueFailure
	// MetricValidateSuccess counts tokens accepted by Validate.
	MetricValidateSuccess
	// MetricValidateRevoked counts tokens rejected as revoked.
	MetricValidateRevoked
	// MetricValidateExpired counts tokens rejected as expired.
	MetricValidateExpired
	// MetricValidateInvalid counts malformed, forged, or mis-typed tokens.
	MetricValidateInvalid
	// MetricValidateIPMismatch counts tokens presented from a different client IP.
	MetricValidateIPMismatch
	// MetricValidateNotYetValid counts tokens presented before nbf.
	MetricValidateNotYetValid
	// MetricRefreshSuccess counts successful refreshes.
	MetricRefreshSuccess
	// MetricRefreshFailure counts rejected refreshes.
	MetricRefreshFailure
	// MetricRefreshReuseDetected counts refresh tokens presented again after rotation.
	MetricRefreshReuseDetected
	// MetricRevokeSuccess counts tokens newly added to the denylist.
	MetricRevokeSuccess
	// MetricRevokeDuplicate counts revocations of already-revoked tokens.
	MetricRevokeDuplicate
	// MetricRevocationSwept counts denylist entries removed by sweeps.
	MetricRevocationSwept
	// MetricRevocationUnavailable counts operations that failed closed on the store.
	MetricRevocationUnavailable
	// MetricRateLimitHit counts requests denied by the rate limiter.
	MetricRateLimitHit
	// MetricValidateLatency is the validate latency histogram.
	MetricValidateLatency
	metricIDCount
)

// latencyBounds are the inclusive upper bounds of the first seven latency
// buckets; the eighth holds everything slower.
var latencyBounds = [...]time.Duration{
	5 * time.Millisecond,
	10 * time.Millisecond,
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
}

const latencyBucketCount = len(latencyBounds) + 1

// counter sits alone on a cache line so hot counters do not false-share.
type counter struct {
	atomic.Uint64
	_ [56]byte
}

// Metrics holds lock-free per-outcome counters and the validate latency
// histogram. A nil or disabled Metrics ignores updates.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]counter
	latency       [latencyBucketCount]atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of every counter. Histograms holds
// per-bucket (non-cumulative) counts and is empty unless latency histograms
// are enabled.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

func emptySnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Counters:   map[MetricID]uint64{},
		Histograms: map[MetricID][]uint64{},
	}
}

// NewMetrics returns counters configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether validate latency is recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to id.
func (m *Metrics) Inc(id MetricID) {
	m.Add(id, 1)
}

// Add adds n to id.
func (m *Metrics) Add(id MetricID, n uint64) {
	if !m.Enabled() || id >= metricIDCount || n == 0 {
		return
	}
	m.counters[id].Add(n)
}

// Observe records d for id. Only MetricValidateLatency has a histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if !m.LatencyEnabled() || id != MetricValidateLatency {
		return
	}
	m.latency[latencyBucket(d)].Add(1)
}

// Value returns the current count for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return m.counters[id].Load()
}

// Snapshot copies every counter. It is safe to call concurrently with updates;
// counters are read one at a time, not as an atomic set.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if !m.Enabled() {
		return emptySnapshot()
	}

	s := emptySnapshot()
	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricValidateLatency {
			continue
		}
		s.Counters[id] = m.counters[id].Load()
	}

	if m.enableLatency {
		buckets := make([]uint64, latencyBucketCount)
		for i := range buckets {
			buckets[i] = m.latency[i].Load()
		}
		s.Histograms[MetricValidateLatency] = buckets
	}
	return s
}

func latencyBucket(d time.Duration) int {
	// Bucket edges are whole milliseconds.
	d = d.Truncate(time.Millisecond)
	for i, bound := range latencyBounds {
		if d <= bound {
			return i
		}
	}
	return len(latencyBounds)
}
