package tokenauth

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrEthical07/tokenauth/jwt"
)

const testSecret = "test-secret-test-secret-test-secret!"

type fakeClock struct {
	nanos atomic.Int64
}

func newFakeClock() *fakeClock {
	c := &fakeClock{}
	c.nanos.Store(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).UnixNano())
	return c
}

func (c *fakeClock) Now() time.Time          { return time.Unix(0, c.nanos.Load()).UTC() }
func (c *fakeClock) Advance(d time.Duration) { c.nanos.Add(int64(d)) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.JWT.Secret = testSecret
	cfg.Audit.Enabled = false
	return cfg
}

func newTestEngine(t testing.TB, cfg Config, clock *fakeClock) *Engine {
	t.Helper()
	b := New().WithConfig(cfg).WithLogger(discardLogger())
	if clock != nil {
		b = b.WithClock(clock.Now)
	}
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

func issuePair(t testing.TB, engine *Engine, subject, ip string) TokenPair {
	t.Helper()
	pair, err := engine.Issue(context.Background(), subject, ip)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return pair
}

func mustValidate(t testing.TB, engine *Engine, token, ip string) ValidationResult {
	t.Helper()
	result, err := engine.Validate(context.Background(), token, ip)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	return result
}

// forgeToken signs a claim set with the test secret, bypassing Issue.
func forgeToken(t testing.TB, claims *jwt.Claims) string {
	t.Helper()
	alg, err := jwt.NewHMAC(jwt.HS256, []byte(testSecret))
	if err != nil {
		t.Fatalf("new hmac: %v", err)
	}
	token, err := jwt.NewCodec(nil).Encode(claims, alg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return token
}

type captureSink struct {
	mu     sync.Mutex
	events []AuditEvent
}

func (s *captureSink) Emit(_ context.Context, event AuditEvent) {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
}

func (s *captureSink) Events() []AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AuditEvent(nil), s.events...)
}
