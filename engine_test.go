package tokenauth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MrEthical07/tokenauth/jwt"
	"github.com/MrEthical07/tokenauth/revocation"
)

func TestIssueValidateRoundTrip(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, testConfig(), clock)

	pair := issuePair(t, engine, "alice", "10.0.0.1")
	if pair.AccessToken == "" || pair.RefreshToken == "" || pair.AccessToken == pair.RefreshToken {
		t.Fatalf("unexpected pair: %+v", pair)
	}
	if pair.AccessExpiresIn != 3600 {
		t.Fatalf("expected expires_in 3600, got %d", pair.AccessExpiresIn)
	}

	result := mustValidate(t, engine, pair.AccessToken, "10.0.0.1")
	if !result.Valid || result.Subject != "alice" || result.Reason != ReasonValid {
		t.Fatalf("unexpected result: %+v", result)
	}
	if engine.SubjectOf(pair.RefreshToken) != "alice" {
		t.Fatal("expected refresh token to carry the subject")
	}
}

func TestIssuedClaimsShape(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, testConfig(), clock)
	pair := issuePair(t, engine, "alice", "")

	codec := jwt.NewCodec(clock.Now)
	access, err := codec.Decode(pair.AccessToken)
	if err != nil {
		t.Fatalf("decode access: %v", err)
	}
	refresh, err := codec.Decode(pair.RefreshToken)
	if err != nil {
		t.Fatalf("decode refresh: %v", err)
	}

	if access.Type != jwt.TypeAccess || refresh.Type != jwt.TypeRefresh {
		t.Fatalf("unexpected types: %s %s", access.Type, refresh.Type)
	}
	if access.UserID != "alice" || access.Subject != "alice" || access.ClientIP != "" {
		t.Fatalf("unexpected access claims: %+v", access)
	}
	if access.TokenID == "" || access.TokenID == refresh.TokenID {
		t.Fatal("expected distinct token ids")
	}
	if access.Issuer != "tokenauth" || len(access.Audience) != 1 || access.Audience[0] != "tokenauth-app" {
		t.Fatalf("unexpected iss/aud: %s %v", access.Issuer, access.Audience)
	}
	if got := refresh.ExpiresAt.Sub(refresh.IssuedAt.Time); got != 30*24*time.Hour {
		t.Fatalf("expected 30 day refresh lifetime, got %s", got)
	}
	if !access.NotBefore.Equal(access.IssuedAt.Time) {
		t.Fatal("expected nbf equal to iat")
	}
}

func TestIssueRejectsEmptySubject(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newFakeClock())
	for _, subject := range []string{"", "   "} {
		if _, err := engine.Issue(context.Background(), subject, ""); !errors.Is(err, ErrInvalidSubject) {
			t.Fatalf("subject %q: expected ErrInvalidSubject, got %v", subject, err)
		}
	}
}

func TestMissingSecretIsConfigurationError(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.Secret = ""
	engine := newTestEngine(t, cfg, newFakeClock())

	if _, err := engine.Issue(context.Background(), "alice", ""); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration from issue, got %v", err)
	}
	result, err := engine.Validate(context.Background(), "a.b.c", "")
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration from validate, got %v", err)
	}
	if result.Valid || result.Reason != ReasonInvalid {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestOneSecondTokenExpires(t *testing.T) {
	clock := newFakeClock()
	cfg := testConfig()
	cfg.JWT.AccessTTL = time.Second
	engine := newTestEngine(t, cfg, clock)

	pair := issuePair(t, engine, "alice", "")
	if pair.AccessExpiresIn != 1 {
		t.Fatalf("expected expires_in 1, got %d", pair.AccessExpiresIn)
	}
	if got := engine.RemainingSeconds(pair.AccessToken); got != 1 {
		t.Fatalf("expected 1 second remaining, got %d", got)
	}

	clock.Advance(2 * time.Second)
	result := mustValidate(t, engine, pair.AccessToken, "")
	if result.Valid || result.Reason != ReasonExpired {
		t.Fatalf("expected expired, got %+v", result)
	}
	if result.Subject != "alice" {
		t.Fatalf("expected subject on expired result, got %q", result.Subject)
	}
	if engine.SubjectOf(pair.AccessToken) != "alice" {
		t.Fatal("expected decode to still yield the subject")
	}
	if !engine.IsExpired(pair.AccessToken) {
		t.Fatal("expected IsExpired")
	}
	if got := engine.RemainingSeconds(pair.AccessToken); got != -1 {
		t.Fatalf("expected -1 remaining, got %d", got)
	}
}

func TestSubSecondIssueDoesNotExpireEarly(t *testing.T) {
	cases := map[string]struct {
		ttl     time.Duration
		elapsed time.Duration
	}{
		"one second ttl": {ttl: time.Second, elapsed: 150 * time.Millisecond},
		"one hour ttl":   {ttl: time.Hour, elapsed: time.Hour - 200*time.Millisecond},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			clock := newFakeClock()
			clock.Advance(900 * time.Millisecond)
			cfg := testConfig()
			cfg.JWT.AccessTTL = tc.ttl
			engine := newTestEngine(t, cfg, clock)

			pair := issuePair(t, engine, "u1", "")
			if got := engine.RemainingSeconds(pair.AccessToken); got != int64(tc.ttl/time.Second) {
				t.Fatalf("expected %d seconds remaining, got %d", int64(tc.ttl/time.Second), got)
			}

			clock.Advance(tc.elapsed)
			if result := mustValidate(t, engine, pair.AccessToken, ""); !result.Valid {
				t.Fatalf("expected valid within ttl, got %+v", result)
			}
			if engine.IsExpired(pair.AccessToken) {
				t.Fatal("expected IsExpired false within ttl")
			}

			clock.Advance(time.Second)
			if result := mustValidate(t, engine, pair.AccessToken, ""); result.Reason != ReasonExpired {
				t.Fatalf("expected expired past ttl, got %+v", result)
			}
		})
	}
}

func TestIsExpiredWithoutExpClaim(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, testConfig(), clock)

	claims := jwt.NewClaims(jwt.Template{
		Subject: "alice", Type: jwt.TypeAccess, Issuer: "tokenauth", Audience: "tokenauth-app",
		IssuedAt: clock.Now(), TTL: time.Hour,
	})
	claims.ExpiresAt = nil
	token := forgeToken(t, claims)

	if engine.IsExpired(token) {
		t.Fatal("expected a token without exp not to count as expired")
	}
	if got := engine.RemainingSeconds(token); got != -1 {
		t.Fatalf("expected -1 remaining without exp, got %d", got)
	}
	if result := mustValidate(t, engine, token, ""); result.Valid || result.Reason != ReasonInvalid {
		t.Fatalf("expected validation to reject a token without exp, got %+v", result)
	}
}

func TestInspectionHelpersOnGarbage(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newFakeClock())
	if engine.SubjectOf("garbage") != "" {
		t.Fatal("expected empty subject for garbage")
	}
	if !engine.IsExpired("garbage") {
		t.Fatal("expected garbage to count as expired")
	}
	if engine.RemainingSeconds("garbage") != -1 {
		t.Fatal("expected -1 remaining for garbage")
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newFakeClock())
	pair := issuePair(t, engine, "alice", "")
	ctx := context.Background()

	revoked, err := engine.Revoke(ctx, pair.AccessToken)
	if err != nil || !revoked {
		t.Fatalf("expected first revoke to succeed, got %v %v", revoked, err)
	}
	revoked, err = engine.Revoke(ctx, "  "+pair.AccessToken+"\n")
	if err != nil || revoked {
		t.Fatalf("expected second revoke to report false, got %v %v", revoked, err)
	}
	for _, blank := range []string{"", "   "} {
		if revoked, err := engine.Revoke(ctx, blank); err != nil || revoked {
			t.Fatalf("expected blank revoke to report false, got %v %v", revoked, err)
		}
	}

	result := mustValidate(t, engine, pair.AccessToken, "")
	if result.Valid || result.Reason != ReasonRevoked {
		t.Fatalf("expected revoked, got %+v", result)
	}
	if other := mustValidate(t, engine, pair.RefreshToken, ""); !other.Valid {
		t.Fatalf("revoking one token must not affect its pair: %+v", other)
	}
}

func TestRevokeAcceptsUndecodableToken(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newFakeClock())
	revoked, err := engine.Revoke(context.Background(), "not-a-token")
	if err != nil || !revoked {
		t.Fatalf("expected undecodable token to be revoked, got %v %v", revoked, err)
	}
	if result := mustValidate(t, engine, "not-a-token", ""); result.Reason != ReasonRevoked {
		t.Fatalf("expected revoked reason first, got %+v", result)
	}
}

func TestIPBindingMatrix(t *testing.T) {
	clock := newFakeClock()
	cfg := testConfig()
	cfg.IPBinding.Enabled = true
	engine := newTestEngine(t, cfg, clock)

	bound := issuePair(t, engine, "alice", "10.0.0.1").AccessToken
	unbound := issuePair(t, engine, "alice", "").AccessToken

	cases := []struct {
		name   string
		token  string
		ip     string
		reason string
	}{
		{"same ip", bound, "10.0.0.1", ReasonValid},
		{"different ip", bound, "10.0.0.2", ReasonIPMismatch},
		{"no request ip", bound, "", ReasonValid},
		{"token without ip", unbound, "10.0.0.2", ReasonValid},
	}
	for _, tc := range cases {
		result := mustValidate(t, engine, tc.token, tc.ip)
		if result.Reason != tc.reason {
			t.Fatalf("%s: expected %q, got %+v", tc.name, tc.reason, result)
		}
		if result.Subject != "alice" {
			t.Fatalf("%s: expected subject, got %+v", tc.name, result)
		}
	}

	cfg.IPBinding.Enabled = false
	lenient := newTestEngine(t, cfg, clock)
	if result := mustValidate(t, lenient, bound, "10.0.0.2"); !result.Valid {
		t.Fatalf("expected IP check to be skipped when disabled, got %+v", result)
	}
}

func TestValidateRejectsMissingType(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, testConfig(), clock)

	claims := jwt.NewClaims(jwt.Template{
		Subject: "alice", Issuer: "tokenauth", Audience: "tokenauth-app",
		IssuedAt: clock.Now(), TTL: time.Hour,
	})
	result := mustValidate(t, engine, forgeToken(t, claims), "")
	if result.Valid || result.Reason != ReasonInvalidType {
		t.Fatalf("expected invalid token type, got %+v", result)
	}
}

func TestValidateRejectsFutureNotBefore(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, testConfig(), clock)

	claims := jwt.NewClaims(jwt.Template{
		Subject: "alice", Type: jwt.TypeAccess, Issuer: "tokenauth", Audience: "tokenauth-app",
		IssuedAt: clock.Now().Add(time.Minute), TTL: time.Hour,
	})
	token := forgeToken(t, claims)
	if result := mustValidate(t, engine, token, ""); result.Reason != ReasonNotYetValid {
		t.Fatalf("expected not yet valid, got %+v", result)
	}

	clock.Advance(time.Minute)
	if result := mustValidate(t, engine, token, ""); !result.Valid {
		t.Fatalf("expected token to become valid at nbf, got %+v", result)
	}
}

func TestValidateRejectsForeignAndTamperedTokens(t *testing.T) {
	clock := newFakeClock()
	engine := newTestEngine(t, testConfig(), clock)
	pair := issuePair(t, engine, "alice", "")

	parts := strings.Split(pair.AccessToken, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	wrongIssuer := forgeToken(t, jwt.NewClaims(jwt.Template{
		Subject: "alice", Type: jwt.TypeAccess, Issuer: "someone-else", Audience: "tokenauth-app",
		IssuedAt: clock.Now(), TTL: time.Hour,
	}))

	for name, token := range map[string]string{
		"tampered":     tampered,
		"garbage":      "garbage",
		"empty":        "",
		"wrong issuer": wrongIssuer,
	} {
		result := mustValidate(t, engine, token, "")
		if result.Valid || result.Reason != ReasonInvalid {
			t.Fatalf("%s: expected invalid, got %+v", name, result)
		}
	}
}

func TestRateLimitDeniesNPlusOneAndRecovers(t *testing.T) {
	clock := newFakeClock()
	cfg := testConfig()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerMinute = 3
	engine := newTestEngine(t, cfg, clock)
	ctx := context.Background()

	pair := issuePair(t, engine, "alice", "")
	for i := 0; i < 2; i++ {
		mustValidate(t, engine, pair.AccessToken, "")
	}

	result, err := engine.Validate(ctx, pair.AccessToken, "")
	if !errors.Is(err, ErrRateLimitExceeded) || result.Reason != ReasonRateLimited || result.Valid {
		t.Fatalf("expected rate limit on request 4, got %+v %v", result, err)
	}
	if _, err := engine.Issue(ctx, "alice", ""); !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("expected issue to be rate limited, got %v", err)
	}
	if _, err := engine.Revoke(ctx, pair.AccessToken); !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("expected revoke to be rate limited, got %v", err)
	}

	clock.Advance(time.Minute)
	if result := mustValidate(t, engine, pair.AccessToken, ""); !result.Valid {
		t.Fatalf("expected admission after window, got %+v", result)
	}
}

func TestRefreshAdmitsOnce(t *testing.T) {
	clock := newFakeClock()
	cfg := testConfig()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerMinute = 2
	engine := newTestEngine(t, cfg, clock)

	pair := issuePair(t, engine, "alice", "")
	if _, err := engine.Refresh(context.Background(), pair.RefreshToken, ""); err != nil {
		t.Fatalf("expected refresh to consume a single admission, got %v", err)
	}
	if _, err := engine.Refresh(context.Background(), pair.RefreshToken, ""); !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("expected third request to be limited, got %v", err)
	}
}

func TestRefreshRequiresRefreshType(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newFakeClock())
	pair := issuePair(t, engine, "alice", "")

	_, err := engine.Refresh(context.Background(), pair.AccessToken, "")
	if !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("expected ErrTokenRejected, got %v", err)
	}
	var rejection *RejectionError
	if !errors.As(err, &rejection) || rejection.Reason != ReasonInvalidRefreshType {
		t.Fatalf("expected invalid refresh type reason, got %v", err)
	}
}

func TestRefreshIssuesNewPairForSameSubject(t *testing.T) {
	clock := newFakeClock()
	cfg := testConfig()
	cfg.IPBinding.Enabled = true
	engine := newTestEngine(t, cfg, clock)
	pair := issuePair(t, engine, "alice", "10.0.0.1")

	clock.Advance(time.Second)
	next, err := engine.Refresh(context.Background(), pair.RefreshToken, "10.0.0.1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.AccessToken == pair.AccessToken || next.AccessExpiresIn != 3600 {
		t.Fatalf("unexpected refreshed pair: %+v", next)
	}
	result := mustValidate(t, engine, next.AccessToken, "10.0.0.1")
	if !result.Valid || result.Subject != "alice" {
		t.Fatalf("unexpected result: %+v", result)
	}

	// Refresh tokens are IP-bound like access tokens.
	_, err = engine.Refresh(context.Background(), pair.RefreshToken, "10.9.9.9")
	var rejection *RejectionError
	if !errors.As(err, &rejection) || rejection.Reason != ReasonIPMismatch {
		t.Fatalf("expected IP mismatch rejection, got %v", err)
	}
}

func TestRefreshRotationRejectsReuse(t *testing.T) {
	cfg := testConfig()
	cfg.Refresh.RotationEnabled = true
	engine := newTestEngine(t, cfg, newFakeClock())
	pair := issuePair(t, engine, "alice", "")
	ctx := context.Background()

	if _, err := engine.Refresh(ctx, pair.RefreshToken, ""); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	_, err := engine.Refresh(ctx, pair.RefreshToken, "")
	var rejection *RejectionError
	if !errors.As(err, &rejection) || rejection.Reason != ReasonRevoked {
		t.Fatalf("expected reuse to be rejected as revoked, got %v", err)
	}
	if result := mustValidate(t, engine, pair.RefreshToken, ""); result.Reason != ReasonRevoked {
		t.Fatalf("expected rotated token to be revoked, got %+v", result)
	}
}

func TestRefreshWithoutRotationAllowsReuse(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newFakeClock())
	pair := issuePair(t, engine, "alice", "")
	for i := 0; i < 3; i++ {
		if _, err := engine.Refresh(context.Background(), pair.RefreshToken, ""); err != nil {
			t.Fatalf("refresh %d: %v", i, err)
		}
	}
}

type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Add(context.Context, string) (bool, error)      { return false, errStoreDown }
func (failingStore) Contains(context.Context, string) (bool, error) { return false, errStoreDown }
func (failingStore) Sweep(context.Context) (int, error)             { return 0, errStoreDown }
func (failingStore) Len(context.Context) (int, error)               { return 0, errStoreDown }

var _ revocation.Store = failingStore{}

func TestRevocationStoreFailureFailsClosed(t *testing.T) {
	engine, err := New().WithConfig(testConfig()).WithLogger(discardLogger()).
		WithClock(newFakeClock().Now).WithRevocationStore(failingStore{}).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer engine.Close()
	ctx := context.Background()

	pair := issuePair(t, engine, "alice", "")
	result, err := engine.Validate(ctx, pair.AccessToken, "")
	if !errors.Is(err, ErrRevocationUnavailable) {
		t.Fatalf("expected ErrRevocationUnavailable, got %v", err)
	}
	if result.Valid || result.Reason != ReasonRevocationFailed {
		t.Fatalf("expected fail-closed result, got %+v", result)
	}
	if _, err := engine.Refresh(ctx, pair.RefreshToken, ""); !errors.Is(err, ErrRevocationUnavailable) {
		t.Fatalf("expected refresh to fail closed, got %v", err)
	}
	if _, err := engine.Revoke(ctx, pair.AccessToken); !errors.Is(err, ErrRevocationUnavailable) {
		t.Fatalf("expected revoke to surface store failure, got %v", err)
	}
	if _, err := engine.SweepRevoked(ctx); !errors.Is(err, ErrRevocationUnavailable) {
		t.Fatalf("expected sweep to surface store failure, got %v", err)
	}
	if report := engine.SecurityReport(ctx); report.RevokedTokens != -1 {
		t.Fatalf("expected unknown revoked count, got %d", report.RevokedTokens)
	}
}

func TestSweepRevokedRemovesExpiredEntries(t *testing.T) {
	clock := newFakeClock()
	cfg := testConfig()
	cfg.JWT.AccessTTL = time.Second
	engine := newTestEngine(t, cfg, clock)
	ctx := context.Background()

	pair := issuePair(t, engine, "alice", "")
	for _, tok := range []string{pair.AccessToken, pair.RefreshToken} {
		if _, err := engine.Revoke(ctx, tok); err != nil {
			t.Fatalf("revoke: %v", err)
		}
	}

	if n, err := engine.SweepRevoked(ctx); err != nil || n != 0 {
		t.Fatalf("expected nothing to sweep yet, got %d %v", n, err)
	}
	clock.Advance(2 * time.Second)
	if n, err := engine.SweepRevoked(ctx); err != nil || n != 1 {
		t.Fatalf("expected one expired entry swept, got %d %v", n, err)
	}
	if result := mustValidate(t, engine, pair.RefreshToken, ""); result.Reason != ReasonRevoked {
		t.Fatalf("unexpired revocation must survive the sweep, got %+v", result)
	}
}

func TestRunSweeperStopsWithContext(t *testing.T) {
	clock := newFakeClock()
	cfg := testConfig()
	cfg.JWT.AccessTTL = time.Second
	engine := newTestEngine(t, cfg, clock)

	pair := issuePair(t, engine, "alice", "")
	if _, err := engine.Revoke(context.Background(), pair.AccessToken); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	clock.Advance(2 * time.Second)

	if err := engine.RunSweeper(context.Background(), 0); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected invalid interval to fail, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- engine.RunSweeper(ctx, 5*time.Millisecond) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if n, _ := engine.store.Len(context.Background()); n == 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n, _ := engine.store.Len(context.Background()); n != 0 {
		t.Fatalf("expected sweeper to clear expired entry, %d left", n)
	}
}

func TestAlgorithmAndSecurityInfo(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.Algorithm = "ES512"
	cfg.JWT.Issuer = "iss"
	cfg.JWT.Audience = "aud"
	cfg.RateLimit.Enabled = true
	engine := newTestEngine(t, cfg, newFakeClock())

	if got := engine.AlgorithmInfo(); got != "Algorithm: HS256, Issuer: iss, Audience: aud" {
		t.Fatalf("unexpected algorithm info %q", got)
	}
	if got := engine.SecurityInfo(); got != "IP Validation: false, Rate Limiting: true, Audit: false, Debug: false" {
		t.Fatalf("unexpected security info %q", got)
	}

	report := engine.SecurityReport(context.Background())
	if report.SigningAlgorithm != "HS256" || !report.AlgorithmResolved || !report.RateLimitingActive || report.RequestsPerMinute != 60 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.RevokedTokens != 0 {
		t.Fatalf("expected empty denylist, got %d", report.RevokedTokens)
	}
	if engine.Config().JWT.Secret != "[redacted]" {
		t.Fatal("expected Config to redact the secret")
	}
}

func TestBuilderRejectsInvalidConfigAndReuse(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.AccessTTL = 0
	if _, err := New().WithConfig(cfg).Build(); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}

	b := New().WithConfig(testConfig()).WithLogger(discardLogger())
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer engine.Close()
	if _, err := b.Build(); err == nil {
		t.Fatal("expected second build to fail")
	}
}

func TestZeroEngineIsNotReady(t *testing.T) {
	var engine *Engine
	if _, err := engine.Issue(context.Background(), "alice", ""); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if _, err := (&Engine{}).Validate(context.Background(), "x", ""); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	engine.Close()
}
