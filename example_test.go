package tokenauth_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/tokenauth"
	"github.com/MrEthical07/tokenauth/middleware"
)

// ExampleNew builds an engine that shares its denylist through Redis.
func ExampleNew() {
	mr, _ := miniredis.Run()
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cfg := tokenauth.DefaultConfig()
	cfg.JWT.Secret = "example-secret-example-secret-000000"
	cfg.Audit.Enabled = false

	engine, err := tokenauth.New().WithConfig(cfg).WithRedis(rdb).Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer engine.Close()

	pair, _ := engine.Issue(context.Background(), "alice", "")
	fmt.Println(pair.AccessExpiresIn)

	revoked, _ := engine.Revoke(context.Background(), pair.AccessToken)
	result, _ := engine.Validate(context.Background(), pair.AccessToken, "")
	fmt.Println(revoked, result.Reason)
	// Output:
	// 3600
	// true revoked
}

// ExampleEngine_Refresh exchanges a refresh token under rotation.
func ExampleEngine_Refresh() {
	cfg := tokenauth.DefaultConfig()
	cfg.JWT.Secret = "example-secret-example-secret-000000"
	cfg.Audit.Enabled = false
	cfg.Refresh.RotationEnabled = true

	engine, _ := tokenauth.New().WithConfig(cfg).Build()
	defer engine.Close()

	pair, _ := engine.Issue(context.Background(), "alice", "")
	_, err := engine.Refresh(context.Background(), pair.RefreshToken, "")
	fmt.Println(err == nil)

	_, err = engine.Refresh(context.Background(), pair.RefreshToken, "")
	fmt.Println(err)
	// Output:
	// true
	// refresh: token rejected: revoked
}

// This test guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = tokenauth.New

	var _ *tokenauth.Engine
	var _ tokenauth.Config
	var _ tokenauth.TokenPair
	var _ tokenauth.ValidationResult
	var _ tokenauth.AuditSink = tokenauth.NoOpSink{}
	var _ tokenauth.PrincipalDirectory

	var _ error = tokenauth.ErrConfiguration
	var _ error = tokenauth.ErrRateLimitExceeded
	var _ error = tokenauth.ErrIssuanceFailed
	var _ error = tokenauth.ErrTokenRejected
	var _ error = tokenauth.ErrRevocationUnavailable
	var _ error = tokenauth.ErrInvalidSubject
	var _ error = tokenauth.ErrEngineNotReady
	var _ error = &tokenauth.RejectionError{}

	var _ func(*tokenauth.Engine, tokenauth.PrincipalDirectory) func(http.Handler) http.Handler = middleware.Guard

	var _ func(*tokenauth.Engine, context.Context, string, string) (tokenauth.TokenPair, error) = (*tokenauth.Engine).Issue
	var _ func(*tokenauth.Engine, context.Context, string, string) (tokenauth.ValidationResult, error) = (*tokenauth.Engine).Validate
	var _ func(*tokenauth.Engine, context.Context, string, string) (tokenauth.TokenPair, error) = (*tokenauth.Engine).Refresh
	var _ func(*tokenauth.Engine, context.Context, string) (bool, error) = (*tokenauth.Engine).Revoke
}
