package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims is the claim set carried by every issued token.
type Claims struct {
	UserID   string    `json:"userId,omitempty"`
	Type     TokenType `json:"type,omitempty"`
	ClientIP string    `json:"clientIp,omitempty"`
	TokenID  string    `json:"tokenId,omitempty"`
	jwt.RegisteredClaims
}

// Template describes one claim set to be built by [NewClaims].
type Template struct {
	Subject  string
	Type     TokenType
	ClientIP string
	TokenID  string
	Issuer   string
	Audience string
	IssuedAt time.Time
	TTL      time.Duration
}

// NewClaims builds a claim set with nbf equal to iat and exp at iat+TTL.
func NewClaims(t Template) *Claims {
	issued := jwt.NewNumericDate(t.IssuedAt)
	claims := &Claims{
		UserID:   t.Subject,
		Type:     t.Type,
		ClientIP: t.ClientIP,
		TokenID:  t.TokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   t.Subject,
			Issuer:    t.Issuer,
			IssuedAt:  issued,
			NotBefore: issued,
			ExpiresAt: jwt.NewNumericDate(t.IssuedAt.Add(t.TTL)),
		},
	}
	if t.Audience != "" {
		claims.Audience = jwt.ClaimStrings{t.Audience}
	}
	return claims
}

// Principal returns the userId claim, falling back to sub.
func (c *Claims) Principal() string {
	if c == nil {
		return ""
	}
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// ExpiredAt reports whether now is past the exp claim, compared at the
// whole-second precision the claim is encoded with. A token without exp
// never expires.
func (c *Claims) ExpiredAt(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}
	return now.Truncate(time.Second).After(c.ExpiresAt.Time)
}

// NotYetValidAt reports whether now is before the nbf claim, at whole-second
// precision.
func (c *Claims) NotYetValidAt(now time.Time) bool {
	if c == nil || c.NotBefore == nil {
		return false
	}
	return now.Truncate(time.Second).Before(c.NotBefore.Time)
}
