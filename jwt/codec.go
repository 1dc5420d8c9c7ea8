package jwt

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec signs and verifies tokens. It is stateless apart from its clock and
// safe for concurrent use.
type Codec struct {
	now func() time.Time
}

// NewCodec returns a codec reading time from now. A nil clock uses time.Now.
func NewCodec(now func() time.Time) *Codec {
	if now == nil {
		now = time.Now
	}
	return &Codec{now: now}
}

// Encode signs claims with alg.
func (c *Codec) Encode(claims *Claims, alg *Algorithm) (string, error) {
	if err := alg.validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyMaterial, err)
	}
	if claims == nil {
		return "", errors.New("jwt: nil claims")
	}
	return jwt.NewWithClaims(alg.method, claims).SignedString(alg.signKey)
}

// Decode parses token without verifying its signature or any claim.
func (c *Codec) Decode(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	return claims, nil
}

// DecodeAndVerify parses token, checks that it was signed by alg, and checks exp,
// iss, and aud. The nbf claim is left to the caller.
func (c *Codec) DecodeAndVerify(token string, alg *Algorithm, issuer, audience string) (*Claims, error) {
	if err := alg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyMaterial, err)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{alg.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	parsed, err := parser.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return alg.verifyKey, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrSignatureInvalid
	}
	if claims.ExpiresAt == nil {
		return claims, fmt.Errorf("%w: exp missing", ErrClaimsInvalid)
	}
	if claims.ExpiredAt(c.now()) {
		return claims, ErrTokenExpired
	}
	if issuer != "" && claims.Issuer != issuer {
		return claims, fmt.Errorf("%w: issuer mismatch", ErrClaimsInvalid)
	}
	if audience != "" && !slices.Contains(claims.Audience, audience) {
		return claims, fmt.Errorf("%w: audience mismatch", ErrClaimsInvalid)
	}
	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
