package jwt

import "errors"

var (
	// ErrKeyMaterial reports a missing or malformed secret or RSA key.
	ErrKeyMaterial = errors.New("jwt: missing or malformed key material")
	// ErrTokenMalformed reports a token string that cannot be parsed.
	ErrTokenMalformed = errors.New("jwt: token malformed")
	// ErrSignatureInvalid reports a signature that does not verify, including a
	// signing method that differs from the resolved algorithm.
	ErrSignatureInvalid = errors.New("jwt: signature invalid")
	// ErrTokenExpired reports a verified token whose exp claim has passed.
	ErrTokenExpired = errors.New("jwt: token expired")
	// ErrClaimsInvalid reports an issuer or audience mismatch, or a missing exp claim.
	ErrClaimsInvalid = errors.New("jwt: claims invalid")
)
