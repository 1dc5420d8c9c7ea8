package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Name identifies one of the supported signing algorithms.
type Name string

const (
	HS256 Name = "HS256"
	HS384 Name = "HS384"
	HS512 Name = "HS512"
	RS256 Name = "RS256"
	RS384 Name = "RS384"
	RS512 Name = "RS512"
)

// ParseName maps a configured algorithm name onto a supported Name. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseName(s string) (Name, bool) {
	switch n := Name(strings.ToUpper(strings.TrimSpace(s))); n {
	case HS256, HS384, HS512, RS256, RS384, RS512:
		return n, true
	default:
		return "", false
	}
}

// IsRSA reports whether the algorithm signs with an RSA key pair.
func (n Name) IsRSA() bool {
	return n == RS256 || n == RS384 || n == RS512
}

// Algorithm is a resolved signing algorithm together with its key material.
// Values are immutable once built.
type Algorithm struct {
	name      Name
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
}

// NewHMAC builds an HMAC algorithm over secret.
func NewHMAC(name Name, secret []byte) (*Algorithm, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: hmac secret not configured", ErrKeyMaterial)
	}
	var method jwt.SigningMethod
	switch name {
	case HS256:
		method = jwt.SigningMethodHS256
	case HS384:
		method = jwt.SigningMethodHS384
	case HS512:
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("jwt: %s is not an hmac algorithm", name)
	}

	key := make([]byte, len(secret))
	copy(key, secret)
	return &Algorithm{name: name, method: method, signKey: key, verifyKey: key}, nil
}

// NewRSA builds an RSA algorithm. Both halves of the key pair are required.
func NewRSA(name Name, private *rsa.PrivateKey, public *rsa.PublicKey) (*Algorithm, error) {
	if private == nil || public == nil {
		return nil, fmt.Errorf("%w: rsa key pair incomplete", ErrKeyMaterial)
	}
	var method jwt.SigningMethod
	switch name {
	case RS256:
		method = jwt.SigningMethodRS256
	case RS384:
		method = jwt.SigningMethodRS384
	case RS512:
		method = jwt.SigningMethodRS512
	default:
		return nil, fmt.Errorf("jwt: %s is not an rsa algorithm", name)
	}
	return &Algorithm{name: name, method: method, signKey: private, verifyKey: public}, nil
}

// Name returns the algorithm name.
func (a *Algorithm) Name() Name {
	if a == nil {
		return ""
	}
	return a.name
}

// Method returns the golang-jwt signing method.
func (a *Algorithm) Method() jwt.SigningMethod {
	if a == nil {
		return nil
	}
	return a.method
}

func (a *Algorithm) validate() error {
	if a == nil || a.method == nil || a.signKey == nil || a.verifyKey == nil {
		return errors.New("jwt: algorithm not resolved")
	}
	return nil
}
