package jwt

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// LoadRSAPrivateKey reads a PEM-armored RSA private key. PKCS#8 is tried first,
// then PKCS#1.
func LoadRSAPrivateKey(path string) (*rsa.PrivateKey, error) {
	der, err := readKeyBody(path)
	if err != nil {
		return nil, err
	}

	if parsed, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s does not hold an rsa private key", ErrKeyMaterial, path)
		}
		return key, nil
	}
	key, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: parse rsa private key %s: %v", ErrKeyMaterial, path, err)
	}
	return key, nil
}

// LoadRSAPublicKey reads a PEM-armored RSA public key. PKIX is tried first,
// then PKCS#1.
func LoadRSAPublicKey(path string) (*rsa.PublicKey, error) {
	der, err := readKeyBody(path)
	if err != nil {
		return nil, err
	}

	if parsed, err := x509.ParsePKIXPublicKey(der); err == nil {
		key, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s does not hold an rsa public key", ErrKeyMaterial, path)
		}
		return key, nil
	}
	key, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: parse rsa public key %s: %v", ErrKeyMaterial, path, err)
	}
	return key, nil
}

// readKeyBody strips the armor lines of a PEM file and base64-decodes the body.
func readKeyBody(path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: key path not configured", ErrKeyMaterial)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read key file: %v", ErrKeyMaterial, err)
	}

	var body strings.Builder
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-----") {
			continue
		}
		body.WriteString(line)
	}
	if body.Len() == 0 {
		return nil, fmt.Errorf("%w: key file %s is empty", ErrKeyMaterial, path)
	}

	der, err := base64.StdEncoding.DecodeString(body.String())
	if err != nil {
		return nil, fmt.Errorf("%w: decode key file %s: %v", ErrKeyMaterial, path, err)
	}
	return der, nil
}
