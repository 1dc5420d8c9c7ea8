package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

func runKeygen(_ context.Context, env *cmdEnv, args []string) error {
	var outDir string
	var bits int
	env.flags.StringVar(&outDir, "out-dir", ".", "directory for private.pem and public.pem")
	env.flags.IntVar(&bits, "bits", 2048, "RSA modulus size")
	if _, err := env.parse(args, 0); err != nil {
		return err
	}
	if bits < 2048 {
		return fmt.Errorf("keygen: --bits must be >= 2048")
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("keygen: %w", err)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("keygen: marshal private key: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return fmt.Errorf("keygen: marshal public key: %w", err)
	}

	privPath := filepath.Join(outDir, "private.pem")
	pubPath := filepath.Join(outDir, "public.pem")
	if err := writePEM(privPath, "PRIVATE KEY", privDER, 0o600); err != nil {
		return err
	}
	if err := writePEM(pubPath, "PUBLIC KEY", pubDER, 0o644); err != nil {
		return err
	}
	return env.print(map[string]string{"private_key": privPath, "public_key": pubPath})
}

func writePEM(path, blockType string, der []byte, mode os.FileMode) error {
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("keygen: write %s: %w", path, err)
	}
	return nil
}
