package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Provider resolves a configuration key to its raw string value.
type Provider interface {
	Lookup(key string) (string, bool)
}

// Map is an in-memory provider.
type Map map[string]string

// Lookup implements Provider.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Env reads keys from the process environment. The key jwt.access.expire.minutes
// maps to JWT_ACCESS_EXPIRE_MINUTES, preceded by Prefix and an underscore when
// Prefix is set.
type Env struct {
	Prefix string
	// lookup defaults to os.LookupEnv.
	lookup func(string) (string, bool)
}

// EnvName returns the environment variable consulted for key.
func (e Env) EnvName(key string) string {
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if e.Prefix != "" {
		name = strings.ToUpper(strings.TrimSuffix(e.Prefix, "_")) + "_" + name
	}
	return name
}

// Lookup implements Provider.
func (e Env) Lookup(key string) (string, bool) {
	lookup := e.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return lookup(e.EnvName(key))
}

// Chain consults each provider in order and returns the first hit.
type Chain []Provider

// Lookup implements Provider.
func (c Chain) Lookup(key string) (string, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if v, ok := p.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// String returns the trimmed value for key, or def when the key is absent or blank.
func String(p Provider, key, def string) string {
	if p == nil {
		return def
	}
	v, ok := p.Lookup(key)
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// Bool is true only when the value equals "true" ignoring case. An absent key
// yields def.
func Bool(p Provider, key string, def bool) bool {
	if p == nil {
		return def
	}
	v, ok := p.Lookup(key)
	if !ok {
		return def
	}
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// Int parses key as a base-10 integer. Absent keys yield def; malformed values
// log a warning and yield def.
func Int(p Provider, key string, def int, logger *slog.Logger) int {
	if p == nil {
		return def
	}
	v, ok := p.Lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("invalid integer config value, using default",
			slog.String("key", key),
			slog.Int("default", def))
		return def
	}
	return n
}
