package revocation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Memory is an in-process Store.
type Memory struct {
	expiry ExpiryFunc
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]struct{}
}

// NewMemory returns an empty in-memory store. expiry is consulted by Sweep; a
// nil clock uses time.Now.
func NewMemory(expiry ExpiryFunc, now func() time.Time) (*Memory, error) {
	if expiry == nil {
		return nil, errors.New("revocation: expiry func is required")
	}
	if now == nil {
		now = time.Now
	}
	return &Memory{expiry: expiry, now: now, entries: make(map[string]struct{})}, nil
}

// Add implements Store.
func (m *Memory) Add(_ context.Context, token string) (bool, error) {
	token = normalize(token)
	if token == "" {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[token]; ok {
		return false, nil
	}
	m.entries[token] = struct{}{}
	return true, nil
}

// Contains implements Store.
func (m *Memory) Contains(_ context.Context, token string) (bool, error) {
	token = normalize(token)
	if token == "" {
		return false, nil
	}

	m.mu.RLock()
	_, ok := m.entries[token]
	m.mu.RUnlock()
	return ok, nil
}

// Sweep implements Store. Tokens that cannot be decoded are removed.
func (m *Memory) Sweep(_ context.Context) (int, error) {
	now := m.now().Truncate(time.Second)

	m.mu.RLock()
	stale := make([]string, 0)
	for token := range m.entries {
		exp, ok := m.expiry(token)
		if !ok || now.After(exp) {
			stale = append(stale, token)
		}
	}
	m.mu.RUnlock()

	if len(stale) == 0 {
		return 0, nil
	}

	m.mu.Lock()
	removed := 0
	for _, token := range stale {
		if _, ok := m.entries[token]; ok {
			delete(m.entries, token)
			removed++
		}
	}
	m.mu.Unlock()
	return removed, nil
}

// Len implements Store.
func (m *Memory) Len(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}
