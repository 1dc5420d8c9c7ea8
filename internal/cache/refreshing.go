package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// Loader computes a fresh value for a Refreshing cell.
type Loader[T any] func() (T, error)

type snapshot[T any] struct {
	value      T
	resolvedAt time.Time
}

// Refreshing holds a value that is recomputed after a fixed TTL.
type Refreshing[T any] struct {
	ttl  time.Duration
	now  func() time.Time
	load Loader[T]

	mu      sync.Mutex
	current atomic.Pointer[snapshot[T]]
	loads   atomic.Uint64
}

// NewRefreshing returns a cell that calls load at most once per ttl.
// A nil now defaults to time.Now.
func NewRefreshing[T any](ttl time.Duration, now func() time.Time, load Loader[T]) *Refreshing[T] {
	if now == nil {
		now = time.Now
	}
	return &Refreshing[T]{
		ttl:  ttl,
		now:  now,
		load: load,
	}
}

// Get returns the cached value, reloading it when the snapshot has expired.
func (r *Refreshing[T]) Get() (T, error) {
	if snap := r.current.Load(); r.fresh(snap) {
		return snap.value, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if snap := r.current.Load(); r.fresh(snap) {
		return snap.value, nil
	}

	value, err := r.load()
	r.loads.Add(1)
	if err != nil {
		var zero T
		return zero, err
	}

	r.current.Store(&snapshot[T]{value: value, resolvedAt: r.now()})
	return value, nil
}

// Invalidate drops the current snapshot so the next Get reloads.
func (r *Refreshing[T]) Invalidate() {
	r.current.Store(nil)
}

// ResolvedAt reports when the current snapshot was computed.
func (r *Refreshing[T]) ResolvedAt() (time.Time, bool) {
	snap := r.current.Load()
	if snap == nil {
		return time.Time{}, false
	}
	return snap.resolvedAt, true
}

// Loads returns how many times the loader has run.
func (r *Refreshing[T]) Loads() uint64 {
	return r.loads.Load()
}

func (r *Refreshing[T]) fresh(snap *snapshot[T]) bool {
	return snap != nil && r.now().Sub(snap.resolvedAt) < r.ttl
}
