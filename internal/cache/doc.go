// Package cache provides a compute-once, refresh-on-expiry value cell used to hold
// resolved signing material.
//
// # Read path
//
// Readers load an immutable snapshot through an atomic pointer and never take a lock
// while the snapshot is fresh. When the snapshot is missing or stale, readers serialize
// on a mutex, re-check, and exactly one of them runs the loader; the rest observe the
// value it stored.
//
// # What this package must NOT do
//
//   - Cache loader failures (a failed load leaves the previous state untouched).
//   - Import tokenauth or any sibling package.
package cache
