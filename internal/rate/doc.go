// Package rate provides the fixed-window request limiter shared by every
// tokenauth operation.
//
// # Window semantics
//
// One-minute fixed windows. [FixedWindow] keeps {count, windowStart} in process
// and resets when a caller observes that a full window has elapsed.
// [RedisWindow] shares the count across processes: INCR on a key per window
// index + EXPIRE on the first hit. Key prefix:
//   - <prefix>:rl:<window index>
//
// # What this package must NOT do
//
//   - Decide whether limiting is enabled (the Engine only wires a limiter when it is).
//   - Be imported outside the tokenauth module.
package rate
