// Package audit implements async event dispatching for tokenauth operations.
//
// # Components
//
//   - [Sink]: interface for event consumers (channel, JSON writer, slog, no-op).
//   - [Dispatcher]: buffered async relay with drop-if-full / block-if-full semantics
//     that recovers sink panics.
//   - [Event]: audit record with ULID id, timestamp, operation, subject, client IP, outcome.
//
// # Architecture boundaries
//
// This package owns event buffering and sink delivery. It does NOT decide which events
// to emit. That responsibility belongs to the Engine.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on business logic.
//   - Import tokenauth or any sibling internal package.
//   - Perform network I/O beyond what a caller-supplied Sink does.
package audit
