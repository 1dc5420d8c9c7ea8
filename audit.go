package tokenauth

import (
	"io"
	"log/slog"

	"github.com/MrEthical07/tokenauth/internal/audit"
)

// AuditEvent is one audit record: {id, operation, subject, client_ip, success,
// message, timestamp}.
type AuditEvent = audit.Event

// AuditSink receives audit events on the dispatcher goroutine. Emit must not
// assume it runs on the caller's goroutine; panics are recovered and logged.
type AuditSink = audit.Sink

// AuditOperation names the engine operation an event describes.
type AuditOperation = audit.Operation

const (
	AuditIssue    = audit.OpIssue
	AuditValidate = audit.OpValidate
	AuditRefresh  = audit.OpRefresh
	AuditRevoke   = audit.OpRevoke
)

// NoOpSink drops audit events.
type NoOpSink = audit.NoOpSink

// ChannelSink writes audit events into a buffered channel.
type ChannelSink = audit.ChannelSink

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink = audit.JSONWriterSink

// SlogSink records each event as a structured log line.
type SlogSink = audit.SlogSink

func NewChannelSink(buffer int) *ChannelSink { return audit.NewChannelSink(buffer) }

func NewJSONWriterSink(w io.Writer) *JSONWriterSink { return audit.NewJSONWriterSink(w) }

func NewSlogSink(logger *slog.Logger) *SlogSink { return audit.NewSlogSink(logger) }
