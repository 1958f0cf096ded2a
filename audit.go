package ivaltauth

import (
	"io"
	"log/slog"

	"github.com/vksharma7664/ivaltauth/internal/audit"
)

// Audit model re-exports. Hosts consume sinks through the root package;
// the canonical definitions live in internal/audit.
type (
	NoOpSink       = audit.NoOpSink
	ChannelSink    = audit.ChannelSink
	JSONWriterSink = audit.JSONWriterSink
	SlogSink       = audit.SlogSink
)

// NewChannelSink builds a sink backed by a buffered channel, mostly
// useful in tests and host-side fan-in.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink builds a sink writing one JSON object per line.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

// NewSlogSink builds a sink that logs events through a structured
// logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return audit.NewSlogSink(logger)
}
