// Package log configures the zerolog logger shared across the renderer's
// components.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the root logger. When pretty is true it writes
// human-readable, colored output to w (intended for an interactive
// terminal); otherwise it writes newline-delimited JSON, suited to
// redirection into log aggregation.
func New(w io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// NewDefault builds the root logger writing pretty output to stderr at
// info level, the configuration cmd/raytrace uses outside of --verbose.
func NewDefault() zerolog.Logger {
	return New(os.Stderr, zerolog.InfoLevel, true)
}

// Component returns a child logger tagged with the given component name,
// so log lines can be filtered by the subsystem that emitted them.
func Component(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}
