// Package telemetry provides logger construction for the medibook
// client. Production mode emits JSON records; development mode uses the
// zerolog console writer so interactive sessions stay readable.
package telemetry

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds the process-wide logger. All client packages receive
// this logger by value and attach their own component field.
func NewLogger(env string) zerolog.Logger {
	return NewLoggerTo(os.Stderr, env)
}

// NewLoggerTo is NewLogger with an explicit sink, used by tests.
func NewLoggerTo(w io.Writer, env string) zerolog.Logger {
	if env == "production" {
		return zerolog.New(w).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything. Handy default for
// zero-value components in tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
