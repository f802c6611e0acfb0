// Package logger builds the structured console logger shared by all
// commands.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the console logger. Verbose enables the debug events the
// inference engine emits for every resolution decision.
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// NewWithWriter returns a debug-level logger writing to w, for tests.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
