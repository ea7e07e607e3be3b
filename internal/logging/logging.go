// Package logging builds the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger writing to out: human-readable console output when
// pretty is set, JSON lines otherwise. Unknown levels fall back to info.
func New(out io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Init builds a stderr logger and installs it as the global zerolog logger.
func Init(level string, pretty bool) zerolog.Logger {
	logger := New(os.Stderr, level, pretty)
	log.Logger = logger
	return logger
}
