// Package logging builds the process logger. Components never reach for a
// package-level singleton; main constructs one logger here and hands child
// loggers (tagged with a component name) to each constructor.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New creates a zerolog logger at the given level. Format "console" (or
// "pretty") writes human-readable output; anything else writes JSON lines.
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	switch strings.ToLower(format) {
	case "console", "pretty":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	default:
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(lvl).With().Timestamp().Logger()
}
