package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the CLI logger. Output is human-readable on stderr so it
// never interleaves with command output. The level comes from
// ADS_LOG_LEVEL (trace|debug|info|warn|error), defaulting to info.
func New() zerolog.Logger {
	level := zerolog.InfoLevel
	if s := os.Getenv("ADS_LOG_LEVEL"); s != "" {
		if parsed, err := zerolog.ParseLevel(s); err == nil {
			level = parsed
		}
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).With().Timestamp().Logger().Level(level)
}
