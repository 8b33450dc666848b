// Package log configures the process-wide zerolog logger used for
// diagnostic output. User-facing results go to stdout through the cli
// package; everything logged here goes to stderr.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stderr)
	Console bool      // human-readable output instead of JSON lines
	NoColor bool      // disable ANSI colors in console output
}

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
)

// Configure replaces the global logger. Unlike a once-only setup it may be
// called again after flags are parsed.
func Configure(cfg Config) {
	level := zerolog.WarnLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	} else if env := os.Getenv("CHANGELINT_LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if cfg.Console {
		writer = zerolog.ConsoleWriter{
			Out:        writer,
			NoColor:    cfg.NoColor,
			TimeFormat: time.Kitchen,
		}
	}

	l := zerolog.New(writer).Level(level).With().Timestamp().Logger()

	mu.Lock()
	base = l
	mu.Unlock()
}

// LevelFor maps the CLI verbosity flags onto a zerolog level name.
func LevelFor(debug, verbose bool) string {
	switch {
	case debug:
		return zerolog.LevelDebugValue
	case verbose:
		return zerolog.LevelInfoValue
	default:
		return zerolog.LevelWarnValue
	}
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}

// Printf returns a printf-style function that logs at debug level for the
// given component. Packages that accept a plain func(string, ...any) hook
// are wired through this.
func Printf(component string) func(format string, args ...any) {
	return func(format string, args ...any) {
		l := WithComponent(component)
		l.Debug().Msgf(format, args...)
	}
}
