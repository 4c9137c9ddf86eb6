// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error, fatal, panic.
	// Default: info
	Level string

	// Format is json or console.
	// Default: json (what hosting platforms ingest)
	Format string

	// Caller adds file:line to every event.
	Caller bool

	// Timestamp enables the time field.
	// Default: true
	Timestamp bool

	// Output defaults to os.Stdout so platform log collectors pick it up.
	Output io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stdout,
	}
}

// levels maps accepted LOG_LEVEL values to zerolog levels.
var levels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"disabled": zerolog.Disabled,
}

// current is the process logger. Init swaps it atomically so concurrent
// writers never see a half-built logger.
var current atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	Init(DefaultConfig())
}

// Init (re)configures the global logger. Zero fields take defaults.
func Init(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	out := cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	l := ctx.Logger()
	current.Store(&l)
}

// parseLevel falls back to info for unknown or empty values.
func parseLevel(level string) zerolog.Level {
	if l, ok := levels[strings.ToLower(level)]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := levels[strings.ToLower(level)]
	return ok
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	return *current.Load()
}

// With creates a child logger context.
func With() zerolog.Context {
	return current.Load().With()
}

// Debug starts a debug event.
func Debug() *zerolog.Event { return current.Load().Debug() }

// Info starts an info event.
//
//	logging.Info().Msg("Supervisor started")
func Info() *zerolog.Event { return current.Load().Info() }

// Warn starts a warning event.
func Warn() *zerolog.Event { return current.Load().Warn() }

// Error starts an error event.
func Error() *zerolog.Event { return current.Load().Error() }

// Fatal starts a fatal event; os.Exit(1) follows the write.
func Fatal() *zerolog.Event { return current.Load().Fatal() }

// Err starts an error-level event carrying err (info level when err is nil).
func Err(err error) *zerolog.Event { return current.Load().Err(err) }

// WithComponent creates a child logger tagged with a component field.
//
//	log := logging.WithComponent("supervisor")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
