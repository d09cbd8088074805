// Package logging provides structured logging for the data-flow analysis
// engine, built on log/slog. The surface is deliberately narrow: the driver
// only ever tags a diagnostic with the run it belongs to (via WithField),
// the method and context a lifecycle event concerns (via WithMethod and
// WithContextID), and logs at debug, info, or warn — so that is all Logger
// exposes.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger. Every With* method returns a new Logger that
// shares the underlying handler but carries one more attribute, the same
// immutable-chaining shape log/slog itself uses.
type Logger struct {
	slog *slog.Logger
}

// Config controls how New builds a Logger.
type Config struct {
	// Level is the minimum level that reaches Output: "debug", "info",
	// "warn" (or "warning"), or "error".
	Level string
	// Output is where logs are written. Defaults to os.Stdout when nil.
	Output io.Writer
	// Pretty switches from JSON to a human-readable text handler.
	Pretty bool
	// IncludeCaller adds the source file and line to each record.
	IncludeCaller bool
}

// DefaultConfig returns the info-level, JSON-to-stdout configuration.
func DefaultConfig() Config {
	return Config{Level: "info", Output: os.Stdout}
}

// Validate reports ErrInvalidLogLevel if cfg.Level isn't one New recognises.
func (c Config) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Level)
	}
}

// New builds a Logger from cfg. It fails if cfg.Level names a level New
// doesn't recognise; callers that only ever pass DefaultConfig or a
// flag-validated level can safely discard the error.
func New(cfg Config) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}

	var handler slog.Handler
	if cfg.Pretty {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	return &Logger{slog: slog.New(handler)}, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithMethod tags subsequent log calls with the client method a diagnostic
// concerns.
func (l *Logger) WithMethod(method string) *Logger {
	return &Logger{slog: l.slog.With(slog.String("method", method))}
}

// WithContextID tags subsequent log calls with the analysis context (see
// package contextcache) a diagnostic concerns.
func (l *Logger) WithContextID(contextID int64) *Logger {
	return &Logger{slog: l.slog.With(slog.Int64("context_id", contextID))}
}

// WithField tags subsequent log calls with an arbitrary key/value pair, e.g.
// run_id or direction.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{slog: l.slog.With(slog.Any(key, value))}
}

func (l *Logger) Debug(msg string) { l.slog.Debug(msg) }

func (l *Logger) Info(msg string) { l.slog.Info(msg) }

func (l *Logger) Warn(msg string) { l.slog.Warn(msg) }
