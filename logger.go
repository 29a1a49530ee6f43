package arkiv

import (
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/arkiv/wire"
)

// Logger wraps slog.Logger with arkiv-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithFormat adds the wire format fields to the logger.
func (l *Logger) WithFormat(f wire.Format) *Logger {
	return &Logger{
		Logger: l.Logger.With("width", f.Width.String(), "padded", !f.NoPadding),
	}
}

// LogMarshal logs a marshal operation.
func (l *Logger) LogMarshal(size int, duration time.Duration, err error) {
	if err != nil {
		l.Error("marshal failed",
			"error", err,
			"duration", duration,
		)
	} else {
		l.Debug("marshal completed",
			"bytes", size,
			"duration", duration,
		)
	}
}

// LogValidate logs a validation pass.
func (l *Logger) LogValidate(size int, duration time.Duration, err error) {
	if err != nil {
		l.Warn("validation failed",
			"bytes", size,
			"error", err,
			"duration", duration,
		)
	} else {
		l.Debug("validation completed",
			"bytes", size,
			"duration", duration,
		)
	}
}
