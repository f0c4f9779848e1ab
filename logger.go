package posterize

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with posterize-specific context.
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

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
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

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a pixel count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("pixels", count),
	}
}

// WithSource adds a source name field (useful for tagging batch jobs).
func (l *Logger) WithSource(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", name),
	}
}

// LogIteration logs one finished assignment/update cycle.
func (l *Logger) LogIteration(ctx context.Context, index, reassigned, empty int) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", index,
		"reassigned", reassigned,
		"empty_clusters", empty,
	)
}

// LogQuantize logs a quantize operation.
func (l *Logger) LogQuantize(ctx context.Context, k, pixels int, res *Result, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "quantize failed",
			"k", k,
			"pixels", pixels,
			"error", err,
		)
	case !res.Converged:
		l.WarnContext(ctx, "quantize stopped before convergence",
			"k", k,
			"pixels", pixels,
			"iterations", res.Iterations,
		)
	default:
		l.DebugContext(ctx, "quantize completed",
			"k", k,
			"clusters", res.Clusters,
			"pixels", pixels,
			"iterations", res.Iterations,
			"empty_clusters", res.EmptyClusters,
			"duration", res.Duration,
		)
	}
}

// LogJob logs a finished batch job.
func (l *Logger) LogJob(ctx context.Context, src, dst string, colorsBefore, colorsAfter int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "job failed",
			"source", src,
			"destination", dst,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "job completed",
			"source", src,
			"destination", dst,
			"colors_before", colorsBefore,
			"colors_after", colorsAfter,
		)
	}
}
