package launcherkit

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/launcherkit/iconcache"
	"github.com/hupe1980/launcherkit/search"
)

// Logger wraps slog.Logger with launcherkit field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// A nil handler logs text at info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithKey adds the component key field.
func (l *Logger) WithKey(key iconcache.ComponentKey) *Logger {
	return &Logger{Logger: l.Logger.With("key", key.String())}
}

// LogMerge logs a search merge.
func (l *Logger) LogMerge(ctx context.Context, stats search.MergeStats, d time.Duration) {
	l.DebugContext(ctx, "search merge completed",
		"device", stats.DeviceCount,
		"web", stats.WebCount,
		"output", stats.OutputCount,
		"insertion_index", stats.InsertionIndex,
		"duration", d,
	)
}

// LogIconLoad logs an icon load.
func (l *Logger) LogIconLoad(ctx context.Context, key iconcache.ComponentKey, lowRes bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "icon load failed",
			"key", key.String(),
			"low_res", lowRes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "icon loaded",
			"key", key.String(),
			"low_res", lowRes,
		)
	}
}

// LogIconStore logs an icon store.
func (l *Logger) LogIconStore(ctx context.Context, key iconcache.ComponentKey, err error) {
	if err != nil {
		l.ErrorContext(ctx, "icon store failed",
			"key", key.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "icon stored",
			"key", key.String(),
		)
	}
}

// LogCommit logs a cache commit.
func (l *Logger) LogCommit(ctx context.Context, version uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "commit failed",
			"version", version,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "commit completed",
			"version", version,
		)
	}
}
