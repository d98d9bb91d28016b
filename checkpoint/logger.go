package checkpoint

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with the checkpoint field names.
type Logger struct {
	*slog.Logger
}

// NewLogger returns a Logger over handler, or a text logger on stderr at
// info level when handler is nil.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger logs JSON to stderr at level and above.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger logs text to stderr at level and above.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithGeneration tags records with a checkpoint generation.
func (l *Logger) WithGeneration(gen uint64) *Logger {
	return &Logger{Logger: l.Logger.With("generation", gen)}
}

// WithParticipant tags records with a participant name.
func (l *Logger) WithParticipant(name string) *Logger {
	return &Logger{Logger: l.Logger.With("participant", name)}
}

// LogSave logs the outcome of writing one participant.
func (l *Logger) LogSave(ctx context.Context, name string, stored, raw int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "participant save failed",
			"participant", name,
			"error", err,
		)

		return
	}

	l.DebugContext(ctx, "participant saved",
		"participant", name,
		"bytes", stored,
		"raw_bytes", raw,
	)
}

// LogRestore logs the outcome of rebuilding one participant.
func (l *Logger) LogRestore(ctx context.Context, name string, stored int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "participant restore failed",
			"participant", name,
			"error", err,
		)

		return
	}

	l.DebugContext(ctx, "participant restored",
		"participant", name,
		"bytes", stored,
	)
}

// LogCheckpoint logs a committed or failed generation.
func (l *Logger) LogCheckpoint(ctx context.Context, gen uint64, written, reused int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "checkpoint failed",
			"generation", gen,
			"error", err,
		)

		return
	}

	l.InfoContext(ctx, "checkpoint committed",
		"generation", gen,
		"written", written,
		"reused", reused,
		"duration", d,
	)
}

// LogPrune logs garbage collection of old generations.
func (l *Logger) LogPrune(ctx context.Context, manifests, blobs int, err error) {
	if err != nil {
		l.WarnContext(ctx, "prune failed", "error", err)
		return
	}

	if manifests > 0 || blobs > 0 {
		l.InfoContext(ctx, "pruned old generations",
			"manifests", manifests,
			"blobs", blobs,
		)
	}
}
