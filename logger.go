package gesturestore

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with gesturestore-specific helpers.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogAdd logs an add operation.
func (l *Logger) LogAdd(entry string, gestureID int64, err error) {
	if err != nil {
		l.Error("add failed",
			"entry", entry,
			"gesture_id", gestureID,
			"error", err,
		)
	} else {
		l.Debug("gesture added",
			"entry", entry,
			"gesture_id", gestureID,
		)
	}
}

// LogAddBatch logs a batch add operation.
func (l *Logger) LogAddBatch(entry string, count int) {
	l.Debug("gestures added",
		"entry", entry,
		"count", count,
	)
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(entry string, gestureID int64, err error) {
	if err != nil {
		l.Error("remove failed",
			"entry", entry,
			"gesture_id", gestureID,
			"error", err,
		)
	} else {
		l.Debug("gesture removed",
			"entry", entry,
			"gesture_id", gestureID,
		)
	}
}

// LogRemoveEntry logs an entry removal.
func (l *Logger) LogRemoveEntry(entry string) {
	l.Debug("entry removed",
		"entry", entry,
	)
}

// LogRecognize logs a recognition.
func (l *Logger) LogRecognize(gestureID int64, predictions int, err error) {
	if err != nil {
		l.Error("recognize failed",
			"gesture_id", gestureID,
			"error", err,
		)
	} else {
		l.Debug("recognize completed",
			"gesture_id", gestureID,
			"predictions", predictions,
		)
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(filename string, err error) {
	if err != nil {
		l.Error("save failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.Info("library saved",
			"filename", filename,
		)
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(filename string, entries int, err error) {
	if err != nil {
		l.Error("load failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.Info("library loaded",
			"filename", filename,
			"entries", entries,
		)
	}
}

// LogSnapshot logs a snapshot export or import.
func (l *Logger) LogSnapshot(op, filename string, err error) {
	if err != nil {
		l.Error("snapshot "+op+" failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.Info("snapshot "+op+" completed",
			"filename", filename,
		)
	}
}
