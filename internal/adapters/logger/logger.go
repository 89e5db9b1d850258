// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	level    *slog.LevelVar
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger instance writing pretty output to stderr at info level.
func New() ports.Logger {
	return newLogger()
}

func newLogger() *Logger {
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	l := &Logger{level: level, output: os.Stderr}
	l.rebuild()
	return l
}

// rebuild swaps the slog handler. Callers must hold mu or own l exclusively.
func (l *Logger) rebuild() {
	w := l.output
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: l.level}
	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = NewPrettyHandler(w, opts)
	}
	l.logger = slog.New(handler)
}

// SetOutput updates the logger's output destination.
// It preserves the current JSON mode and level. If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetVerbosity changes the minimum level of logged records.
func (l *Logger) SetVerbosity(v domain.Verbosity) {
	l.level.Set(levelFor(v))
}

func levelFor(v domain.Verbosity) slog.Level {
	switch v {
	case domain.VerbosityQuiet:
		return slog.LevelError
	case domain.VerbosityMinimal:
		return slog.LevelWarn
	case domain.VerbosityDetailed, domain.VerbosityDiagnostic:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Debug logs a diagnostic message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error and its cause chain.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	entries := collectErrorEntries(err)
	if l.jsonMode {
		l.logger.Error("operation failed", append([]any{"error", err.Error()}, metadataArgs(entries)...)...)
		return
	}

	// A single layer renders on one line with its metadata as attributes.
	if len(entries) == 1 && len(entries[0].Metadata) > 0 {
		l.logger.Error("Error: "+entries[0].Message, metadataArgs(entries)...)
		return
	}
	l.logger.Error(formatErrorEntries(entries))
}

// metadataArgs flattens the metadata of entries into slog key-value pairs sorted by
// key. The outermost layer wins when keys repeat.
func metadataArgs(entries []ErrorEntry) []any {
	merged := make(map[string]any)
	for i := len(entries) - 1; i >= 0; i-- {
		maps.Copy(merged, entries[i].Metadata)
	}
	args := make([]any, 0, 2*len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		args = append(args, k, merged[k])
	}
	return args
}
