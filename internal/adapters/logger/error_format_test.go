package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/restore/internal/adapters/logger"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr chain ending in a standard error",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name:         "metadata stays on its layer",
			err:          zerr.With(zerr.Wrap(zerr.With(zerr.New("inner"), "inner_key", "v1"), "outer"), "outer_key", "v2"),
			wantMessages: []string{"outer", "inner"},
			wantMetadata: []map[string]any{{"outer_key": "v2"}, {"inner_key": "v1"}},
		},
		{
			name: "nil",
			err:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)
			if tt.err == nil {
				assert.Empty(t, entries)
				return
			}

			assert.Len(t, entries, len(tt.wantMessages))
			for i, want := range tt.wantMessages {
				assert.Equal(t, want, entries[i].Message, "message at index %d", i)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata, "metadata at index %d", i)
			}
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted by key",
			entries: []logger.ErrorEntry{{
				Message:  "error",
				Metadata: map[string]any{"zebra": "z", "alpha": "a", "mike": 3},
			}},
			want: "Error: error\n       alpha: a\n       mike: 3\n       zebra: z",
		},
		{
			name: "metadata on a cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"project": "App"}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause\n      project: App",
		},
		{
			name:    "multiline messages",
			entries: []logger.ErrorEntry{{Message: "line1\nline2"}, {Message: "cause1\ncause2"}},
			want:    "Error: line1\n       line2\n\n  Caused by:\n    → cause1\n      cause2",
		},
		{
			name:    "empty",
			entries: []logger.ErrorEntry{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelError, logger.LevelFor(domain.VerbosityQuiet))
	assert.Equal(t, slog.LevelWarn, logger.LevelFor(domain.VerbosityMinimal))
	assert.Equal(t, slog.LevelInfo, logger.LevelFor(domain.VerbosityNormal))
	assert.Equal(t, slog.LevelDebug, logger.LevelFor(domain.VerbosityDiagnostic))
}
