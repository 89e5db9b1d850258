package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/restore/internal/adapters/logger"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/zerr"
)

// recordingWriter records every Write call separately. Unsynchronized callers race on
// its slice.
type recordingWriter struct {
	writes []string
	mu     sync.Mutex
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func (w *recordingWriter) get() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.writes...)
}

// newTestLogger creates a logger writing to a buffer without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden at normal verbosity")
	lg.Info("Restore succeeded in 850ms")
	lg.Warn("restore consent is not granted")

	g := goldie.New(t)
	g.Assert(t, "logger_levels", buf.Bytes())
}

func TestLogger_Error_ZerrChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	cause := zerr.With(zerr.New("feed folder missing"), "feed", "/feeds/local")
	err := zerr.With(zerr.Wrap(cause, domain.ErrRestoreFailed.Error()), "project", "App")
	lg.Error(err)

	g := goldie.New(t)
	g.Assert(t, "logger_error_chain", buf.Bytes())
}

func TestLogger_Error_StdlibError(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(errors.New("plain failure"))

	assert.Equal(t, "✗ Error: plain failure\n", buf.String())
}

func TestLogger_Error_SingleLayerMetadata(t *testing.T) {
	lg, buf := newTestLogger(t)
	err := zerr.With(zerr.With(domain.ErrRestoreFailed, "project", "/sln/App/App.csproj"), "code", "NU1101")
	lg.Error(err)

	assert.Equal(t, "✗ NU1101: Error: restore failed (App.csproj)\n", buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		verbosity domain.Verbosity
		want      []string
	}{
		{name: "quiet", verbosity: domain.VerbosityQuiet, want: []string{"ERROR"}},
		{name: "minimal", verbosity: domain.VerbosityMinimal, want: []string{"WARN", "ERROR"}},
		{name: "normal", verbosity: domain.VerbosityNormal, want: []string{"INFO", "WARN", "ERROR"}},
		{name: "detailed", verbosity: domain.VerbosityDetailed, want: []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{name: "diagnostic", verbosity: domain.VerbosityDiagnostic, want: []string{"DEBUG", "INFO", "WARN", "ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.SetJSON(true)
			lg.SetVerbosity(tt.verbosity)

			lg.Debug("d")
			lg.Info("i")
			lg.Warn("w")
			lg.Error(errors.New("e"))

			var levels []string
			dec := json.NewDecoder(buf)
			for dec.More() {
				var rec map[string]any
				require.NoError(t, dec.Decode(&rec))
				levels = append(levels, rec[slog.LevelKey].(string))
			}
			assert.Equal(t, tt.want, levels)
		})
	}
}

func TestLogger_SetJSON_ErrorRecord(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.With(zerr.New("boom"), "project", "/sln/App/App.csproj"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "operation failed", rec[slog.MessageKey])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "/sln/App/App.csproj", rec["project"])

	// Switching back keeps the output writer.
	buf.Reset()
	lg.SetJSON(false)
	lg.Info("pretty")
	assert.Equal(t, "pretty\n", buf.String())
}

func TestLogger_SetOutput_Nil(t *testing.T) {
	lg, _ := newTestLogger(t)
	assert.NotPanics(t, func() { lg.SetOutput(nil) })
}

func TestLogger_ConcurrentWritesKeepLinesWhole(t *testing.T) {
	lg, _ := newTestLogger(t)
	w := &recordingWriter{}
	lg.SetOutput(w)

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			for range 10 {
				lg.Info("restored App.csproj")
			}
		})
	}
	wg.Wait()

	writes := w.get()
	require.Len(t, writes, 200)
	for _, line := range writes {
		assert.Equal(t, "restored App.csproj\n", line)
	}
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Go(func() {
			if i%2 == 0 {
				lg.SetJSON(i%4 == 0)
			}
			lg.Info("message")
			lg.Error(errors.New("failure"))
		})
	}
	wg.Wait()
}
