package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/restore/internal/ui/output"
	"go.trai.ch/restore/internal/ui/style"
)

// Attribute keys the pretty handler renders as part of the message instead of key=value.
const (
	// AttrCode is a restore diagnostic code such as NU1101. It prefixes the message.
	AttrCode = "code"
	// AttrProject is a project path. Its file name follows the message in parentheses.
	AttrProject = "project"
	// AttrOperation is a restore operation id. Its first characters prefix the message.
	AttrOperation = "operation"
)

const operationPrefixLen = 8

// PrettyHandler is a slog.Handler that renders restore logs for a terminal: one
// colored line per record with diagnostic codes, project names and operation ids
// folded into the message.
type PrettyHandler struct {
	out   *termenv.Output
	mu    *sync.Mutex
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
// A *slog.LevelVar passed in opts keeps controlling the handler after creation.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		mu:    &sync.Mutex{},
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// line collects the parts of a rendered record.
type line struct {
	code      string
	project   string
	operation string
	attrs     []string
}

func (l *line) add(group string, attr slog.Attr) {
	switch attr.Key {
	case AttrCode:
		l.code = attr.Value.String()
	case AttrProject:
		l.project = filepath.Base(attr.Value.String())
	case AttrOperation:
		l.operation = attr.Value.String()
		if len(l.operation) > operationPrefixLen {
			l.operation = l.operation[:operationPrefixLen]
		}
	default:
		l.attrs = append(l.attrs, formatAttr(group, attr))
	}
}

func (l *line) render(glyph, msg string) string {
	var b strings.Builder
	if glyph != "" {
		b.WriteString(glyph + " ")
	}
	if l.operation != "" {
		b.WriteString("[" + l.operation + "] ")
	}
	if l.code != "" {
		b.WriteString(l.code + ": ")
	}
	b.WriteString(msg)
	if l.project != "" {
		b.WriteString(" (" + l.project + ")")
	}
	for _, a := range l.attrs {
		b.WriteString(" " + a)
	}
	return b.String()
}

// Handle formats and outputs the log record. Records from concurrent callers are
// written whole, one at a time.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var glyph string
	var color termenv.Color

	switch r.Level {
	case slog.LevelWarn:
		glyph, color = style.Warning, termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		glyph, color = style.Cross, termenv.RGBColor(string(style.Red))
	case slog.LevelDebug:
		glyph, color = style.Dot, termenv.RGBColor(string(style.Muted))
	default:
		color = termenv.RGBColor(string(style.Slate))
	}

	l := &line{}
	for _, attr := range h.attrs {
		l.add(h.group, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		l.add(h.group, attr)
		return true
	})

	styled := h.out.String(l.render(glyph, r.Message)).Foreground(color).String() + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, styled)
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		mu:    h.mu,
		level: h.level,
		attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		mu:    h.mu,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}

// formatAttr formats a single attribute for output.
// If a group is set, the key is prefixed with the group name.
func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
