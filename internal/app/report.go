package app

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/ui/style"
)

// Report is the outcome of a restore command.
type Report struct {
	Status      string             `json:"status"`
	Success     bool               `json:"success"`
	DurationMS  int64              `json:"durationMs"`
	Diagnostics []DiagnosticReport `json:"diagnostics"`
}

// DiagnosticReport is a diagnostic as printed by --json.
type DiagnosticReport struct {
	Severity string `json:"severity"`
	Project  string `json:"project,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
}

func newReport(event domain.SolutionRestoredEvent, entries []domain.Diagnostic) Report {
	r := Report{
		Status:      event.Status.String(),
		Success:     event.Status.Successful(),
		DurationMS:  event.Duration.Milliseconds(),
		Diagnostics: make([]DiagnosticReport, 0, len(entries)),
	}
	for _, d := range entries {
		r.Diagnostics = append(r.Diagnostics, DiagnosticReport{
			Severity: d.Severity.String(),
			Project:  d.ProjectPath,
			Code:     d.Code,
			Message:  d.Message,
		})
	}
	return r
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeDiagnostics(w io.Writer, entries []domain.Diagnostic) {
	for _, d := range entries {
		glyph := style.Faint.Render(style.Dot)
		switch d.Severity {
		case domain.SeverityError:
			glyph = style.Failure.Render(style.Cross)
		case domain.SeverityWarning:
			glyph = style.Notice.Render(style.Warning)
		}

		line := d.Message
		if d.Code != "" {
			line = d.Code + ": " + line
		}
		if d.ProjectPath != "" {
			line = d.ProjectPath + ": " + line
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", glyph, line)
	}
}

func writeSummary(w io.Writer, event domain.SolutionRestoredEvent) {
	duration := event.Duration.Round(time.Millisecond)
	switch event.Status {
	case domain.StatusNoOp:
		_, _ = fmt.Fprintf(w, "%s %s\n", style.Success.Render(style.Check),
			style.Faint.Render(fmt.Sprintf("all projects are up-to-date (%s)", duration)))
	case domain.StatusSucceeded:
		_, _ = fmt.Fprintf(w, "%s restore succeeded in %s\n", style.Success.Render(style.Check), duration)
	case domain.StatusCancelled:
		_, _ = fmt.Fprintf(w, "%s restore cancelled\n", style.Notice.Render(style.Tilde))
	default:
		_, _ = fmt.Fprintf(w, "%s restore failed after %s\n", style.Failure.Render(style.Cross), duration)
	}
}
