package domain

import "time"

// Severity is the level of a restore log message.
type Severity int

const (
	// SeverityInfo is an informational message.
	SeverityInfo Severity = iota
	// SeverityWarning is a warning.
	SeverityWarning
	// SeverityError is an error.
	SeverityError
)

// String returns the name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// LogMessage is a diagnostic produced by the restore engine for a project.
type LogMessage struct {
	Code        string
	Level       Severity
	Message     string
	ProjectPath string
}

// RestoreSummary is the result of restoring a single project.
type RestoreSummary struct {
	ProjectUniqueName string
	Success           bool
	NoOp              bool
	InstallCount      int
	Messages          []LogMessage
}

// Warnings returns the warning messages of the summary.
func (s RestoreSummary) Warnings() []LogMessage {
	var out []LogMessage
	for _, m := range s.Messages {
		if m.Level == SeverityWarning {
			out = append(out, m)
		}
	}
	return out
}

// RestoreStatus is the overall outcome of a solution restore.
type RestoreStatus int

const (
	// StatusNoOp means every project was already up to date.
	StatusNoOp RestoreStatus = iota
	// StatusSucceeded means the restore changed at least one project and succeeded.
	StatusSucceeded
	// StatusFailed means at least one project failed to restore.
	StatusFailed
	// StatusCancelled means the restore was cancelled.
	StatusCancelled
)

// String returns the name of the status.
func (s RestoreStatus) String() string {
	switch s {
	case StatusSucceeded:
		return "Succeeded"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "NoOp"
	}
}

// Successful reports whether the status counts as a successful restore.
func (s RestoreStatus) Successful() bool {
	return s == StatusNoOp || s == StatusSucceeded
}

// StatusFromSummaries computes the overall status of a set of summaries: Failed when
// any summary failed, NoOp when every summary no-op'd, Succeeded otherwise.
func StatusFromSummaries(summaries []RestoreSummary) RestoreStatus {
	noOps := 0
	for _, s := range summaries {
		if !s.Success {
			return StatusFailed
		}
		if s.NoOp {
			noOps++
		}
	}
	if noOps < len(summaries) {
		return StatusSucceeded
	}
	return StatusNoOp
}

// SolutionRestoredEvent is published when a solution restore completes.
type SolutionRestoredEvent struct {
	Status            RestoreStatus
	SolutionDirectory string
	Duration          time.Duration
}

// SolutionRestoreStartedEvent is published when a solution restore starts executing.
type SolutionRestoreStartedEvent struct {
	Request RestoreRequest
}
