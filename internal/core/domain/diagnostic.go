package domain

import "strings"

// Diagnostic is an entry of the error list shown to the user.
type Diagnostic struct {
	Severity    Severity
	ProjectPath string
	Code        string
	Message     string
}

// Key identifies the diagnostic for de-duplication.
func (d Diagnostic) Key() string {
	return strings.ToLower(d.ProjectPath) + "\x00" + d.Code + "\x00" + d.Message
}

// DiagnosticFromMessage converts a restore log message into an error-list entry.
func DiagnosticFromMessage(m LogMessage) Diagnostic {
	return Diagnostic{
		Severity:    m.Level,
		ProjectPath: m.ProjectPath,
		Code:        m.Code,
		Message:     m.Message,
	}
}
