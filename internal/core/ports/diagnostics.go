package ports

import "go.trai.ch/restore/internal/core/domain"

// ErrorList is the persistent list of restore diagnostics shown to the user.
//
//go:generate mockgen -source=diagnostics.go -destination=mocks/mock_diagnostics.go -package=mocks
type ErrorList interface {
	// Add appends entries; entries already present are ignored.
	Add(entries ...domain.Diagnostic)
	// Clear removes every restore entry.
	Clear()
	// Entries returns the current entries ordered by severity, project then message.
	Entries() []domain.Diagnostic
}
