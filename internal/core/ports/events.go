package ports

import "go.trai.ch/restore/internal/core/domain"

// RestoreEventsPublisher notifies subscribers about solution restores.
//
//go:generate mockgen -source=events.go -destination=mocks/mock_events.go -package=mocks
type RestoreEventsPublisher interface {
	// OnSolutionRestoreStarted is raised before a restore executes.
	OnSolutionRestoreStarted(event domain.SolutionRestoreStartedEvent)
	// OnSolutionRestoreCompleted is raised after a restore completes.
	OnSolutionRestoreCompleted(event domain.SolutionRestoredEvent)
}
