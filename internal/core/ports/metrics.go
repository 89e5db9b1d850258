package ports

import (
	"time"

	"go.trai.ch/restore/internal/core/domain"
)

// Metrics records restore worker and job measurements.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// RequestScheduled counts a request accepted by the worker.
	RequestScheduled(source domain.RestoreSource)
	// RequestsCoalesced records how many requests a single run served.
	RequestsCoalesced(count int)
	// QueueDepth reports the number of pending requests.
	QueueDepth(depth int)
	// RestoreCompleted records the outcome and duration of a run.
	RestoreCompleted(status domain.RestoreStatus, duration time.Duration)
	// ProjectsRestored counts restored and up-to-date projects.
	ProjectsRestored(restored, upToDate int)
}
