package ports

import (
	"context"

	"go.trai.ch/restore/internal/core/domain"
)

// RestoreWorker schedules solution restores and serializes their execution.
//
//go:generate mockgen -source=worker.go -destination=mocks/mock_worker.go -package=mocks
type RestoreWorker interface {
	// ScheduleRestore queues a request and blocks until the operation serving it completes.
	ScheduleRestore(ctx context.Context, req domain.RestoreRequest) bool
	// Restore runs a restore outside the queue once no other operation is active.
	Restore(ctx context.Context, req domain.RestoreRequest) (bool, error)
	// CleanCache removes restore cache files and resets the up-to-date checker.
	CleanCache(ctx context.Context) error
	// IsBusy reports whether an operation is active.
	IsBusy() bool
	// JobContext returns the job context of the current solution session.
	JobContext() *JobContext
}

