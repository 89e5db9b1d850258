package ports

import (
	"context"

	"github.com/google/uuid"
	"go.trai.ch/restore/internal/core/domain"
)

// JobContext holds the state shared by consecutive restore jobs of a solution session.
type JobContext struct {
	// ID identifies the context. It changes whenever the cache is cleaned.
	ID uuid.UUID
	// Checker is the up-to-date checker of the session.
	Checker UpToDateChecker
}

// RestoreJob executes a coalesced restore request.
//
//go:generate mockgen -source=job.go -destination=mocks/mock_job.go -package=mocks
type RestoreJob interface {
	// Execute runs the restore and reports whether it succeeded or no-op'd.
	Execute(ctx context.Context, req domain.RestoreRequest, jobCtx *JobContext, tracking domain.TrackingData) bool
}
