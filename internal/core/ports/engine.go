package ports

import (
	"context"

	"github.com/google/uuid"
	"go.trai.ch/restore/internal/core/domain"
)

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

// EngineRequest asks the restore engine to restore one project.
type EngineRequest struct {
	// OperationID identifies the solution restore the request belongs to.
	OperationID uuid.UUID
	// Project is the restore root being restored.
	Project *domain.ProjectSpec
	// Graph holds the project and every project it references.
	Graph *domain.DependencyGraphSpec
	// Force bypasses the engine's own no-op check.
	Force bool
}

// RestoreEngine resolves and downloads the packages of a project and commits the
// restore outputs (assets, cache, targets, props and lock files) to disk.
type RestoreEngine interface {
	// Restore restores a single project. A failed restore is reported through the
	// summary; an error means the engine could not run at all.
	Restore(ctx context.Context, req EngineRequest) (domain.RestoreSummary, error)
}

// PackagesConfigRestorer restores packages.config style projects.
type PackagesConfigRestorer interface {
	// MissingPackages returns the packages of the given projects that are not present
	// in the solution packages folder.
	MissingPackages(ctx context.Context, solutionDir string, projects []*domain.ProjectSpec) ([]domain.MissingPackage, error)
	// RestoreMissing downloads the missing packages and returns a summary per project.
	RestoreMissing(ctx context.Context, solutionDir string, missing []domain.MissingPackage) ([]domain.RestoreSummary, error)
}
