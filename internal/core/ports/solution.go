package ports

import (
	"context"

	"go.trai.ch/restore/internal/core/domain"
)

// Solution exposes the projects the build host has nominated.
//
//go:generate mockgen -source=solution.go -destination=mocks/mock_solution.go -package=mocks
type Solution interface {
	// Directory returns the solution directory, or "" when the solution is not saved.
	Directory() string
	// IsAvailable reports whether a solution is open.
	IsAvailable() bool
	// IsLoaded reports whether the solution finished loading.
	IsLoaded() bool
	// AllProjectsNominated reports whether every project of the solution has been nominated.
	AllProjectsNominated() bool
	// DependencyGraph returns the dependency graph spec of every nominated project with
	// settings applied.
	DependencyGraph(ctx context.Context) (*domain.DependencyGraphSpec, error)
}

// ProjectCache stores nominated dependency graph specs.
type ProjectCache interface {
	// AddProjectRestoreInfo stores the nominated graph of a project, replacing any earlier nomination.
	AddProjectRestoreInfo(projectUniqueName string, dg *domain.DependencyGraphSpec)
	// RemoveProject drops a project from the cache.
	RemoveProject(projectUniqueName string)
}
