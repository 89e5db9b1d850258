package ports

import "go.trai.ch/restore/internal/core/domain"

// UpToDateChecker decides which projects of a solution need a restore.
//
//go:generate mockgen -source=checker.go -destination=mocks/mock_checker.go -package=mocks
type UpToDateChecker interface {
	// PerformUpToDateCheck returns the unique names of the projects that need a restore.
	PerformUpToDateCheck(dg *domain.DependencyGraphSpec) []string
	// ReportStatus records the outcome of the restored projects.
	ReportStatus(summaries []domain.RestoreSummary)
	// CleanCache forgets every cached spec and output.
	CleanCache()
}

// CheckerFactory creates the up-to-date checker of a new solution session.
type CheckerFactory func() UpToDateChecker
