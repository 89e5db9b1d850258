// Package service exposes the nomination API and the build host hooks of the restore worker.
package service

import (
	"context"
	"sync/atomic"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/restore/internal/engine/nomination"
	"go.trai.ch/zerr"
)

// Service turns nominations and build events into restore requests.
type Service struct {
	builder  *nomination.Builder
	solution ports.Solution
	cache    ports.ProjectCache
	worker   ports.RestoreWorker
	settings ports.Settings
	logger   ports.Logger

	building atomic.Bool
}

// New creates a new Service.
func New(
	builder *nomination.Builder,
	solution ports.Solution,
	cache ports.ProjectCache,
	worker ports.RestoreWorker,
	settings ports.Settings,
	logger ports.Logger,
) *Service {
	return &Service{
		builder:  builder,
		solution: solution,
		cache:    cache,
		worker:   worker,
		settings: settings,
		logger:   logger,
	}
}

// LoadProject stores the nominated state of a project without scheduling a restore.
// It is used while a solution loads, before the first restore runs.
func (s *Service) LoadProject(n domain.NominationData) error {
	dg, err := s.builder.Build(n)
	if err != nil {
		return err
	}
	s.cache.AddProjectRestoreInfo(n.ProjectUniqueName, dg)
	return nil
}

// NominateProject stores the nominated state of a project and schedules an implicit
// restore. It blocks until the operation serving the request completes. Invalid
// nominations are returned as errors without scheduling anything.
func (s *Service) NominateProject(ctx context.Context, n domain.NominationData) (bool, error) {
	s.logger.Debug("nominate " + n.ProjectUniqueName)
	if err := s.LoadProject(n); err != nil {
		return false, err
	}
	return s.worker.ScheduleRestore(ctx, domain.OnUpdate()), nil
}

// RemoveProject drops a project that left the solution and schedules an implicit restore.
func (s *Service) RemoveProject(ctx context.Context, projectUniqueName string) bool {
	s.logger.Debug("remove " + projectUniqueName)
	s.cache.RemoveProject(projectUniqueName)
	return s.worker.ScheduleRestore(ctx, domain.OnUpdate())
}

// ScheduleRestore schedules an implicit restore of the solution, for example after
// the restore settings changed.
func (s *Service) ScheduleRestore(ctx context.Context) bool {
	return s.worker.ScheduleRestore(ctx, domain.OnUpdate())
}

// OnBuildBegin runs before the host builds. Clean removes the restore caches; build
// and rebuild restore the solution when automatic restore is enabled. A rebuild forces
// the restore.
func (s *Service) OnBuildBegin(ctx context.Context, action domain.BuildAction) (bool, error) {
	s.building.Store(true)

	if action == domain.BuildActionClean {
		if err := s.worker.CleanCache(ctx); err != nil {
			return false, err
		}
		return true, nil
	}

	if !s.settings.AutomaticRestoreEnabled() {
		s.logger.Debug("automatic restore is disabled, skipping restore on " + action.String())
		return true, nil
	}

	ok, err := s.worker.Restore(ctx, domain.OnBuild(action == domain.BuildActionRebuild))
	if err != nil {
		return false, zerr.With(err, "action", action.String())
	}
	return ok, nil
}

// OnBuildDone runs after the host finished building.
func (s *Service) OnBuildDone(_ context.Context) {
	s.building.Store(false)
}

// IsBuilding reports whether the host is between OnBuildBegin and OnBuildDone.
func (s *Service) IsBuilding() bool {
	return s.building.Load()
}

// RestoreSolution runs an explicit restore of the solution.
func (s *Service) RestoreSolution(
	ctx context.Context,
	force bool,
	reason domain.ExplicitRestoreReason,
) (bool, error) {
	return s.worker.Restore(ctx, domain.ByMenu(force, reason))
}

// IsBusy reports whether a restore operation is active.
func (s *Service) IsBusy() bool {
	return s.worker.IsBusy()
}

// PerformUpToDateCheck returns the projects of the solution that need a restore.
func (s *Service) PerformUpToDateCheck(ctx context.Context) ([]string, error) {
	dg, err := s.solution.DependencyGraph(ctx)
	if err != nil {
		return nil, err
	}
	return s.worker.JobContext().Checker.PerformUpToDateCheck(dg), nil
}

// ReportStatus records restore outcomes produced outside the worker.
func (s *Service) ReportStatus(summaries []domain.RestoreSummary) {
	s.worker.JobContext().Checker.ReportStatus(summaries)
}

// CleanCache removes the restore cache files of every project.
func (s *Service) CleanCache(ctx context.Context) error {
	return s.worker.CleanCache(ctx)
}
