package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/restore/internal/core/ports/mocks"
	"go.trai.ch/restore/internal/engine/nomination"
	"go.trai.ch/restore/internal/engine/service"
	"go.uber.org/mock/gomock"
)

type serviceTestMocks struct {
	solution *mocks.MockSolution
	cache    *mocks.MockProjectCache
	worker   *mocks.MockRestoreWorker
	settings *mocks.MockSettings
	logger   *mocks.MockLogger
}

func setupService(t *testing.T) (*service.Service, *serviceTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &serviceTestMocks{
		solution: mocks.NewMockSolution(ctrl),
		cache:    mocks.NewMockProjectCache(ctrl),
		worker:   mocks.NewMockRestoreWorker(ctrl),
		settings: mocks.NewMockSettings(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	s := service.New(nomination.NewBuilder(), m.solution, m.cache, m.worker, m.settings, m.logger)
	return s, m
}

var projectPath = filepath.Join(string(filepath.Separator), "src", "App", "App.csproj")

func nominationData() domain.NominationData {
	return domain.NominationData{
		ProjectUniqueName: projectPath,
		RestoreInfo: domain.ProjectRestoreInfo{
			BaseIntermediatePath: "obj",
			TargetFrameworks: []domain.TargetFrameworkInfo{{
				Properties: map[string]string{"TargetFramework": "net8.0"},
			}},
		},
	}
}

func TestService_NominateProject(t *testing.T) {
	s, m := setupService(t)

	m.cache.EXPECT().AddProjectRestoreInfo(projectPath, gomock.Any()).Do(
		func(_ string, dg *domain.DependencyGraphSpec) {
			assert.True(t, dg.IsRestoreRoot(projectPath))
		},
	)
	m.worker.EXPECT().ScheduleRestore(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.RestoreRequest) bool {
			assert.Equal(t, domain.SourceImplicit, req.Source)
			assert.False(t, req.Force)
			return true
		},
	)

	ok, err := s.NominateProject(context.Background(), nominationData())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_NominateProject_InvalidNomination(t *testing.T) {
	s, _ := setupService(t)

	n := nominationData()
	n.RestoreInfo.TargetFrameworks = nil

	// Nothing is cached or scheduled.
	ok, err := s.NominateProject(context.Background(), n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidNomination.Error())
	assert.False(t, ok)
}

func TestService_LoadProject(t *testing.T) {
	s, m := setupService(t)

	// Stored without a restore.
	m.cache.EXPECT().AddProjectRestoreInfo(projectPath, gomock.Any())

	require.NoError(t, s.LoadProject(nominationData()))

	n := nominationData()
	n.ProjectUniqueName = ""
	err := s.LoadProject(n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidNomination.Error())
}

func TestService_RemoveProject(t *testing.T) {
	s, m := setupService(t)

	gomock.InOrder(
		m.cache.EXPECT().RemoveProject(projectPath),
		m.worker.EXPECT().ScheduleRestore(gomock.Any(), gomock.Any()).Return(true),
	)

	assert.True(t, s.RemoveProject(context.Background(), projectPath))
}

func TestService_ScheduleRestore(t *testing.T) {
	s, m := setupService(t)

	m.worker.EXPECT().ScheduleRestore(gomock.Any(), gomock.Any()).Return(false)

	assert.False(t, s.ScheduleRestore(context.Background()))
}

func TestService_OnBuildBegin(t *testing.T) {
	tests := []struct {
		name      string
		action    domain.BuildAction
		automatic bool
		setup     func(m *serviceTestMocks)
		want      bool
	}{
		{
			name:   "clean removes caches",
			action: domain.BuildActionClean,
			setup: func(m *serviceTestMocks) {
				m.worker.EXPECT().CleanCache(gomock.Any()).Return(nil)
			},
			want: true,
		},
		{
			name:      "build restores",
			action:    domain.BuildActionBuild,
			automatic: true,
			setup: func(m *serviceTestMocks) {
				m.worker.EXPECT().Restore(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req domain.RestoreRequest) (bool, error) {
						if req.Source != domain.SourceOnBuild || req.Force {
							return false, errors.New("unexpected request")
						}
						return true, nil
					},
				)
			},
			want: true,
		},
		{
			name:      "rebuild forces",
			action:    domain.BuildActionRebuild,
			automatic: true,
			setup: func(m *serviceTestMocks) {
				m.worker.EXPECT().Restore(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req domain.RestoreRequest) (bool, error) {
						return req.Force, nil
					},
				)
			},
			want: true,
		},
		{
			name:      "automatic restore disabled",
			action:    domain.BuildActionBuild,
			automatic: false,
			setup:     func(*serviceTestMocks) {},
			want:      true,
		},
		{
			name:      "failed restore",
			action:    domain.BuildActionBuild,
			automatic: true,
			setup: func(m *serviceTestMocks) {
				m.worker.EXPECT().Restore(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := setupService(t)
			m.settings.EXPECT().AutomaticRestoreEnabled().Return(tt.automatic).AnyTimes()
			tt.setup(m)

			ok, err := s.OnBuildBegin(context.Background(), tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.True(t, s.IsBuilding())

			s.OnBuildDone(context.Background())
			assert.False(t, s.IsBuilding())
		})
	}
}

func TestService_OnBuildBegin_WorkerClosed(t *testing.T) {
	s, m := setupService(t)
	m.settings.EXPECT().AutomaticRestoreEnabled().Return(true)
	m.worker.EXPECT().Restore(gomock.Any(), gomock.Any()).Return(false, domain.ErrWorkerClosed)

	ok, err := s.OnBuildBegin(context.Background(), domain.BuildActionBuild)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrWorkerClosed.Error())
	assert.False(t, ok)
}

func TestService_StatusPassThrough(t *testing.T) {
	s, m := setupService(t)
	ctrl := gomock.NewController(t)
	checker := mocks.NewMockUpToDateChecker(ctrl)
	dg := domain.NewDependencyGraphSpec()

	m.worker.EXPECT().JobContext().Return(&ports.JobContext{Checker: checker}).AnyTimes()
	m.worker.EXPECT().IsBusy().Return(true)
	m.worker.EXPECT().CleanCache(gomock.Any()).Return(nil)
	m.solution.EXPECT().DependencyGraph(gomock.Any()).Return(dg, nil)
	checker.EXPECT().PerformUpToDateCheck(dg).Return([]string{"a"})
	summaries := []domain.RestoreSummary{{ProjectUniqueName: "a", Success: true}}
	checker.EXPECT().ReportStatus(summaries)

	dirty, err := s.PerformUpToDateCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, dirty)
	s.ReportStatus(summaries)
	assert.True(t, s.IsBusy())
	require.NoError(t, s.CleanCache(context.Background()))
}

func TestService_RestoreSolution(t *testing.T) {
	s, m := setupService(t)
	m.worker.EXPECT().Restore(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.RestoreRequest) (bool, error) {
			assert.Equal(t, domain.SourceExplicit, req.Source)
			assert.True(t, req.Force)
			assert.Equal(t, domain.ReasonRestoreSolutionPackages, req.ExplicitReason)
			return true, nil
		},
	)

	ok, err := s.RestoreSolution(context.Background(), true, domain.ReasonRestoreSolutionPackages)
	require.NoError(t, err)
	assert.True(t, ok)
}
