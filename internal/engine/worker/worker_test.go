package worker_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/juju/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/restore/internal/core/ports/mocks"
	"go.trai.ch/restore/internal/engine/worker"
	"go.uber.org/mock/gomock"
)

type workerTestMocks struct {
	solution  *mocks.MockSolution
	lock      *mocks.MockLockService
	job       *mocks.MockRestoreJob
	errorList *mocks.MockErrorList
	logger    *mocks.MockLogger

	loaded    atomic.Bool
	nominated atomic.Bool
	lockHeld  atomic.Bool
	checkers  atomic.Int32
}

// setupWorker creates a worker whose solution is loaded and fully nominated.
func setupWorker(t *testing.T) (*worker.Worker, *workerTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &workerTestMocks{
		solution:  mocks.NewMockSolution(ctrl),
		lock:      mocks.NewMockLockService(ctrl),
		job:       mocks.NewMockRestoreJob(ctrl),
		errorList: mocks.NewMockErrorList(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	m.loaded.Store(true)
	m.nominated.Store(true)

	m.solution.EXPECT().IsLoaded().DoAndReturn(m.loaded.Load).AnyTimes()
	m.solution.EXPECT().AllProjectsNominated().DoAndReturn(m.nominated.Load).AnyTimes()
	m.lock.EXPECT().IsHeld().DoAndReturn(m.lockHeld.Load).AnyTimes()
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	events := mocks.NewMockRestoreEventsPublisher(ctrl)
	events.EXPECT().OnSolutionRestoreStarted(gomock.Any()).AnyTimes()

	metrics := mocks.NewMockMetrics(ctrl)
	metrics.EXPECT().RequestScheduled(gomock.Any()).AnyTimes()
	metrics.EXPECT().RequestsCoalesced(gomock.Any()).AnyTimes()
	metrics.EXPECT().QueueDepth(gomock.Any()).AnyTimes()

	checker := mocks.NewMockUpToDateChecker(ctrl)
	newChecker := func() ports.UpToDateChecker {
		m.checkers.Add(1)
		return checker
	}

	w := worker.New(m.solution, m.lock, m.job, newChecker, m.errorList, events, metrics, m.logger, clock.WallClock)
	t.Cleanup(func() { _ = w.Close() })
	return w, m
}

func schedule(w *worker.Worker, req domain.RestoreRequest) <-chan bool {
	ch := make(chan bool, 1)
	go func() { ch <- w.ScheduleRestore(context.Background(), req) }()
	return ch
}

func TestWorker_ScheduleRestore_SingleFlight(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)

		var tracking domain.TrackingData
		m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.RestoreRequest, _ *ports.JobContext, td domain.TrackingData) bool {
				tracking = td
				return true
			}).Times(1)

		const callers = 5
		results := make([]<-chan bool, 0, callers)
		for range callers {
			results = append(results, schedule(w, domain.OnUpdate()))
		}

		for _, ch := range results {
			assert.True(t, <-ch)
		}
		assert.Equal(t, callers, tracking.RequestCount)
		assert.Equal(t, domain.ImplicitReasonAllProjectsNominated, tracking.ImplicitReason)
		assert.True(t, tracking.IsSolutionLoadRestore)
		assert.False(t, w.IsBusy())
	})
}

func TestWorker_ScheduleRestore_Coalescing(t *testing.T) {
	tests := []struct {
		name       string
		first      domain.RestoreRequest
		second     domain.RestoreRequest
		wantSource domain.RestoreSource
		wantForce  bool
	}{
		{
			name:       "Explicit wins over implicit",
			first:      domain.OnUpdate(),
			second:     domain.ByMenu(true, domain.ReasonRestoreSolutionPackages),
			wantSource: domain.SourceExplicit,
			wantForce:  true,
		},
		{
			name:       "Different sources upgrade to explicit",
			first:      domain.OnBuild(true),
			second:     domain.OnUpdate(),
			wantSource: domain.SourceExplicit,
			wantForce:  true,
		},
		{
			name:       "Same source keeps source",
			first:      domain.OnUpdate(),
			second:     domain.OnUpdate(),
			wantSource: domain.SourceImplicit,
			wantForce:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				w, m := setupWorker(t)

				var executed domain.RestoreRequest
				m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req domain.RestoreRequest, _ *ports.JobContext, _ domain.TrackingData) bool {
						executed = req
						return true
					}).Times(1)

				first := schedule(w, tt.first)
				synctest.Wait()
				second := schedule(w, tt.second)

				assert.True(t, <-first)
				assert.True(t, <-second)
				assert.Equal(t, tt.wantSource, executed.Source)
				assert.Equal(t, tt.wantForce, executed.Force)
				assert.Equal(t, tt.first.OperationID, executed.OperationID)
			})
		})
	}
}

func TestWorker_ScheduleRestore_DuringExecutionJoinsNextOperation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)

		release := make(chan struct{})
		gomock.InOrder(
			m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(context.Context, domain.RestoreRequest, *ports.JobContext, domain.TrackingData) bool {
					<-release
					return true
				}),
			m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(false),
		)

		first := schedule(w, domain.OnUpdate())
		synctest.Wait()
		time.Sleep(worker.IdleTimeout)
		synctest.Wait()
		require.True(t, w.IsBusy())

		second := schedule(w, domain.OnUpdate())
		synctest.Wait()
		close(release)

		assert.True(t, <-first)
		assert.False(t, <-second)
	})
}

func TestWorker_ScheduleRestore_IdleWindowBatchesTrailingRequests(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)

		var tracking domain.TrackingData
		m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.RestoreRequest, _ *ports.JobContext, td domain.TrackingData) bool {
				tracking = td
				return true
			}).Times(1)

		first := schedule(w, domain.OnUpdate())
		time.Sleep(worker.IdleTimeout / 2)
		second := schedule(w, domain.OnUpdate())

		assert.True(t, <-first)
		assert.True(t, <-second)
		assert.Equal(t, 2, tracking.RequestCount)
	})
}

func TestWorker_ScheduleRestore_WaitsForNominations(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)
		m.nominated.Store(false)

		var tracking domain.TrackingData
		var executedAt time.Time
		m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.RestoreRequest, _ *ports.JobContext, td domain.TrackingData) bool {
				tracking = td
				executedAt = time.Now()
				return true
			}).Times(1)

		start := time.Now()
		assert.True(t, <-schedule(w, domain.OnUpdate()))
		assert.Equal(t, domain.ImplicitReasonNominationsIdleTimeout, tracking.ImplicitReason)
		assert.GreaterOrEqual(t, executedAt.Sub(start), worker.MaxIdleWait)
	})
}

func TestWorker_ScheduleRestore_WaitsForSolutionLoad(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)
		m.loaded.Store(false)

		var executed atomic.Bool
		m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, domain.RestoreRequest, *ports.JobContext, domain.TrackingData) bool {
				executed.Store(true)
				return true
			}).Times(1)

		result := schedule(w, domain.OnUpdate())
		time.Sleep(10 * time.Second)
		synctest.Wait()
		assert.False(t, executed.Load())

		m.loaded.Store(true)
		assert.True(t, <-result)
		assert.True(t, executed.Load())
	})
}

func TestWorker_ScheduleRestore_SkipsWhileLockHeld(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)
		m.lockHeld.Store(true)

		assert.True(t, w.ScheduleRestore(context.Background(), domain.OnUpdate()))
		assert.False(t, w.IsRunning())
	})
}

func TestWorker_ScheduleRestore_QueueFull(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)

		release := make(chan struct{})
		var tracking domain.TrackingData
		gomock.InOrder(
			m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(context.Context, domain.RestoreRequest, *ports.JobContext, domain.TrackingData) bool {
					<-release
					return true
				}),
			m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domain.RestoreRequest, _ *ports.JobContext, td domain.TrackingData) bool {
					tracking = td
					return true
				}),
		)
		m.logger.EXPECT().Warn(gomock.Any()).Times(1)

		first := schedule(w, domain.OnUpdate())
		time.Sleep(worker.IdleTimeout)
		synctest.Wait()

		queued := make([]<-chan bool, 0, worker.RequestQueueLimit)
		for range worker.RequestQueueLimit {
			queued = append(queued, schedule(w, domain.OnUpdate()))
		}
		synctest.Wait()

		assert.False(t, w.ScheduleRestore(context.Background(), domain.OnUpdate()))

		close(release)
		assert.True(t, <-first)
		for _, ch := range queued {
			assert.True(t, <-ch)
		}
		assert.Equal(t, worker.RequestQueueLimit, tracking.RequestCount)
	})
}

func TestWorker_ScheduleRestore_CallerCancellation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)
		m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.False(t, w.ScheduleRestore(ctx, domain.OnUpdate()))

		ctx, cancel = context.WithTimeout(context.Background(), worker.IdleTimeout/2)
		defer cancel()
		assert.False(t, w.ScheduleRestore(ctx, domain.OnUpdate()))

		// The queued request still runs.
		synctest.Wait()
		time.Sleep(worker.IdleTimeout)
		synctest.Wait()
		assert.True(t, w.CurrentOperation().Result())
	})
}

func TestWorker_Restore(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)

		var tracking domain.TrackingData
		m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req domain.RestoreRequest, jobCtx *ports.JobContext, td domain.TrackingData) bool {
				assert.Equal(t, domain.SourceOnBuild, req.Source)
				assert.NotNil(t, jobCtx.Checker)
				tracking = td
				return true
			}).Times(1)

		ok, err := w.Restore(context.Background(), domain.OnBuild(false))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, tracking.RequestCount)
		assert.False(t, tracking.IsSolutionLoadRestore)
		assert.False(t, w.IsBusy())
		assert.False(t, w.IsRunning())
		assert.True(t, w.CurrentOperation().Result())
	})
}

func TestWorker_Restore_WaitsForActiveOperation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)

		var inFlight, maxInFlight atomic.Int32
		release := make(chan struct{})
		var once sync.Once
		m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, domain.RestoreRequest, *ports.JobContext, domain.TrackingData) bool {
				n := inFlight.Add(1)
				if n > maxInFlight.Load() {
					maxInFlight.Store(n)
				}
				once.Do(func() { <-release })
				inFlight.Add(-1)
				return true
			}).Times(2)

		background := schedule(w, domain.OnUpdate())
		time.Sleep(worker.IdleTimeout)
		synctest.Wait()
		require.True(t, w.IsBusy())

		restored := make(chan bool, 1)
		go func() {
			ok, err := w.Restore(context.Background(), domain.OnBuild(false))
			assert.NoError(t, err)
			restored <- ok
		}()
		synctest.Wait()
		assert.Equal(t, int32(1), inFlight.Load())

		close(release)
		assert.True(t, <-background)
		assert.True(t, <-restored)
		assert.Equal(t, int32(1), maxInFlight.Load())
	})
}

func TestWorker_TrackingData(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)

		var runs []domain.TrackingData
		m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.RestoreRequest, _ *ports.JobContext, td domain.TrackingData) bool {
				runs = append(runs, td)
				return true
			}).Times(2)

		require.True(t, <-schedule(w, domain.OnUpdate()))
		time.Sleep(time.Minute)
		ok, err := w.Restore(context.Background(), domain.ByMenu(false, domain.ReasonRestoreSolutionPackages))
		require.NoError(t, err)
		require.True(t, ok)

		require.Len(t, runs, 2)
		assert.True(t, runs[0].IsSolutionLoadRestore)
		assert.False(t, runs[0].HasLastOperation)

		assert.False(t, runs[1].IsSolutionLoadRestore)
		assert.True(t, runs[1].HasLastOperation)
		assert.Equal(t, domain.SourceImplicit, runs[1].LastOperationSource)
		assert.Equal(t, time.Minute, runs[1].TimeSinceLastRestoreCompleted)
		assert.Equal(t, domain.ReasonRestoreSolutionPackages, runs[1].ExplicitReason)
	})
}

func TestWorker_PanickingJobFailsOperation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)

		gomock.InOrder(
			m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(context.Context, domain.RestoreRequest, *ports.JobContext, domain.TrackingData) bool {
					panic("engine exploded")
				}),
			m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true),
		)
		m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
			assert.Contains(t, err.Error(), domain.ErrRestorePanicked.Error())
		}).Times(1)

		assert.False(t, <-schedule(w, domain.OnUpdate()))
		assert.True(t, <-schedule(w, domain.OnUpdate()))
	})
}

func TestWorker_SolutionClosing(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, m := setupWorker(t)

		gomock.InOrder(
			m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, _ domain.RestoreRequest, _ *ports.JobContext, _ domain.TrackingData) bool {
					<-ctx.Done()
					return false
				}),
			m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true),
		)
		m.errorList.EXPECT().Clear().Times(1)

		result := schedule(w, domain.OnUpdate())
		time.Sleep(worker.IdleTimeout)
		synctest.Wait()
		require.True(t, w.IsBusy())

		w.OnSolutionClosing()
		assert.False(t, <-result)

		w.OnSolutionClosed()
		assert.Equal(t, int32(2), m.checkers.Load())

		// A new session accepts requests again.
		assert.True(t, <-schedule(w, domain.OnUpdate()))
	})
}

func TestWorker_Closed(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		w, _ := setupWorker(t)
		require.NoError(t, w.Close())

		assert.False(t, w.ScheduleRestore(context.Background(), domain.OnUpdate()))

		ok, err := w.Restore(context.Background(), domain.OnBuild(false))
		assert.False(t, ok)
		require.ErrorIs(t, err, domain.ErrWorkerClosed)
	})
}

func TestWorker_CleanCache(t *testing.T) {
	w, m := setupWorker(t)

	dir := t.TempDir()
	cacheFile := filepath.Join(dir, "obj", domain.CacheFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(cacheFile), domain.DirPerm))
	require.NoError(t, os.WriteFile(cacheFile, []byte("{}"), domain.FilePerm))

	dg := domain.NewDependencyGraphSpec()
	require.NoError(t, dg.AddProject(&domain.ProjectSpec{
		UniqueName:    "App",
		FilePath:      filepath.Join(dir, "App.csproj"),
		CacheFilePath: cacheFile,
		Style:         domain.StylePackageReference,
	}))
	require.NoError(t, dg.AddProject(&domain.ProjectSpec{
		UniqueName:    "Missing",
		FilePath:      filepath.Join(dir, "Missing", "Missing.csproj"),
		CacheFilePath: filepath.Join(dir, "Missing", "obj", domain.CacheFileName),
		Style:         domain.StylePackageReference,
	}))
	m.solution.EXPECT().DependencyGraph(gomock.Any()).Return(dg, nil)

	before := w.JobContext()
	require.NoError(t, w.CleanCache(context.Background()))

	assert.NoFileExists(t, cacheFile)
	assert.NotEqual(t, before.ID, w.JobContext().ID)
	assert.Equal(t, int32(2), m.checkers.Load())
}

func TestWorker_Restore_PromotionGivesUpWhenActiveKeepsChanging(t *testing.T) {
	w, _ := setupWorker(t)

	attempts := 0
	worker.SetActiveDoneHook(w, func() {
		attempts++
		// Another caller wins every race for the active slot.
		worker.ReplaceActive(w)
	})

	ok, err := w.Restore(context.Background(), domain.ByMenu(false, domain.ReasonNone))

	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrPromotionFailed.Error())
	assert.Equal(t, worker.PromoteAttemptsLimit, attempts)
}

func TestWorker_Restore_PromotionRetriesUntilSwapSucceeds(t *testing.T) {
	w, m := setupWorker(t)
	m.job.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true)

	attempts := 0
	worker.SetActiveDoneHook(w, func() {
		attempts++
		if attempts < 3 {
			worker.ReplaceActive(w)
		}
	})

	ok, err := w.Restore(context.Background(), domain.ByMenu(false, domain.ReasonNone))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, attempts)
}
