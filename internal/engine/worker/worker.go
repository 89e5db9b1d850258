// Package worker schedules solution restores. Requests from build events, nominations
// and the user are queued, coalesced and executed one at a time.
package worker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// IdleTimeout is how long the worker waits for trailing requests before it
	// re-evaluates whether the coalesced request can run.
	IdleTimeout = 400 * time.Millisecond
	// RequestQueueLimit is the capacity of the pending request queue.
	RequestQueueLimit = 150
	// PromoteAttemptsLimit bounds the attempts to make an operation the active one.
	PromoteAttemptsLimit = 150
	// MaxIdleWait is how long the worker keeps waiting for nominations when no
	// request arrives and the solution is not fully nominated.
	MaxIdleWait = 30 * time.Second
	// SolutionLoadRetry is the poll interval while the solution is loading.
	SolutionLoadRetry = 100 * time.Millisecond

	runnerShutdownTimeout = 5 * time.Second
)

// session holds the state that is replaced when the solution closes.
type session struct {
	ctx    context.Context
	cancel context.CancelFunc
	queue  chan domain.RestoreRequest
}

// Worker runs at most one restore job at a time for a solution session.
type Worker struct {
	solution   ports.Solution
	lock       ports.LockService
	job        ports.RestoreJob
	newChecker ports.CheckerFactory
	errorList  ports.ErrorList
	events     ports.RestoreEventsPublisher
	metrics    ports.Metrics
	logger     ports.Logger
	clock      clock.Clock

	active  atomic.Pointer[Operation]
	running atomic.Int32
	loaded  atomic.Bool

	// activeDone runs after promote saw the active operation complete and before it
	// tries to replace it. Nil outside tests.
	activeDone func()

	mu            sync.Mutex
	closed        bool
	session       *session
	pending       *Operation
	runner        *Operation
	jobCtx        *ports.JobContext
	firstRestore  bool
	lastCompleted time.Time
	lastSource    domain.RestoreSource
}

// New creates a Worker for a solution session.
func New(
	solution ports.Solution,
	lock ports.LockService,
	job ports.RestoreJob,
	newChecker ports.CheckerFactory,
	errorList ports.ErrorList,
	events ports.RestoreEventsPublisher,
	metrics ports.Metrics,
	logger ports.Logger,
	clk clock.Clock,
) *Worker {
	w := &Worker{
		solution:     solution,
		lock:         lock,
		job:          job,
		newChecker:   newChecker,
		errorList:    errorList,
		events:       events,
		metrics:      metrics,
		logger:       logger,
		clock:        clk,
		firstRestore: true,
	}
	w.startSession()
	return w
}

// startSession resets the per-solution state. The caller holds mu or owns w exclusively.
func (w *Worker) startSession() {
	ctx, cancel := context.WithCancel(context.Background())
	w.session = &session{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan domain.RestoreRequest, RequestQueueLimit),
	}
	w.pending = newOperation()
	w.runner = nil
	w.jobCtx = &ports.JobContext{ID: uuid.New(), Checker: w.newChecker()}
	w.active.Store(completedOperation(true))
	w.loaded.Store(false)
}

// ScheduleRestore queues req and blocks until the next restore operation completes,
// which is not necessarily one started for req. It returns the result of that
// operation, or false when ctx is cancelled or the request could not be queued.
func (w *Worker) ScheduleRestore(ctx context.Context, req domain.RestoreRequest) bool {
	if ctx.Err() != nil {
		return false
	}

	w.running.Add(1)
	defer w.running.Add(-1)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false
	}
	s := w.session
	pending := w.pending

	if len(s.queue) == 0 && !w.IsBusy() && w.lock.IsHeld() {
		// Another operation holds the restore lock and restores what it touches.
		w.mu.Unlock()
		w.logger.Debug("restore skipped: the restore lock is held by another operation")
		return true
	}

	select {
	case s.queue <- req:
	default:
		w.mu.Unlock()
		w.logger.Warn(zerr.With(domain.ErrRequestQueueFull, "limit", RequestQueueLimit).Error())
		return false
	}
	w.metrics.RequestScheduled(req.Source)
	w.metrics.QueueDepth(len(s.queue))

	if w.runner == nil {
		w.runner = newOperation()
		go w.run(s, w.runner)
	}
	runner := w.runner
	w.mu.Unlock()

	select {
	case <-pending.Done():
		return pending.Result()
	case <-runner.Done():
		return runner.Result()
	case <-ctx.Done():
		return false
	}
}

// Restore executes req immediately on the caller's goroutine once the active
// operation completes. The returned error is non-nil only when the worker is closed
// or the operation could not be promoted.
func (w *Worker) Restore(ctx context.Context, req domain.RestoreRequest) (ok bool, err error) {
	w.running.Add(1)
	defer w.running.Add(-1)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false, domain.ErrWorkerClosed
	}
	s := w.session
	w.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	op := newOperation()
	defer func() { op.complete(ok) }()
	defer w.recoverPanic(&ok)

	if err := w.promote(ctx, op); err != nil {
		if ctx.Err() != nil {
			return false, nil
		}
		return false, err
	}

	tracking := domain.TrackingData{RequestCount: 1, ExplicitReason: req.ExplicitReason}
	return w.process(ctx, op, req, tracking), nil
}

// CleanCache deletes the no-op cache files of the solution's projects and starts a new
// job context with an empty up-to-date cache. In-flight restores are not cancelled.
func (w *Worker) CleanCache(ctx context.Context) error {
	var errs error
	dg, err := w.solution.DependencyGraph(ctx)
	if err != nil {
		errs = err
	} else {
		for _, p := range dg.Projects() {
			if !p.Style.Restorable() || p.CacheFilePath == "" {
				continue
			}
			if err := os.Remove(p.CacheFilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
				wrapped := zerr.Wrap(err, domain.ErrCacheFileRemoveFailed.Error())
				errs = errors.Join(errs, zerr.With(wrapped, "path", p.CacheFilePath))
			}
		}
	}

	w.mu.Lock()
	w.jobCtx = &ports.JobContext{ID: uuid.New(), Checker: w.newChecker()}
	w.mu.Unlock()
	return errs
}

// OnSolutionLoaded releases the background runner waiting for the solution to load.
func (w *Worker) OnSolutionLoaded() {
	w.loaded.Store(true)
}

// OnSolutionClosing cancels the background runner and any restore in progress.
func (w *Worker) OnSolutionClosing() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.session.cancel()
}

// OnSolutionClosed starts a new session and clears the restore diagnostics.
func (w *Worker) OnSolutionClosed() {
	w.reset(false)
	w.errorList.Clear()
}

// Close cancels pending work and rejects later requests.
func (w *Worker) Close() error {
	w.reset(true)
	return nil
}

func (w *Worker) reset(closing bool) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.session.cancel()
	runner := w.runner
	w.mu.Unlock()

	if runner != nil {
		select {
		case <-runner.Done():
		case <-w.clock.After(runnerShutdownTimeout):
			w.logger.Warn("restore runner did not stop in time")
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending.complete(false)
	if closing {
		w.closed = true
		return
	}
	w.startSession()
}

// IsBusy reports whether a restore is executing.
func (w *Worker) IsBusy() bool {
	return !w.active.Load().IsCompleted()
}

// IsRunning reports whether any restore is executing, queued or awaited.
func (w *Worker) IsRunning() bool {
	return w.running.Load() > 0
}

// CurrentOperation returns the active restore operation, or the last completed one.
func (w *Worker) CurrentOperation() *Operation {
	return w.active.Load()
}

// JobContext returns the job context of the current session.
func (w *Worker) JobContext() *ports.JobContext {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.jobCtx
}

func (w *Worker) run(s *session, runner *Operation) {
	status := false
	defer func() {
		w.mu.Lock()
		if w.runner == runner {
			w.runner = nil
		}
		w.mu.Unlock()
		runner.complete(status)
	}()

	if !w.waitForSolutionLoad(s.ctx) {
		return
	}

	for s.ctx.Err() == nil {
		w.mu.Lock()
		if len(s.queue) == 0 {
			if w.runner == runner {
				w.runner = nil
			}
			w.mu.Unlock()
			return
		}
		op := w.pending
		w.mu.Unlock()

		status = w.iterate(s, op)
	}
}

func (w *Worker) waitForSolutionLoad(ctx context.Context) bool {
	for !w.loaded.Load() {
		if w.solution.IsLoaded() {
			w.loaded.Store(true)
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-w.clock.After(SolutionLoadRetry):
		}
	}
	return true
}

// iterate takes one request, coalesces the requests queued behind it and executes the
// result as op. op is completed on every path.
func (w *Worker) iterate(s *session, op *Operation) (status bool) {
	defer func() {
		w.replacePending(op)
		op.complete(status)
	}()
	defer w.recoverPanic(&status)

	var req domain.RestoreRequest
	select {
	case req = <-s.queue:
	case <-s.ctx.Done():
		return false
	}

	if err := w.promote(s.ctx, op); err != nil {
		if s.ctx.Err() == nil {
			w.logger.Error(err)
		}
		return false
	}

	tracking, ok := w.drain(s, &req)
	if !ok {
		return false
	}
	w.metrics.RequestsCoalesced(tracking.RequestCount)

	// New callers join the next operation from here on.
	w.replacePending(op)

	return w.process(s.ctx, op, req, tracking)
}

// drain coalesces queued requests into req until the solution is ready to restore.
// It returns false when the session is cancelled.
func (w *Worker) drain(s *session, req *domain.RestoreRequest) (domain.TrackingData, bool) {
	tracking := domain.TrackingData{RequestCount: 1, ExplicitReason: req.ExplicitReason}
	lastNomination := w.clock.Now()

	for {
		allNominated := w.solution.AllProjectsNominated()

		select {
		case next := <-s.queue:
			tracking.RequestCount++
			lastNomination = w.clock.Now()
			w.metrics.QueueDepth(len(s.queue))

			upgraded := next.Source != req.Source
			*req = req.Coalesce(next)
			if upgraded {
				// Explicit requests are not delayed further.
				tracking.ImplicitReason = domain.ImplicitReasonNone
				tracking.ExplicitReason = req.ExplicitReason
				return tracking, true
			}
			continue
		case <-s.ctx.Done():
			return tracking, false
		case <-w.clock.After(IdleTimeout):
		}

		if allNominated {
			tracking.ImplicitReason = domain.ImplicitReasonAllProjectsNominated
			return tracking, true
		}
		if w.clock.Now().Sub(lastNomination) > MaxIdleWait {
			tracking.ImplicitReason = domain.ImplicitReasonNominationsIdleTimeout
			return tracking, true
		}
	}
}

// promote makes op the active operation once the current active one completes.
func (w *Worker) promote(ctx context.Context, op *Operation) error {
	for range PromoteAttemptsLimit {
		active := w.active.Load()
		select {
		case <-active.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
		if w.activeDone != nil {
			w.activeDone()
		}
		if w.active.CompareAndSwap(active, op) {
			return nil
		}
	}
	return zerr.With(domain.ErrPromotionFailed, "attempts", PromoteAttemptsLimit)
}

func (w *Worker) replacePending(op *Operation) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == op {
		w.pending = newOperation()
	}
}

// process executes req as op and resolves op with the result.
func (w *Worker) process(ctx context.Context, op *Operation, req domain.RestoreRequest, tracking domain.TrackingData) bool {
	w.mu.Lock()
	tracking.IsSolutionLoadRestore = w.firstRestore && req.Source == domain.SourceImplicit
	if !w.firstRestore {
		tracking.TimeSinceLastRestoreCompleted = w.clock.Now().Sub(w.lastCompleted)
		tracking.LastOperationSource = w.lastSource
		tracking.HasLastOperation = true
	}
	w.firstRestore = false
	w.lastSource = req.Source
	jobCtx := w.jobCtx
	w.mu.Unlock()

	w.events.OnSolutionRestoreStarted(domain.SolutionRestoreStartedEvent{Request: req})

	result := w.job.Execute(ctx, req, jobCtx, tracking)

	w.mu.Lock()
	w.lastCompleted = w.clock.Now()
	w.mu.Unlock()

	op.complete(result)
	return result
}

// recoverPanic turns a panic of a restore operation into a failed result.
func (w *Worker) recoverPanic(status *bool) {
	if r := recover(); r != nil {
		w.logger.Error(zerr.With(domain.ErrRestorePanicked, "panic", fmt.Sprint(r)))
		*status = false
	}
}
