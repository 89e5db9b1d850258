// Package job executes coalesced solution restore requests.
package job

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/juju/clock"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Job implements ports.RestoreJob.
type Job struct {
	solution       ports.Solution
	engine         ports.RestoreEngine
	packagesConfig ports.PackagesConfigRestorer
	settings       ports.Settings
	lock           ports.LockService
	errorList      ports.ErrorList
	events         ports.RestoreEventsPublisher
	tracer         ports.Tracer
	metrics        ports.Metrics
	logger         ports.Logger
	clock          clock.Clock
}

// New creates a new Job with the given dependencies.
func New(
	solution ports.Solution,
	engine ports.RestoreEngine,
	packagesConfig ports.PackagesConfigRestorer,
	settings ports.Settings,
	lock ports.LockService,
	errorList ports.ErrorList,
	events ports.RestoreEventsPublisher,
	tracer ports.Tracer,
	metrics ports.Metrics,
	logger ports.Logger,
	clk clock.Clock,
) *Job {
	return &Job{
		solution:       solution,
		engine:         engine,
		packagesConfig: packagesConfig,
		settings:       settings,
		lock:           lock,
		errorList:      errorList,
		events:         events,
		tracer:         tracer,
		metrics:        metrics,
		logger:         logger,
		clock:          clk,
	}
}

// run is the state of a single Execute call.
type run struct {
	req      domain.RestoreRequest
	jobCtx   *ports.JobContext
	tracking domain.TrackingData
	span     ports.Span
	start    time.Time
	consent  bool

	status       domain.RestoreStatus
	solutionDir  string
	projects     int
	summaries    []domain.RestoreSummary
	packageCount int
	noOpCount    int
	upToDate     int
}

// fail marks the run as failed unless it was cancelled.
func (r *run) fail() {
	if r.status != domain.StatusCancelled {
		r.status = domain.StatusFailed
	}
}

// succeed records that a restore changed something, unless the run already failed.
func (r *run) succeed() {
	if r.status == domain.StatusNoOp {
		r.status = domain.StatusSucceeded
	}
}

// Execute restores the solution while holding the restore lock. It reports whether the
// restore succeeded or had nothing to do.
func (j *Job) Execute(
	ctx context.Context,
	req domain.RestoreRequest,
	jobCtx *ports.JobContext,
	tracking domain.TrackingData,
) bool {
	r := &run{
		req:      req,
		jobCtx:   jobCtx,
		tracking: tracking,
		start:    j.clock.Now(),
		consent:  j.settings.ConsentGranted(),
		status:   domain.StatusNoOp,
	}

	ctx, span := j.tracer.Start(ctx, "restore", ports.WithAttributes(map[string]any{
		"restore.operation_id": req.OperationID.String(),
		"restore.source":       req.Source.String(),
		"restore.force":        req.Force,
	}))
	defer span.End()
	r.span = span

	err := j.lock.ExecuteExclusive(ctx, func(ctx context.Context) error {
		return j.restore(ctx, r)
	})
	switch {
	case err == nil:
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		r.status = domain.StatusCancelled
		j.logger.Info("restore canceled")
	default:
		r.fail()
		span.RecordError(err)
		j.logger.Error(err)
	}

	j.finish(r, span)
	return r.status.Successful()
}

func (j *Job) restore(ctx context.Context, r *run) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.solutionDir = j.solution.Directory()
	available := j.solution.IsAvailable()

	dg, err := j.solution.DependencyGraph(ctx)
	if err != nil {
		return err
	}
	r.projects = dg.Len()

	if dg.Len() > 0 && r.solutionDir == "" {
		r.fail()
		j.report(r, domain.Diagnostic{Severity: domain.SeverityError, Message: domain.ErrSolutionNotSaved.Error()})
		j.logger.Error(domain.ErrSolutionNotSaved)
		return nil
	}

	var packagesConfig []*domain.ProjectSpec
	for _, p := range dg.Projects() {
		if p.Style == domain.StylePackagesConfig {
			packagesConfig = append(packagesConfig, p)
		}
	}
	if len(packagesConfig) > 0 {
		if err := j.restorePackagesConfig(ctx, r, packagesConfig); err != nil {
			return err
		}
	}

	return j.restorePackageSpecs(ctx, r, dg, available)
}

func (j *Job) restorePackagesConfig(ctx context.Context, r *run, projects []*domain.ProjectSpec) error {
	if r.solutionDir == "" {
		return nil
	}

	missing, err := j.packagesConfig.MissingPackages(ctx, r.solutionDir, projects)
	if err != nil {
		return err
	}

	if !r.consent {
		if r.req.Source == domain.SourceExplicit && len(missing) > 0 {
			// Without consent missing packages are only reported.
			names := make([]string, 0, len(missing))
			for _, m := range missing {
				names = append(names, m.Package.String())
			}
			msg := fmt.Sprintf("%s: %s", domain.ErrRestoreConsentMissing.Error(), strings.Join(names, ", "))
			j.report(r, domain.Diagnostic{Severity: domain.SeverityWarning, Message: msg})
			j.logger.Warn(msg)
		}
		return nil
	}

	if len(missing) == 0 {
		return nil
	}

	summaries, err := j.packagesConfig.RestoreMissing(ctx, r.solutionDir, missing)
	j.collect(r, summaries)
	if err != nil {
		return err
	}
	if domain.StatusFromSummaries(summaries) == domain.StatusFailed {
		r.fail()
	} else {
		r.succeed()
	}
	return nil
}

func (j *Job) restorePackageSpecs(ctx context.Context, r *run, dg *domain.DependencyGraphSpec, available bool) error {
	if !hasBuildIntegrated(dg) {
		return nil
	}

	if !r.consent {
		if r.req.Source == domain.SourceExplicit {
			j.report(r, domain.Diagnostic{Severity: domain.SeverityError, Message: domain.ErrRestoreConsentMissing.Error()})
			j.logger.Error(domain.ErrRestoreConsentMissing)
		}
		return nil
	}

	if !available {
		folder := j.settings.GlobalPackagesFolder()
		if !filepath.IsAbs(folder) {
			j.logger.Warn(zerr.With(domain.ErrRelativeGlobalPackagesFolder, "folder", folder).Error())
			return nil
		}
	}

	checker := r.jobCtx.Checker
	needing := checker.PerformUpToDateCheck(dg)

	// The check always runs to keep the checker's cache current; its result only
	// applies to restores that are not forced.
	target := dg
	if !r.req.Force {
		target = dg.WithoutRestores()
		for _, name := range needing {
			target.AddRestore(name)
		}
		r.upToDate = upToDateCount(dg, needing)
		r.noOpCount = r.upToDate
	}

	roots := integratedRoots(target)
	if len(roots) == 0 {
		return nil
	}

	summaries, err := j.restoreRoots(ctx, r, target, roots)
	checker.ReportStatus(summaries)
	j.collect(r, summaries)
	if err != nil {
		return err
	}

	switch domain.StatusFromSummaries(summaries) {
	case domain.StatusFailed:
		r.fail()
	case domain.StatusSucceeded:
		r.succeed()
	}
	return nil
}

// restoreRoots restores every root of dg with bounded parallelism. A failing project
// does not stop the others. On cancellation the summaries produced so far are returned.
func (j *Job) restoreRoots(
	ctx context.Context,
	r *run,
	dg *domain.DependencyGraphSpec,
	roots []string,
) ([]domain.RestoreSummary, error) {
	var (
		mu        sync.Mutex
		summaries = make([]domain.RestoreSummary, 0, len(roots))
	)

	resolved := make(map[string]*domain.ProjectSpec, len(roots))
	for _, name := range roots {
		project := dg.Project(name)
		if project == nil {
			err := zerr.With(domain.ErrProjectNotFound, "project", name)
			summaries = append(summaries, failedSummary(name, "", err))
			continue
		}
		resolved[name] = project
	}

	g := new(errgroup.Group)
	g.SetLimit(j.degreeOfConcurrency())

	for _, name := range roots {
		project, ok := resolved[name]
		if !ok {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summary, err := j.engine.Restore(ctx, ports.EngineRequest{
				OperationID: r.req.OperationID,
				Project:     project,
				Graph:       closure(dg, name),
				Force:       r.req.Force,
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				summary = failedSummary(name, project.FilePath, err)
			}
			if summary.ProjectUniqueName == "" {
				summary.ProjectUniqueName = name
			}

			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return summaries, err
}

func (j *Job) degreeOfConcurrency() int {
	if j.settings.ParallelDisabled() {
		return 1
	}
	if n := j.settings.MaxDegreeOfConcurrency(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// collect records summary counters and reports the problems of each project.
func (j *Job) collect(r *run, summaries []domain.RestoreSummary) {
	for _, s := range summaries {
		r.summaries = append(r.summaries, s)
		r.packageCount += s.InstallCount
		if s.NoOp {
			r.noOpCount++
		}
		for _, m := range s.Messages {
			if m.Level == domain.SeverityInfo {
				continue
			}
			j.report(r, domain.DiagnosticFromMessage(m))
		}
		if !s.Success {
			j.logger.Error(zerr.With(domain.ErrRestoreFailed, "project", s.ProjectUniqueName))
		}
	}
}

func (j *Job) report(r *run, d domain.Diagnostic) {
	j.errorList.Add(d)
	r.span.Report(d)
}

// finish logs the summary line and emits telemetry, metrics and the completed event.
func (j *Job) finish(r *run, span ports.Span) {
	duration := j.clock.Now().Sub(r.start)

	if r.consent {
		msg := fmt.Sprintf("Restore %s in %s", strings.ToLower(r.status.String()), duration.Round(time.Millisecond))
		if r.req.Source == domain.SourceExplicit {
			j.logger.Info(msg)
		} else {
			j.logger.Debug(msg)
		}
	} else {
		j.logger.Debug("package references were not restored: restore consent is not granted")
	}

	span.SetAttribute("restore.status", r.status.String())
	span.SetAttribute("restore.project_count", r.projects)
	span.SetAttribute("restore.package_count", r.packageCount)
	span.SetAttribute("restore.noop_project_count", r.noOpCount)
	span.SetAttribute("restore.uptodate_project_count", r.upToDate)
	span.SetAttribute("restore.duration_ms", duration.Milliseconds())
	span.SetAttribute("restore.implicit_reason", r.tracking.ImplicitReason.String())
	span.SetAttribute("restore.request_count", r.tracking.RequestCount)
	span.SetAttribute("restore.explicit_reason", r.tracking.ExplicitReason.String())
	span.SetAttribute("restore.solution_load", r.tracking.IsSolutionLoadRestore)
	if r.tracking.HasLastOperation {
		span.SetAttribute("restore.since_last_ms", r.tracking.TimeSinceLastRestoreCompleted.Milliseconds())
		span.SetAttribute("restore.last_source", r.tracking.LastOperationSource.String())
	}

	restored := len(r.summaries) - countNoOp(r.summaries)
	j.metrics.RestoreCompleted(r.status, duration)
	j.metrics.ProjectsRestored(restored, r.upToDate)

	j.events.OnSolutionRestoreCompleted(domain.SolutionRestoredEvent{
		Status:            r.status,
		SolutionDirectory: r.solutionDir,
		Duration:          duration,
	})
}

func buildIntegrated(style domain.ProjectStyle) bool {
	return style.Restorable() || style == domain.StyleDotnetCliTool
}

func hasBuildIntegrated(dg *domain.DependencyGraphSpec) bool {
	for _, p := range dg.Projects() {
		if buildIntegrated(p.Style) {
			return true
		}
	}
	return false
}

// integratedRoots returns the restore roots of dg handled by the restore engine.
// packages.config projects are restored separately and unknown roots are kept so
// they surface as failures.
func integratedRoots(dg *domain.DependencyGraphSpec) []string {
	var roots []string
	for _, name := range dg.Restore() {
		if p := dg.Project(name); p != nil && !buildIntegrated(p.Style) {
			continue
		}
		roots = append(roots, name)
	}
	return roots
}

// upToDateCount returns how many restorable restore roots of dg are not in needing.
func upToDateCount(dg *domain.DependencyGraphSpec, needing []string) int {
	need := make(map[string]struct{}, len(needing))
	for _, n := range needing {
		need[strings.ToLower(n)] = struct{}{}
	}
	count := 0
	for _, name := range dg.Restore() {
		p := dg.Project(name)
		if p == nil || !p.Style.Restorable() {
			continue
		}
		if _, ok := need[strings.ToLower(name)]; !ok {
			count++
		}
	}
	return count
}

// closure returns the graph restored for a single root: the root and the projects it
// transitively references.
func closure(dg *domain.DependencyGraphSpec, root string) *domain.DependencyGraphSpec {
	out := domain.NewDependencyGraphSpec()
	for _, p := range dg.Closure(root) {
		out.SetProject(p)
	}
	out.AddRestore(root)
	return out
}

func failedSummary(name, path string, err error) domain.RestoreSummary {
	return domain.RestoreSummary{
		ProjectUniqueName: name,
		Success:           false,
		Messages: []domain.LogMessage{{
			Code:        "NU1000",
			Level:       domain.SeverityError,
			Message:     err.Error(),
			ProjectPath: path,
		}},
	}
}

func countNoOp(summaries []domain.RestoreSummary) int {
	n := 0
	for _, s := range summaries {
		if s.NoOp {
			n++
		}
	}
	return n
}
