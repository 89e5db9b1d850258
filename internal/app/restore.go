package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/ui/style"
	"go.trai.ch/zerr"
)

// RestoreOptions configures an explicit restore.
type RestoreOptions struct {
	Force bool
}

// Restore loads every nomination of the workspace and runs an explicit restore of
// the solution in process.
func (a *App) Restore(ctx context.Context, opts RestoreOptions) error {
	rt, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx, rt)

	a.load(rt)

	var (
		mu        sync.Mutex
		completed *domain.SolutionRestoredEvent
	)
	unsubscribe := rt.Events.SubscribeCompleted(func(e domain.SolutionRestoredEvent) {
		mu.Lock()
		defer mu.Unlock()
		completed = &e
	})
	defer unsubscribe()

	ok, err := rt.Service.RestoreSolution(ctx, opts.Force, domain.ReasonRestoreSolutionPackages)
	if err != nil {
		return err
	}

	mu.Lock()
	event := domain.SolutionRestoredEvent{Status: domain.StatusFailed, SolutionDirectory: rt.Workspace.Root}
	if completed != nil {
		event = *completed
	} else if ok {
		event.Status = domain.StatusNoOp
	}
	mu.Unlock()

	entries := rt.Diagnostics.Entries()
	if a.json {
		if err := writeJSON(a.out, newReport(event, entries)); err != nil {
			return zerr.Wrap(err, domain.ErrOutputWriteFailed.Error())
		}
	} else {
		writeDiagnostics(a.out, entries)
		writeSummary(a.out, event)
	}

	if !ok || !event.Status.Successful() {
		return errors.Join(domain.ErrRestoreExecutionFailed, zerr.With(domain.ErrRestoreFailed, "status", event.Status.String()))
	}
	return nil
}

// Check prints the projects whose restore outputs are out of date.
func (a *App) Check(ctx context.Context) ([]string, error) {
	rt, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer a.close(ctx, rt)

	a.load(rt)

	dirty, err := rt.Service.PerformUpToDateCheck(ctx)
	if err != nil {
		return nil, err
	}

	if a.json {
		if dirty == nil {
			dirty = []string{}
		}
		if err := writeJSON(a.out, map[string][]string{"dirty": dirty}); err != nil {
			return nil, zerr.Wrap(err, domain.ErrOutputWriteFailed.Error())
		}
		return dirty, nil
	}

	if len(dirty) == 0 {
		_, _ = fmt.Fprintf(a.out, "%s all projects are up-to-date\n", style.Success.Render(style.Check))
		return dirty, nil
	}
	for _, project := range dirty {
		_, _ = fmt.Fprintf(a.out, "%s %s\n", style.Notice.Render(style.Tilde), project)
	}
	return dirty, nil
}

// CleanOptions configures the clean command.
type CleanOptions struct {
	// Packages also removes the global packages folder.
	Packages bool
}

// Clean removes the restore cache files of every project, as a clean build does.
func (a *App) Clean(ctx context.Context, opts CleanOptions) error {
	rt, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx, rt)

	a.load(rt)

	if _, err := rt.Service.OnBuildBegin(ctx, domain.BuildActionClean); err != nil {
		return err
	}
	rt.Service.OnBuildDone(ctx)
	a.logger.Info("removed restore cache files")

	if opts.Packages {
		folder := rt.Workspace.PackagesFolder()
		if err := os.RemoveAll(folder); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheFileRemoveFailed.Error()), "path", folder)
		}
		a.logger.Info("removed packages folder " + folder)
	}
	return nil
}
