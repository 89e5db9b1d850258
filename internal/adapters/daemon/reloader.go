package daemon

import (
	"context"
	"errors"
	"strings"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
)

// Nominator receives the nominations the daemon reads from disk.
type Nominator interface {
	LoadProject(n domain.NominationData) error
	NominateProject(ctx context.Context, n domain.NominationData) (bool, error)
	RemoveProject(ctx context.Context, projectUniqueName string) bool
	ScheduleRestore(ctx context.Context) bool
}

// Reloader turns changes of restore input files into nominations and restores.
type Reloader struct {
	loader    ports.ConfigLoader
	times     ports.FileTimes
	cache     *NominationCache
	target    Nominator
	lifecycle *Lifecycle
	logger    ports.Logger
}

// NewReloader creates a Reloader. lifecycle may be nil.
func NewReloader(
	loader ports.ConfigLoader,
	times ports.FileTimes,
	target Nominator,
	lifecycle *Lifecycle,
	logger ports.Logger,
) *Reloader {
	return &Reloader{
		loader:    loader,
		times:     times,
		cache:     NewNominationCache(),
		target:    target,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// Load stores the nominations of paths without scheduling restores. Files that
// fail to load are skipped and their errors joined.
func (r *Reloader) Load(paths []string) error {
	var errs []error
	for _, path := range paths {
		mtime := r.times.LastWriteTime(path).UnixNano()
		n, err := r.loader.LoadNomination(path)
		if err == nil {
			err = r.target.LoadProject(n)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.cache.Store(path, mtime, n)
	}
	return errors.Join(errs...)
}

// OnChange handles a debounced batch of changed files. Nomination files are
// reloaded and renominated when their content changed; any other restore input
// schedules a restore of the solution.
func (r *Reloader) OnChange(ctx context.Context, paths []string) {
	if r.lifecycle != nil {
		r.lifecycle.ResetTimer()
	}

	restore := false
	for _, path := range paths {
		if strings.HasSuffix(path, domain.NominationFileSuffix) {
			r.reload(ctx, path)
			continue
		}
		r.logger.Info("restore input changed: " + path)
		restore = true
	}

	if restore {
		r.target.ScheduleRestore(ctx)
	}
}

func (r *Reloader) reload(ctx context.Context, path string) {
	modified := r.times.LastWriteTime(path)
	if modified.IsZero() {
		if project, ok := r.cache.Forget(path); ok {
			r.logger.Info("nomination removed: " + path)
			r.target.RemoveProject(ctx, project)
		}
		return
	}

	mtime := modified.UnixNano()
	if r.cache.Fresh(path, mtime) {
		return
	}

	n, err := r.loader.LoadNomination(path)
	if err != nil {
		r.logger.Error(err)
		return
	}

	previous, known := r.cache.Project(path)
	if !r.cache.Store(path, mtime, n) {
		r.logger.Debug("nomination unchanged: " + path)
		return
	}
	if known && !strings.EqualFold(previous, n.ProjectUniqueName) {
		r.target.RemoveProject(ctx, previous)
	}

	r.logger.Info("nomination changed: " + path)
	if _, err := r.target.NominateProject(ctx, n); err != nil {
		r.logger.Error(err)
	}
}
