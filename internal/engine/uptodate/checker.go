// Package uptodate decides which projects of a solution need a restore.
package uptodate

import (
	"slices"
	"strings"
	"sync"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
)

// Checker compares a dependency graph spec against the last restored one and the
// restore outputs on disk. One checker is owned by a single solution session.
type Checker struct {
	logger ports.Logger
	times  ports.FileTimes

	mu       sync.Mutex
	cached   *domain.DependencyGraphSpec
	version  uint64
	outputs  map[string]domain.RestoreOutputData
	failed   map[string]struct{}
	warnings map[string][]domain.LogMessage
}

// NewChecker creates a new Checker reading output timestamps through times.
func NewChecker(logger ports.Logger, times ports.FileTimes) *Checker {
	return &Checker{
		logger:   logger,
		times:    times,
		outputs:  make(map[string]domain.RestoreOutputData),
		failed:   make(map[string]struct{}),
		warnings: make(map[string][]domain.LogMessage),
	}
}

func key(name string) string {
	return strings.ToLower(name)
}

// PerformUpToDateCheck returns the unique names of the projects of dg that need a
// restore, sorted. The first check after construction or CleanCache returns every
// restore root of dg.
func (c *Checker) PerformUpToDateCheck(dg *domain.DependencyGraphSpec) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached == nil {
		c.replaceCache(dg)
		return dg.Restore()
	}

	dirtySpecs := make(map[string]struct{})
	dirtyOutputs := make(map[string]struct{})
	hasDirtyNonTransitiveSpecs := false

	for _, p := range dg.Projects() {
		k := key(p.UniqueName)
		if !p.Equal(c.cached.Project(p.UniqueName)) {
			dirtySpecs[k] = struct{}{}
			if !p.Style.Restorable() {
				hasDirtyNonTransitiveSpecs = true
			}
		}
		if p.Style.Restorable() && c.outputsDirty(p) {
			dirtyOutputs[k] = struct{}{}
		}
	}

	if len(dirtySpecs) == 0 && len(dirtyOutputs) == 0 {
		// The cached spec is kept as is: it is structurally equal to dg.
		c.replayWarnings(dg, nil)
		return []string{}
	}

	c.replaceCache(dg)

	dirty := parents(dirtySpecs, dg)
	for k := range dirtyOutputs {
		dirty[k] = struct{}{}
	}

	var out []string
	for _, p := range dg.Projects() {
		k := key(p.UniqueName)
		if _, ok := dirty[k]; !ok {
			continue
		}
		if hasDirtyNonTransitiveSpecs && !dg.IsRestoreRoot(p.UniqueName) {
			continue
		}
		out = append(out, p.UniqueName)
	}

	c.replayWarnings(dg, dirty)
	if out == nil {
		return []string{}
	}
	return out
}

// parents returns the dirty projects plus every project that transitively references one.
func parents(dirtySpecs map[string]struct{}, dg *domain.DependencyGraphSpec) map[string]struct{} {
	dirty := make(map[string]struct{}, len(dirtySpecs))
	for k := range dirtySpecs {
		dirty[k] = struct{}{}
	}
	if len(dirty) == 0 {
		return dirty
	}

	// Leaves come first, so every reference is decided before its dependents.
	for _, p := range dg.SortByDependencies() {
		k := key(p.UniqueName)
		if _, ok := dirty[k]; ok {
			continue
		}
		for _, ref := range p.ProjectReferences() {
			if _, ok := dirty[key(ref)]; ok {
				dirty[k] = struct{}{}
				break
			}
		}
	}
	return dirty
}

func (c *Checker) outputsDirty(p *domain.ProjectSpec) bool {
	k := key(p.UniqueName)
	if _, failed := c.failed[k]; failed {
		return true
	}
	recorded, ok := c.outputs[k]
	if !ok {
		return true
	}
	return !recorded.Equal(c.observe(p))
}

// observe reads the current output timestamps of a project.
func (c *Checker) observe(p *domain.ProjectSpec) domain.RestoreOutputData {
	paths := domain.RestoreOutputPaths(p)
	out := domain.RestoreOutputData{
		AssetsFile:  c.times.LastWriteTime(paths.AssetsFile),
		CacheFile:   c.times.LastWriteTime(paths.CacheFile),
		TargetsFile: c.times.LastWriteTime(paths.TargetsFile),
		PropsFile:   c.times.LastWriteTime(paths.PropsFile),
	}
	if paths.LockFile != "" {
		out.LockFile = c.times.LastWriteTime(paths.LockFile)
	}
	if paths.PackagesFolder != "" {
		out.PackagesFolderCreated = c.times.CreationTime(paths.PackagesFolder)
	}
	return out
}

func (c *Checker) replaceCache(dg *domain.DependencyGraphSpec) {
	c.cached = dg
	c.version++
}

// replayWarnings logs the cached warnings of up-to-date projects that still belong to dg.
func (c *Checker) replayWarnings(dg *domain.DependencyGraphSpec, dirty map[string]struct{}) {
	for _, p := range dg.Projects() {
		k := key(p.UniqueName)
		if _, ok := dirty[k]; ok || p.Settings.HideWarningsAndErrors {
			continue
		}
		for _, w := range c.warnings[k] {
			c.logger.Warn(formatMessage(w))
		}
	}
}

func formatMessage(m domain.LogMessage) string {
	if m.Code == "" {
		return m.Message
	}
	return m.Code + ": " + m.Message
}

// ReportStatus records the outcome of restored projects. Successful projects have
// their output timestamps recorded; failed projects are forced dirty on the next
// check. Projects without a summary keep their previous status.
func (c *Checker) ReportStatus(summaries []domain.RestoreSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range summaries {
		k := key(s.ProjectUniqueName)

		var spec *domain.ProjectSpec
		if c.cached != nil {
			spec = c.cached.Project(s.ProjectUniqueName)
		}

		if s.Success && spec != nil {
			delete(c.failed, k)
			if spec.Style.Restorable() {
				c.outputs[k] = c.observe(spec)
			}
		} else {
			c.failed[k] = struct{}{}
			delete(c.outputs, k)
		}

		if spec != nil && !spec.Settings.HideWarningsAndErrors {
			if warnings := s.Warnings(); len(warnings) > 0 {
				c.warnings[k] = slices.Clone(warnings)
				continue
			}
		}
		delete(c.warnings, k)
	}
}

// CleanCache forgets the cached spec, every recorded output, failure and warning.
func (c *Checker) CleanCache() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cached = nil
	c.version++
	clear(c.outputs)
	clear(c.failed)
	clear(c.warnings)
}

// CacheVersion returns a counter that changes whenever the cached spec is replaced or
// cleared.
func (c *Checker) CacheVersion() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}
