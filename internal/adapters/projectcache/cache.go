// Package projectcache stores project nominations and applies the solution settings
// to them when a restore asks for the dependency graph.
package projectcache

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
)

// Cache is the in-memory project store of an open solution. It implements both
// ports.Solution and ports.ProjectCache.
type Cache struct {
	ws       *domain.Workspace
	settings ports.Settings

	mu       sync.RWMutex
	projects map[string]*domain.DependencyGraphSpec
	loaded   atomic.Bool
}

// New creates a cache for the solution described by ws. A nil ws means no solution
// is open.
func New(ws *domain.Workspace, settings ports.Settings) *Cache {
	return &Cache{
		ws:       ws,
		settings: settings,
		projects: make(map[string]*domain.DependencyGraphSpec),
	}
}

func key(uniqueName string) string {
	return strings.ToLower(filepath.Clean(uniqueName))
}

// AddProjectRestoreInfo stores the nominated graph of a project, replacing any earlier nomination.
func (c *Cache) AddProjectRestoreInfo(projectUniqueName string, dg *domain.DependencyGraphSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects[key(projectUniqueName)] = dg
}

// RemoveProject drops a project from the cache.
func (c *Cache) RemoveProject(projectUniqueName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.projects, key(projectUniqueName))
}

// Count returns the number of nominated projects.
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.projects)
}

// SetLoaded marks the solution as loaded. The host calls it once the initial
// nominations have been submitted.
func (c *Cache) SetLoaded(loaded bool) {
	c.loaded.Store(loaded)
}

// Directory returns the solution directory, or "" when no solution is open.
func (c *Cache) Directory() string {
	if c.ws == nil {
		return ""
	}
	return c.ws.Root
}

// IsAvailable reports whether a solution is open.
func (c *Cache) IsAvailable() bool {
	return c.ws != nil
}

// IsLoaded reports whether the solution finished loading.
func (c *Cache) IsLoaded() bool {
	return c.loaded.Load()
}

// AllProjectsNominated reports whether every nomination file of the workspace has
// produced a nominated project.
func (c *Cache) AllProjectsNominated() bool {
	if c.ws == nil {
		return false
	}
	return c.Count() >= len(c.ws.NominationFiles)
}

// DependencyGraph merges every nominated graph and the packages.config projects of the
// workspace into one graph with the solution settings applied. The stored nominations
// are not modified.
func (c *Cache) DependencyGraph(_ context.Context) (*domain.DependencyGraphSpec, error) {
	c.mu.RLock()
	keys := make([]string, 0, len(c.projects))
	for k := range c.projects {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	nominated := make([]*domain.DependencyGraphSpec, 0, len(keys))
	for _, k := range keys {
		nominated = append(nominated, c.projects[k])
	}
	c.mu.RUnlock()

	merged := domain.NewDependencyGraphSpec()
	for _, dg := range nominated {
		merged.Merge(dg)
	}
	if c.ws != nil {
		for _, pc := range c.ws.PackagesConfig {
			if merged.HasProject(pc.ProjectPath) {
				continue
			}
			merged.SetProject(packagesConfigSpec(pc))
			merged.AddRestore(pc.ProjectPath)
		}
	}

	resolver := c.resolver()
	out := domain.NewDependencyGraphSpec()
	for _, p := range merged.Projects() {
		out.SetProject(resolver.apply(p))
	}
	for _, name := range merged.Restore() {
		out.AddRestore(name)
	}
	return out, nil
}

func packagesConfigSpec(pc domain.PackagesConfigProject) *domain.ProjectSpec {
	name := strings.TrimSuffix(filepath.Base(pc.ProjectPath), filepath.Ext(pc.ProjectPath))
	return &domain.ProjectSpec{
		Name:               name,
		Version:            domain.DefaultPackageVersion,
		UniqueName:         pc.ProjectPath,
		FilePath:           pc.ProjectPath,
		PackagesConfigPath: pc.PackagesConfigPath,
		Style:              domain.StylePackagesConfig,
	}
}

func (c *Cache) resolver() settingsResolver {
	r := settingsResolver{
		root:           c.Directory(),
		packagesFolder: c.settings.GlobalPackagesFolder(),
	}
	if c.ws != nil {
		r.feeds = c.ws.Settings.Feeds
	}
	if r.packagesFolder == "" {
		r.packagesFolder = domain.DefaultGlobalPackagesFolder
	}
	return r
}
