// Package feed restores projects from local package folders. It resolves package
// version ranges, installs packages into the global packages folder and writes the
// restore outputs the build consumes.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/juju/clock"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine implements ports.RestoreEngine over local feed folders.
type Engine struct {
	installer
}

// New creates a restore engine.
func New(logger ports.Logger, clk clock.Clock) *Engine {
	return &Engine{installer: installer{clock: clk, logger: logger}}
}

// GraphHash returns the digest of a dependency graph stored in the no-op cache.
func GraphHash(dg *domain.DependencyGraphSpec) (string, error) {
	data, err := json.Marshal(dg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}

// Restore restores a single project.
func (e *Engine) Restore(ctx context.Context, req ports.EngineRequest) (domain.RestoreSummary, error) {
	p := req.Project
	summary := domain.RestoreSummary{ProjectUniqueName: p.UniqueName}
	if !p.Style.Restorable() && p.Style != domain.StyleDotnetCliTool {
		return summary, zerr.With(domain.ErrUnsupportedProjectStyle, "style", p.Style.String())
	}
	if p.OutputPath == "" {
		return summary, zerr.With(domain.ErrOutputPathNotSet, "project", p.UniqueName)
	}
	if p.Settings.PackagesPath == "" {
		return summary, zerr.With(domain.ErrPackagesFolderNotSet, "project", p.UniqueName)
	}

	graph := req.Graph
	if graph == nil {
		graph = domain.NewDependencyGraphSpec()
		graph.SetProject(p)
		graph.AddRestore(p.UniqueName)
	}
	hash, err := GraphHash(graph)
	if err != nil {
		return summary, err
	}

	paths := domain.RestoreOutputPaths(p)
	if !req.Force {
		if cache, ok := noOp(paths, hash); ok {
			summary.Success = true
			summary.NoOp = true
			summary.Messages = logMessages(cache.Logs)
			return summary, nil
		}
	}

	r := newResolver(p, graph)
	results := make([]frameworkResult, 0, len(p.TargetFrameworks))
	var downloads []*resolvedPackage
	for _, tf := range p.TargetFrameworks {
		result, err := r.resolveFramework(ctx, tf)
		if err != nil {
			return summary, err
		}
		results = append(results, result)
		downloads = append(downloads, r.resolveDownloads(tf)...)
	}

	lockPath, lock := "", buildLock(results)
	if p.Style == domain.StylePackageReference {
		lockPath = domain.LockFilePath(p)
		var existing lockFile
		found, err := readJSON(lockPath, &existing)
		switch {
		case err != nil:
			r.warn("NU1000", nil, fmt.Sprintf("Unable to read lock file %s: %v", lockPath, err))
		case found && p.Settings.Lock.LockedMode && !existing.matches(lock):
			r.errorf("NU1004", "The packages lock file is inconsistent with the project dependencies so restore can't be run in locked mode.")
		}
		if !found && !p.Settings.Lock.Enabled {
			lockPath = ""
		}
	}

	var expected []string
	if r.ok {
		all := make([]*resolvedPackage, 0, len(downloads))
		for _, res := range results {
			all = append(all, res.Packages...)
		}
		all = append(all, downloads...)

		installed, files, err := e.installAll(ctx, p.Settings.PackagesPath, all)
		if err != nil {
			return summary, err
		}
		summary.InstallCount = installed
		expected = files
	}

	summary.Success = r.ok
	summary.Messages = r.messages

	if err := writeJSON(paths.AssetsFile, buildAssets(p, results, r.messages)); err != nil {
		return summary, err
	}
	if err := writeIfChanged(paths.PropsFile, buildProps(p, paths.AssetsFile, r.ok, results)); err != nil {
		return summary, err
	}
	if err := writeIfChanged(paths.TargetsFile, buildTargets()); err != nil {
		return summary, err
	}
	if r.ok && lockPath != "" {
		if err := writeJSON(lockPath, lock); err != nil {
			return summary, err
		}
	}
	cache := cacheFile{
		Version:              cacheVersion,
		DgSpecHash:           hash,
		Success:              r.ok,
		ProjectFilePath:      p.FilePath,
		ExpectedPackageFiles: expected,
		Logs:                 logEntries(r.messages),
	}
	if err := writeJSON(paths.CacheFile, cache); err != nil {
		return summary, err
	}

	e.logger.Debug(fmt.Sprintf("restored %s: %d packages installed", p.Name, summary.InstallCount))
	return summary, nil
}

// installAll copies every package not yet installed. It returns the number of copied
// packages and the marker files a later no-op check looks for.
func (e *Engine) installAll(ctx context.Context, root string, pkgs []*resolvedPackage) (int, []string, error) {
	seen := make(map[string]bool)
	var files []string
	count := 0
	for _, pkg := range pkgs {
		key := strings.ToLower(libraryKey(pkg.ID, pkg.Version))
		if seen[key] {
			continue
		}
		seen[key] = true

		if pkg.Installed {
			files = append(files, filepath.Join(pkg.Dir, MetadataFileName))
			continue
		}
		if err := ctx.Err(); err != nil {
			return count, nil, err
		}

		target := packageDir(root, pkg.ID, pkg.Version)
		if err := e.install(ctx, pkg.Dir, target, pkg.Source); err != nil {
			return count, nil, err
		}
		pkg.Dir = target
		pkg.Installed = true
		count++
		files = append(files, filepath.Join(target, MetadataFileName))
	}
	slices.Sort(files)
	return count, files, nil
}

// noOp reports whether the outputs of the last restore are still valid for hash.
func noOp(paths domain.OutputPaths, hash string) (cacheFile, bool) {
	var cache cacheFile
	found, err := readJSON(paths.CacheFile, &cache)
	if err != nil || !found {
		return cache, false
	}
	if cache.Version != cacheVersion || cache.DgSpecHash != hash || !cache.Success {
		return cache, false
	}
	if !exists(paths.AssetsFile) {
		return cache, false
	}
	for _, f := range cache.ExpectedPackageFiles {
		if !exists(f) {
			return cache, false
		}
	}
	return cache, true
}

func uniqueSorted(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}
