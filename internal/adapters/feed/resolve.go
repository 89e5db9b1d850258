package feed

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/restore/internal/core/domain"
)

// located is a package version found in a local folder.
type located struct {
	ID      string
	Version string
	Dir     string
	// Installed is set when the package already sits in the global packages folder
	// or a fallback folder and needs no copy.
	Installed bool
	Source    string
}

type resolvedPackage struct {
	located
	Direct       bool
	Requested    string
	Dependencies map[string]string
}

type frameworkResult struct {
	Framework domain.TargetFramework
	Packages  []*resolvedPackage
	Projects  []*domain.ProjectSpec
}

type pendingDependency struct {
	id     string
	rng    string
	direct bool
	parent string
}

// resolver walks the package graph of a single project over local folders.
type resolver struct {
	project        *domain.ProjectSpec
	graph          *domain.DependencyGraphSpec
	packagesFolder string
	fallback       []string
	sources        []string
	ok             bool
	messages       []domain.LogMessage
}

func newResolver(p *domain.ProjectSpec, graph *domain.DependencyGraphSpec) *resolver {
	r := &resolver{
		project:        p,
		graph:          graph,
		packagesFolder: p.Settings.PackagesPath,
		fallback:       p.Settings.FallbackFolders,
		ok:             true,
	}
	for _, s := range p.Settings.Sources {
		if isRemote(s) {
			r.warn("NU1801", nil, fmt.Sprintf("Source %s is not a local folder and was skipped.", s))
			continue
		}
		r.sources = append(r.sources, s)
	}
	return r
}

func (r *resolver) log(level domain.Severity, code, msg string) {
	if level == domain.SeverityError {
		r.ok = false
	}
	r.messages = append(r.messages, domain.LogMessage{
		Code:        code,
		Level:       level,
		Message:     msg,
		ProjectPath: r.project.FilePath,
	})
}

func (r *resolver) errorf(code, format string, args ...any) {
	r.log(domain.SeverityError, code, fmt.Sprintf(format, args...))
}

// warn applies the warning properties of the project and of the package reference
// the warning is about.
func (r *resolver) warn(code string, noWarn []string, msg string) {
	w := r.project.Settings.Warnings
	if slices.Contains(w.NoWarn, code) || slices.Contains(noWarn, code) {
		return
	}
	level := domain.SeverityWarning
	if w.TreatWarningsAsErrors || slices.Contains(w.WarningsAsErrors, code) {
		level = domain.SeverityError
	}
	r.log(level, code, msg)
}

// locate finds the version of id that vr resolves to. known reports whether the id
// exists in any folder at all.
func (r *resolver) locate(id string, vr versionRange) (loc located, found, known bool, err error) {
	type folder struct {
		root      string
		installed bool
		global    bool
	}
	folders := []folder{{root: r.packagesFolder, installed: true, global: true}}
	for _, f := range r.fallback {
		folders = append(folders, folder{root: f, installed: true})
	}
	for _, s := range r.sources {
		folders = append(folders, folder{root: s})
	}

	owner := make(map[string]folder)
	var all []string
	for _, f := range folders {
		vs, err := versions(f.root, id)
		if err != nil {
			return loc, false, false, err
		}
		for _, v := range vs {
			key := strings.ToLower(v)
			dir := packageDir(f.root, id, v)
			if f.global && !exists(filepath.Join(dir, MetadataFileName)) {
				// Partially extracted packages are reinstalled from a source.
				continue
			}
			if _, seen := owner[key]; !seen {
				owner[key] = f
				all = append(all, v)
			}
		}
	}
	if len(all) == 0 {
		return loc, false, false, nil
	}

	best, ok := vr.best(all)
	if !ok {
		return loc, false, true, nil
	}
	f := owner[strings.ToLower(best)]
	return located{
		ID:        id,
		Version:   best,
		Dir:       packageDir(f.root, id, best),
		Installed: f.installed,
		Source:    f.root,
	}, true, true, nil
}

func (r *resolver) resolveFramework(ctx context.Context, tf domain.TargetFramework) (frameworkResult, error) {
	result := frameworkResult{Framework: tf}
	noWarn := make(map[string][]string)

	queue := make([]pendingDependency, 0, len(tf.PackageReferences))
	for _, ref := range tf.PackageReferences {
		rng := ref.VersionRange
		if ref.VersionOverride != "" && !r.project.Settings.CentralPackageVersionOverrideDisabled {
			rng = ref.VersionOverride
		}
		noWarn[strings.ToLower(ref.Name)] = ref.NoWarn
		queue = append(queue, pendingDependency{id: ref.Name, rng: rng, direct: true})
	}
	result.Projects = r.referencedProjects(tf)
	for _, p := range result.Projects {
		rtf := matchFramework(p, tf)
		if rtf == nil {
			continue
		}
		for _, ref := range rtf.PackageReferences {
			if strings.EqualFold(ref.PrivateAssets, "all") {
				continue
			}
			queue = append(queue, pendingDependency{id: ref.Name, rng: ref.VersionRange, parent: p.Name})
		}
	}

	seen := make(map[string]bool)
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		dep := queue[0]
		queue = queue[1:]

		key := strings.ToLower(dep.id)
		if seen[key] {
			continue
		}
		seen[key] = true

		vr, err := parseRange(dep.rng)
		if err != nil {
			r.errorf("NU1105", "Unable to parse version range %q of %s.", dep.rng, dep.id)
			continue
		}
		if dep.direct && !vr.hasLowerBound() && vr.floating == "" {
			r.warn("NU1604", noWarn[key], fmt.Sprintf(
				"Project dependency %s does not contain an inclusive lower bound.", dep.id))
		}

		loc, found, known, err := r.locate(dep.id, vr)
		if err != nil {
			return result, err
		}
		if !found {
			if known {
				r.errorf("NU1102", "Unable to find package %s with version (%s).", dep.id, vr)
			} else {
				r.errorf("NU1101", "Unable to find package %s. No packages exist with this id in source(s): %s",
					dep.id, strings.Join(r.sources, ", "))
			}
			continue
		}
		if vr.hasLowerBound() && vr.floating == "" && compareVersions(loc.Version, vr.min) != 0 {
			dependent := r.project.Name
			if dep.parent != "" {
				dependent = dep.parent
			}
			r.warn("NU1603", noWarn[key], fmt.Sprintf(
				"%s depends on %s (%s) but %s %s was not found. %s %s was resolved instead.",
				dependent, dep.id, vr, dep.id, vr.min, dep.id, loc.Version))
		}

		deps, err := dependencies(loc.Dir, loc.ID, tf.Name)
		if err != nil {
			r.warn("NU1000", nil, fmt.Sprintf("Unable to read the dependencies of %s %s: %v", loc.ID, loc.Version, err))
		}
		pkg := &resolvedPackage{located: loc, Direct: dep.direct, Dependencies: make(map[string]string)}
		if dep.direct {
			pkg.Requested = vr.String()
		}
		for _, d := range deps {
			pkg.Dependencies[d.ID] = d.Version
			queue = append(queue, pendingDependency{id: d.ID, rng: d.Version, parent: loc.ID})
		}
		result.Packages = append(result.Packages, pkg)
	}

	slices.SortFunc(result.Packages, func(a, b *resolvedPackage) int {
		return strings.Compare(strings.ToLower(a.ID), strings.ToLower(b.ID))
	})
	return result, nil
}

// resolveDownloads locates the PackageDownload items of a framework. Downloads are
// installed but take no part in the graph.
func (r *resolver) resolveDownloads(tf domain.TargetFramework) []*resolvedPackage {
	var out []*resolvedPackage
	for _, d := range tf.Downloads {
		vr, err := parseRange(d.VersionRange)
		if err != nil || !vr.isExact() {
			r.errorf("NU1105", "Unable to parse version range %q of %s.", d.VersionRange, d.Name)
			continue
		}
		loc, found, _, err := r.locate(d.Name, vr)
		if err != nil || !found {
			r.errorf("NU1101", "Unable to find package %s with version (%s).", d.Name, vr)
			continue
		}
		out = append(out, &resolvedPackage{located: loc})
	}
	return out
}

// referencedProjects returns every project reachable through project references of
// tf, in the order they are first reached.
func (r *resolver) referencedProjects(tf domain.TargetFramework) []*domain.ProjectSpec {
	var out []*domain.ProjectSpec
	if r.graph == nil {
		return out
	}
	visited := map[string]bool{strings.ToLower(r.project.UniqueName): true}
	stack := slices.Clone(tf.ProjectReferences)
	for len(stack) > 0 {
		ref := stack[0]
		stack = stack[1:]
		key := strings.ToLower(ref.ProjectUniqueName)
		if visited[key] {
			continue
		}
		visited[key] = true

		p := r.graph.Project(ref.ProjectUniqueName)
		if p == nil {
			continue
		}
		out = append(out, p)
		if rtf := matchFramework(p, tf); rtf != nil {
			stack = append(stack, rtf.ProjectReferences...)
		}
	}
	return out
}

func matchFramework(p *domain.ProjectSpec, tf domain.TargetFramework) *domain.TargetFramework {
	for i := range p.TargetFrameworks {
		f := &p.TargetFrameworks[i]
		if strings.EqualFold(f.Name, tf.Name) || (tf.Alias != "" && strings.EqualFold(f.Alias, tf.Alias)) {
			return f
		}
	}
	if len(p.TargetFrameworks) > 0 {
		return &p.TargetFrameworks[0]
	}
	return nil
}
