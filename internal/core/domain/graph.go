package domain

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// GraphFormatVersion is the version written into serialized dependency graph specs.
const GraphFormatVersion = 1

// DependencyGraphSpec maps project unique names to their specs and records which
// projects are restore roots. Project names are compared case-insensitively.
type DependencyGraphSpec struct {
	projects map[string]*ProjectSpec
	restore  map[string]string
}

// NewDependencyGraphSpec creates an empty dependency graph spec.
func NewDependencyGraphSpec() *DependencyGraphSpec {
	return &DependencyGraphSpec{
		projects: make(map[string]*ProjectSpec),
		restore:  make(map[string]string),
	}
}

func projectKey(name string) string {
	return strings.ToLower(name)
}

// AddProject adds a project spec to the graph.
func (g *DependencyGraphSpec) AddProject(p *ProjectSpec) error {
	key := projectKey(p.UniqueName)
	if _, exists := g.projects[key]; exists {
		return zerr.With(ErrProjectAlreadyExists, "project", p.UniqueName)
	}
	g.projects[key] = p
	return nil
}

// SetProject adds or replaces a project spec.
func (g *DependencyGraphSpec) SetProject(p *ProjectSpec) {
	g.projects[projectKey(p.UniqueName)] = p
}

// AddRestore marks a project as a restore root.
func (g *DependencyGraphSpec) AddRestore(uniqueName string) {
	g.restore[projectKey(uniqueName)] = uniqueName
}

// Project returns the spec of the named project, or nil when it is not part of the graph.
func (g *DependencyGraphSpec) Project(uniqueName string) *ProjectSpec {
	return g.projects[projectKey(uniqueName)]
}

// HasProject reports whether the named project is part of the graph.
func (g *DependencyGraphSpec) HasProject(uniqueName string) bool {
	_, ok := g.projects[projectKey(uniqueName)]
	return ok
}

// IsRestoreRoot reports whether the named project is a restore root.
func (g *DependencyGraphSpec) IsRestoreRoot(uniqueName string) bool {
	_, ok := g.restore[projectKey(uniqueName)]
	return ok
}

// Projects returns all project specs ordered by unique name.
func (g *DependencyGraphSpec) Projects() []*ProjectSpec {
	keys := make([]string, 0, len(g.projects))
	for k := range g.projects {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]*ProjectSpec, 0, len(keys))
	for _, k := range keys {
		out = append(out, g.projects[k])
	}
	return out
}

// Restore returns the restore roots ordered by unique name.
func (g *DependencyGraphSpec) Restore() []string {
	keys := make([]string, 0, len(g.restore))
	for k := range g.restore {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, g.restore[k])
	}
	return out
}

// Len returns the number of projects in the graph.
func (g *DependencyGraphSpec) Len() int {
	return len(g.projects)
}

// WithoutRestores returns a copy of the graph sharing the project specs with no restore roots.
func (g *DependencyGraphSpec) WithoutRestores() *DependencyGraphSpec {
	out := NewDependencyGraphSpec()
	for k, p := range g.projects {
		out.projects[k] = p
	}
	return out
}

// Merge adds every project and restore root of other into g, replacing projects with the same name.
func (g *DependencyGraphSpec) Merge(other *DependencyGraphSpec) {
	for k, p := range other.projects {
		g.projects[k] = p
	}
	for k, name := range other.restore {
		g.restore[k] = name
	}
}

// Validate checks that every restore root has a project entry and that every
// project reference of a restorable project resolves to a project of the graph.
func (g *DependencyGraphSpec) Validate() error {
	var errs error
	for _, name := range g.Restore() {
		if !g.HasProject(name) {
			errs = errors.Join(errs, zerr.With(ErrMissingRestoreRoot, "project", name))
		}
	}
	for _, p := range g.Projects() {
		if !p.Style.Restorable() {
			continue
		}
		for _, ref := range p.ProjectReferences() {
			if !g.HasProject(ref) {
				err := zerr.With(ErrMissingProjectReference, "project", p.UniqueName)
				errs = errors.Join(errs, zerr.With(err, "reference", ref))
			}
		}
	}
	return errs
}

// SortByDependencies returns all projects ordered so that every project appears after
// the projects it references. Ties are broken by unique name. References that form a
// cycle are ignored at the point the cycle closes.
func (g *DependencyGraphSpec) SortByDependencies() []*ProjectSpec {
	const (
		unvisited = iota
		visiting
		visited
	)

	state := make(map[string]int, len(g.projects))
	out := make([]*ProjectSpec, 0, len(g.projects))

	var visit func(p *ProjectSpec)
	visit = func(p *ProjectSpec) {
		key := projectKey(p.UniqueName)
		if state[key] != unvisited {
			return
		}
		state[key] = visiting
		for _, ref := range p.ProjectReferences() {
			if dep := g.Project(ref); dep != nil {
				visit(dep)
			}
		}
		state[key] = visited
		out = append(out, p)
	}

	for _, p := range g.Projects() {
		visit(p)
	}
	return out
}

// Closure returns the named project and every project it transitively references,
// ordered leaves first.
func (g *DependencyGraphSpec) Closure(uniqueName string) []*ProjectSpec {
	root := g.Project(uniqueName)
	if root == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var out []*ProjectSpec
	var visit func(p *ProjectSpec)
	visit = func(p *ProjectSpec) {
		key := projectKey(p.UniqueName)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		for _, ref := range p.ProjectReferences() {
			if dep := g.Project(ref); dep != nil {
				visit(dep)
			}
		}
		out = append(out, p)
	}
	visit(root)
	return out
}

type graphFile struct {
	Format   int                     `json:"format"`
	Restore  map[string]struct{}     `json:"restore"`
	Projects map[string]*ProjectSpec `json:"projects"`
}

// MarshalJSON writes the graph in the dg spec file format.
func (g *DependencyGraphSpec) MarshalJSON() ([]byte, error) {
	f := graphFile{
		Format:   GraphFormatVersion,
		Restore:  make(map[string]struct{}, len(g.restore)),
		Projects: make(map[string]*ProjectSpec, len(g.projects)),
	}
	for _, name := range g.restore {
		f.Restore[name] = struct{}{}
	}
	for _, p := range g.projects {
		f.Projects[p.UniqueName] = p
	}
	return json.Marshal(f)
}

// UnmarshalJSON reads the dg spec file format.
func (g *DependencyGraphSpec) UnmarshalJSON(data []byte) error {
	var f graphFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.Format != GraphFormatVersion {
		return zerr.With(ErrUnsupportedGraphFormat, "format", f.Format)
	}

	*g = *NewDependencyGraphSpec()
	for name, p := range f.Projects {
		if p.UniqueName == "" {
			p.UniqueName = name
		}
		g.SetProject(p)
	}
	for name := range f.Restore {
		g.AddRestore(name)
	}
	return nil
}
