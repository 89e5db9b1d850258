package feed

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	assetsVersion = 3
	cacheVersion  = 2
	lockVersion   = 1
)

type logEntry struct {
	Code        string `json:"code"`
	Level       string `json:"level"`
	Message     string `json:"message"`
	ProjectPath string `json:"projectPath,omitempty"`
}

func logEntries(msgs []domain.LogMessage) []logEntry {
	out := make([]logEntry, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, logEntry{Code: m.Code, Level: m.Level.String(), Message: m.Message, ProjectPath: m.ProjectPath})
	}
	return out
}

func logMessages(entries []logEntry) []domain.LogMessage {
	out := make([]domain.LogMessage, 0, len(entries))
	for _, e := range entries {
		level := domain.SeverityInfo
		switch e.Level {
		case domain.SeverityWarning.String():
			level = domain.SeverityWarning
		case domain.SeverityError.String():
			level = domain.SeverityError
		}
		out = append(out, domain.LogMessage{Code: e.Code, Level: level, Message: e.Message, ProjectPath: e.ProjectPath})
	}
	return out
}

// cacheFile is the no-op cache written next to the assets file.
type cacheFile struct {
	Version              int        `json:"version"`
	DgSpecHash           string     `json:"dgSpecHash"`
	Success              bool       `json:"success"`
	ProjectFilePath      string     `json:"projectFilePath"`
	ExpectedPackageFiles []string   `json:"expectedPackageFiles"`
	Logs                 []logEntry `json:"logs"`
}

type assetsTarget struct {
	Type         string            `json:"type"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

type assetsLibrary struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// assetsFile is the project.assets.json consumed by the build.
type assetsFile struct {
	Version                     int                                `json:"version"`
	Targets                     map[string]map[string]assetsTarget `json:"targets"`
	Libraries                   map[string]assetsLibrary           `json:"libraries"`
	ProjectFileDependencyGroups map[string][]string                `json:"projectFileDependencyGroups"`
	PackageFolders              map[string]struct{}                `json:"packageFolders"`
	Project                     *domain.ProjectSpec                `json:"project"`
	Logs                        []logEntry                         `json:"logs,omitempty"`
}

type lockDependency struct {
	Type         string            `json:"type"`
	Requested    string            `json:"requested,omitempty"`
	Resolved     string            `json:"resolved,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// lockFile is packages.lock.json.
type lockFile struct {
	Version      int                                  `json:"version"`
	Dependencies map[string]map[string]lockDependency `json:"dependencies"`
}

func libraryKey(id, version string) string {
	return id + "/" + version
}

func buildAssets(p *domain.ProjectSpec, results []frameworkResult, msgs []domain.LogMessage) assetsFile {
	a := assetsFile{
		Version:                     assetsVersion,
		Targets:                     make(map[string]map[string]assetsTarget),
		Libraries:                   make(map[string]assetsLibrary),
		ProjectFileDependencyGroups: make(map[string][]string),
		PackageFolders:              map[string]struct{}{p.Settings.PackagesPath: {}},
		Project:                     p,
		Logs:                        logEntries(msgs),
	}
	for _, f := range p.Settings.FallbackFolders {
		a.PackageFolders[f] = struct{}{}
	}

	for _, r := range results {
		target := make(map[string]assetsTarget)
		var direct []string
		for _, pkg := range r.Packages {
			key := libraryKey(pkg.ID, pkg.Version)
			target[key] = assetsTarget{Type: "package", Dependencies: pkg.Dependencies}
			a.Libraries[key] = assetsLibrary{Type: "package", Path: strings.ToLower(key)}
			if pkg.Direct {
				direct = append(direct, pkg.ID+" "+pkg.Requested)
			}
		}
		for _, ref := range r.Projects {
			key := libraryKey(ref.Name, ref.Version)
			target[key] = assetsTarget{Type: "project"}
			a.Libraries[key] = assetsLibrary{Type: "project", Path: ref.FilePath}
		}
		a.Targets[r.Framework.Name] = target
		a.ProjectFileDependencyGroups[r.Framework.Name] = direct
	}
	return a
}

func buildLock(results []frameworkResult) lockFile {
	l := lockFile{Version: lockVersion, Dependencies: make(map[string]map[string]lockDependency)}
	for _, r := range results {
		deps := make(map[string]lockDependency)
		for _, pkg := range r.Packages {
			kind := "Transitive"
			if pkg.Direct {
				kind = "Direct"
			}
			deps[pkg.ID] = lockDependency{
				Type:         kind,
				Requested:    pkg.Requested,
				Resolved:     pkg.Version,
				Dependencies: pkg.Dependencies,
			}
		}
		for _, ref := range r.Projects {
			deps[strings.ToLower(ref.Name)] = lockDependency{Type: "Project"}
		}
		l.Dependencies[r.Framework.Name] = deps
	}
	return l
}

// matches reports whether other resolves every package of l to the same version.
func (l lockFile) matches(other lockFile) bool {
	if len(l.Dependencies) != len(other.Dependencies) {
		return false
	}
	for tfm, deps := range l.Dependencies {
		otherDeps, ok := other.Dependencies[tfm]
		if !ok || len(deps) != len(otherDeps) {
			return false
		}
		for id, d := range deps {
			o, ok := otherDeps[id]
			if !ok || o.Type != d.Type || !strings.EqualFold(o.Resolved, d.Resolved) {
				return false
			}
		}
	}
	return true
}

func readJSON[T any](path string, target *T) (bool, error) {
	// #nosec G304 -- path is a restore output of a nominated project
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, target)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	return writeIfChanged(path, append(data, '\n'))
}

// writeIfChanged replaces path atomically unless it already holds data, so unchanged
// outputs keep their write times.
func writeIfChanged(path string, data []byte) error {
	// #nosec G304 -- path is a restore output of a nominated project
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, data) {
		return nil
	}

	wrap := func(err error) error {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return wrap(err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return wrap(err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return wrap(err)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return wrap(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return wrap(err)
	}
	return nil
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

const msbuildHeader = `<?xml version="1.0" encoding="utf-8" standalone="no"?>
<Project ToolsVersion="14.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
`

// buildProps renders the generated props file of a restored project.
func buildProps(p *domain.ProjectSpec, assetsPath string, success bool, results []frameworkResult) []byte {
	var b strings.Builder
	b.WriteString(msbuildHeader)
	b.WriteString("  <PropertyGroup Condition=\" '$(ExcludeRestorePackageImports)' != 'true' \">\n")
	restoreSuccess := "False"
	if success {
		restoreSuccess = "True"
	}
	folders := append([]string{p.Settings.PackagesPath}, p.Settings.FallbackFolders...)
	props := [][2]string{
		{"RestoreSuccess", restoreSuccess},
		{"RestoreTool", "NuGet"},
		{"ProjectAssetsFile", assetsPath},
		{"NuGetPackageRoot", withSeparator(p.Settings.PackagesPath)},
		{"NuGetPackageFolders", strings.Join(folders, ";")},
		{"NuGetProjectStyle", p.Style.String()},
	}
	for _, kv := range props {
		b.WriteString("    <" + kv[0] + " Condition=\" '$(" + kv[0] + ")' == '' \">" + escape(kv[1]) + "</" + kv[0] + ">\n")
	}
	b.WriteString("  </PropertyGroup>\n")

	var pathProps []string
	for _, r := range results {
		for _, ref := range r.Framework.PackageReferences {
			if !ref.GeneratePathProperty {
				continue
			}
			for _, pkg := range r.Packages {
				if strings.EqualFold(pkg.ID, ref.Name) {
					name := "Pkg" + strings.ReplaceAll(pkg.ID, ".", "_")
					pathProps = append(pathProps, "    <"+name+" Condition=\" '$("+name+")' == '' \">"+escape(pkg.Dir)+"</"+name+">\n")
				}
			}
		}
	}
	if len(pathProps) > 0 {
		b.WriteString("  <PropertyGroup Condition=\" '$(ExcludeRestorePackageImports)' != 'true' \">\n")
		for _, line := range uniqueSorted(pathProps) {
			b.WriteString(line)
		}
		b.WriteString("  </PropertyGroup>\n")
	}
	b.WriteString("</Project>\n")
	return []byte(b.String())
}

// buildTargets renders the generated targets file of a restored project.
func buildTargets() []byte {
	return []byte(msbuildHeader + "  <PropertyGroup>\n" +
		"    <MSBuildAllProjects>$(MSBuildAllProjects);$(MSBuildThisFileFullPath)</MSBuildAllProjects>\n" +
		"  </PropertyGroup>\n</Project>\n")
}

func withSeparator(path string) string {
	if path == "" || strings.HasSuffix(path, string(filepath.Separator)) {
		return path
	}
	return path + string(filepath.Separator)
}
