package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// RestoreOutputData records the last observed write times of the restore outputs of a
// project and the creation time of its global packages folder. A zero time means the
// file did not exist when observed.
type RestoreOutputData struct {
	AssetsFile            time.Time
	CacheFile             time.Time
	TargetsFile           time.Time
	PropsFile             time.Time
	LockFile              time.Time
	PackagesFolderCreated time.Time
}

// Equal reports whether every recorded time matches.
func (o RestoreOutputData) Equal(other RestoreOutputData) bool {
	return o.AssetsFile.Equal(other.AssetsFile) &&
		o.CacheFile.Equal(other.CacheFile) &&
		o.TargetsFile.Equal(other.TargetsFile) &&
		o.PropsFile.Equal(other.PropsFile) &&
		o.LockFile.Equal(other.LockFile) &&
		o.PackagesFolderCreated.Equal(other.PackagesFolderCreated)
}

// OutputPaths lists the files a restore writes for a project.
// LockFile is empty when the project style has no lock file.
type OutputPaths struct {
	AssetsFile     string
	CacheFile      string
	TargetsFile    string
	PropsFile      string
	LockFile       string
	PackagesFolder string
}

// RestoreOutputPaths returns the output artifact paths of a restorable project.
func RestoreOutputPaths(p *ProjectSpec) OutputPaths {
	projectFile := filepath.Base(p.FilePath)
	out := OutputPaths{
		AssetsFile:     filepath.Join(p.OutputPath, AssetsFileName),
		CacheFile:      p.CacheFilePath,
		TargetsFile:    filepath.Join(p.OutputPath, projectFile+TargetsFileSuffix),
		PropsFile:      filepath.Join(p.OutputPath, projectFile+PropsFileSuffix),
		PackagesFolder: p.Settings.PackagesPath,
	}
	if out.CacheFile == "" {
		out.CacheFile = filepath.Join(p.OutputPath, CacheFileName)
	}

	switch p.Style {
	case StyleProjectJSON:
		// project.json projects keep the assets file next to project.json.
		out.AssetsFile = filepath.Join(p.ProjectDirectory(), AssetsFileName)
		name := strings.TrimSuffix(projectFile, filepath.Ext(projectFile))
		out.TargetsFile = filepath.Join(p.OutputPath, name+TargetsFileSuffix)
		out.PropsFile = filepath.Join(p.OutputPath, name+PropsFileSuffix)
	case StylePackageReference:
		out.LockFile = LockFilePath(p)
	}
	return out
}

// LockFilePath returns the lock file path of a PackageReference project.
func LockFilePath(p *ProjectSpec) string {
	if p.Settings.Lock.Path == "" {
		return filepath.Join(p.ProjectDirectory(), LockFileName)
	}
	if filepath.IsAbs(p.Settings.Lock.Path) {
		return p.Settings.Lock.Path
	}
	return filepath.Join(p.ProjectDirectory(), p.Settings.Lock.Path)
}

// ToolOutputPaths returns the output folder and no-op cache file of a DotnetCliTool spec:
// <packages>/.tools/<id>/<version>/<framework>. Both are empty when the spec carries no
// tool reference or no packages folder.
func ToolOutputPaths(p *ProjectSpec) (outputPath, cacheFile string) {
	if p.Settings.PackagesPath == "" || len(p.TargetFrameworks) == 0 {
		return "", ""
	}
	tf := p.TargetFrameworks[0]
	if len(tf.PackageReferences) == 0 {
		return "", ""
	}
	ref := tf.PackageReferences[0]
	id := strings.ToLower(ref.Name)
	outputPath = filepath.Join(
		p.Settings.PackagesPath,
		ToolsFolderName,
		id,
		pathSegment(ref.VersionRange),
		pathSegment(tf.Name),
	)
	return outputPath, filepath.Join(outputPath, id+ToolCacheFileSuffix)
}

// pathSegment lowercases s and replaces characters of version ranges that do not
// belong in a folder name.
func pathSegment(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			return r
		default:
			return '_'
		}
	}, strings.ToLower(strings.TrimSpace(s)))
}
