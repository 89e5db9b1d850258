package domain

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ProjectStyle describes how a project declares its package dependencies.
type ProjectStyle int

const (
	// StyleUnknown is used for projects whose style could not be determined.
	StyleUnknown ProjectStyle = iota
	// StylePackageReference projects declare PackageReference items.
	StylePackageReference
	// StyleProjectJSON projects declare dependencies in project.json.
	StyleProjectJSON
	// StylePackagesConfig projects declare dependencies in packages.config.
	StylePackagesConfig
	// StyleDotnetCliTool is a synthetic project restoring a DotnetCliToolReference.
	StyleDotnetCliTool
	// StyleDotnetToolReference is a synthetic project restoring a dotnet tool.
	StyleDotnetToolReference
	// StyleStandalone projects are restored without a project file.
	StyleStandalone
)

var styleNames = map[ProjectStyle]string{
	StyleUnknown:             "Unknown",
	StylePackageReference:    "PackageReference",
	StyleProjectJSON:         "ProjectJson",
	StylePackagesConfig:      "PackagesConfig",
	StyleDotnetCliTool:       "DotnetCliTool",
	StyleDotnetToolReference: "DotnetToolReference",
	StyleStandalone:          "Standalone",
}

// String returns the NuGet name of the style.
func (s ProjectStyle) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return styleNames[StyleUnknown]
}

// ParseProjectStyle maps a style name back to a ProjectStyle. Unknown names map to StyleUnknown.
func ParseProjectStyle(name string) ProjectStyle {
	for style, n := range styleNames {
		if strings.EqualFold(n, name) {
			return style
		}
	}
	return StyleUnknown
}

// MarshalText implements encoding.TextMarshaler.
func (s ProjectStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ProjectStyle) UnmarshalText(text []byte) error {
	*s = ParseProjectStyle(string(text))
	return nil
}

// Restorable reports whether projects of this style produce restore outputs that
// the up-to-date checker tracks.
func (s ProjectStyle) Restorable() bool {
	return s == StylePackageReference || s == StyleProjectJSON
}

// PackageReference is a package dependency of a target framework.
type PackageReference struct {
	Name                    string   `json:"name"`
	VersionRange            string   `json:"versionRange,omitempty"`
	VersionOverride         string   `json:"versionOverride,omitempty"`
	VersionCentrallyManaged bool     `json:"versionCentrallyManaged,omitempty"`
	IncludeAssets           string   `json:"includeAssets,omitempty"`
	ExcludeAssets           string   `json:"excludeAssets,omitempty"`
	PrivateAssets           string   `json:"privateAssets,omitempty"`
	NoWarn                  []string `json:"noWarn,omitempty"`
	GeneratePathProperty    bool     `json:"generatePathProperty,omitempty"`
	Aliases                 string   `json:"aliases,omitempty"`
}

// ProjectReference points at another project of the solution.
type ProjectReference struct {
	ProjectUniqueName string `json:"projectUniqueName"`
	ProjectPath       string `json:"projectPath"`
	IncludeAssets     string `json:"includeAssets,omitempty"`
	ExcludeAssets     string `json:"excludeAssets,omitempty"`
	PrivateAssets     string `json:"privateAssets,omitempty"`
}

// FrameworkReference is a shared framework dependency.
type FrameworkReference struct {
	Name          string `json:"name"`
	PrivateAssets string `json:"privateAssets,omitempty"`
}

// PackageDownload is a package downloaded without participating in the graph.
type PackageDownload struct {
	Name         string `json:"name"`
	VersionRange string `json:"versionRange"`
}

// CentralVersion pins a package version for central package management.
type CentralVersion struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// TargetFramework holds the dependencies of a single target framework of a project.
type TargetFramework struct {
	Name                       string               `json:"name"`
	Alias                      string               `json:"alias,omitempty"`
	PackageReferences          []PackageReference   `json:"packageReferences,omitempty"`
	ProjectReferences          []ProjectReference   `json:"projectReferences,omitempty"`
	FrameworkReferences        []FrameworkReference `json:"frameworkReferences,omitempty"`
	Downloads                  []PackageDownload    `json:"downloads,omitempty"`
	CentralVersions            []CentralVersion     `json:"centralVersions,omitempty"`
	AssetTargetFallback        []string             `json:"assetTargetFallback,omitempty"`
	RuntimeIdentifierGraphPath string               `json:"runtimeIdentifierGraphPath,omitempty"`
}

// RuntimeGraph lists the runtime identifiers and compatibility profiles of a project.
type RuntimeGraph struct {
	Runtimes []string `json:"runtimes,omitempty"`
	Supports []string `json:"supports,omitempty"`
}

// LockFileSettings controls the package lock file of a project.
type LockFileSettings struct {
	Enabled    bool   `json:"enabled,omitempty"`
	Path       string `json:"path,omitempty"`
	LockedMode bool   `json:"lockedMode,omitempty"`
}

// WarningSettings holds the project-wide warning properties.
type WarningSettings struct {
	TreatWarningsAsErrors bool     `json:"treatWarningsAsErrors,omitempty"`
	WarningsAsErrors      []string `json:"warningsAsErrors,omitempty"`
	NoWarn                []string `json:"noWarn,omitempty"`
}

// RestoreSettings holds the restore-relevant settings of a project.
type RestoreSettings struct {
	Sources                               []string         `json:"sources,omitempty"`
	FallbackFolders                       []string         `json:"fallbackFolders,omitempty"`
	PackagesPath                          string           `json:"packagesPath,omitempty"`
	Lock                                  LockFileSettings `json:"lock"`
	Warnings                              WarningSettings  `json:"warnings"`
	CentralPackageVersions                bool             `json:"centralPackageVersions,omitempty"`
	CentralPackageVersionOverrideDisabled bool             `json:"centralPackageVersionOverrideDisabled,omitempty"`
	HideWarningsAndErrors                 bool             `json:"hideWarningsAndErrors,omitempty"`
}

// ProjectSpec describes a project for restore. It is treated as immutable after it
// is built and compared structurally.
type ProjectSpec struct {
	Name                     string            `json:"name"`
	Version                  string            `json:"version"`
	UniqueName               string            `json:"uniqueName"`
	FilePath                 string            `json:"filePath"`
	OutputPath               string            `json:"outputPath,omitempty"`
	CacheFilePath            string            `json:"cacheFilePath,omitempty"`
	PackagesConfigPath       string            `json:"packagesConfigPath,omitempty"`
	Style                    ProjectStyle      `json:"style"`
	CrossTargeting           bool              `json:"crossTargeting,omitempty"`
	OriginalTargetFrameworks []string          `json:"originalTargetFrameworks,omitempty"`
	TargetFrameworks         []TargetFramework `json:"frameworks,omitempty"`
	RuntimeGraph             RuntimeGraph      `json:"runtimeGraph"`
	Settings                 RestoreSettings   `json:"settings"`
}

// canonical returns the canonical encoding of the spec.
func (p *ProjectSpec) canonical() []byte {
	data, err := json.Marshal(p)
	if err != nil {
		// All fields are plain data; Marshal cannot fail for them.
		panic(err)
	}
	return data
}

// Fingerprint returns a digest of the canonical encoding of the spec, for telemetry
// and cache keys. Different specs may share a fingerprint; use Equal to compare them.
func (p *ProjectSpec) Fingerprint() uint64 {
	if p == nil {
		return 0
	}
	return xxhash.Sum64(p.canonical())
}

// Equal reports whether two specs are structurally equal.
func (p *ProjectSpec) Equal(other *ProjectSpec) bool {
	if p == nil || other == nil {
		return p == other
	}
	return bytes.Equal(p.canonical(), other.canonical())
}

// ProjectDirectory returns the directory containing the project file.
func (p *ProjectSpec) ProjectDirectory() string {
	return filepath.Dir(p.FilePath)
}

// ProjectReferences returns the unique names of all referenced projects across frameworks,
// de-duplicated case-insensitively in order of appearance.
func (p *ProjectSpec) ProjectReferences() []string {
	seen := make(map[string]struct{})
	var refs []string
	for _, tf := range p.TargetFrameworks {
		for _, ref := range tf.ProjectReferences {
			key := strings.ToLower(ref.ProjectUniqueName)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			refs = append(refs, ref.ProjectUniqueName)
		}
	}
	return refs
}

// Clone returns a deep copy of the spec.
func (p *ProjectSpec) Clone() *ProjectSpec {
	data, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}
	var out ProjectSpec
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}
