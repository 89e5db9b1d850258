package domain

// ReferenceItem is an item of a target framework (PackageReference, ProjectReference, ...).
type ReferenceItem struct {
	Name     string            `yaml:"name" json:"name" validate:"required"`
	Metadata map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// MetadataValue returns the value of a metadata entry, or "" when it is not set.
func (r ReferenceItem) MetadataValue(key string) string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata[key]
}

// TargetFrameworkInfo is the evaluated state of a project for one target framework.
type TargetFrameworkInfo struct {
	Properties map[string]string          `yaml:"properties" json:"properties"`
	Items      map[string][]ReferenceItem `yaml:"items,omitempty" json:"items,omitempty"`
}

// Property returns the value of a property, or "" when it is not set.
func (t TargetFrameworkInfo) Property(name string) string {
	if t.Properties == nil {
		return ""
	}
	return t.Properties[name]
}

// ProjectRestoreInfo is the restore information a build host nominates for a project.
type ProjectRestoreInfo struct {
	BaseIntermediatePath     string                `yaml:"baseIntermediatePath" json:"baseIntermediatePath" validate:"required"`
	OriginalTargetFrameworks string                `yaml:"originalTargetFrameworks,omitempty" json:"originalTargetFrameworks,omitempty"`
	TargetFrameworks         []TargetFrameworkInfo `yaml:"targetFrameworks" json:"targetFrameworks" validate:"required,min=1,dive"`
	ToolReferences           []ReferenceItem       `yaml:"toolReferences,omitempty" json:"toolReferences,omitempty" validate:"dive"`
}

// NominationData is a single project nomination.
type NominationData struct {
	ProjectUniqueName string             `yaml:"project" json:"project" validate:"required"`
	RestoreInfo       ProjectRestoreInfo `yaml:"restoreInfo" json:"restoreInfo"`
}

// PackageIdentity names a package at an exact version.
type PackageIdentity struct {
	ID      string
	Version string
}

// String returns "id.version".
func (p PackageIdentity) String() string {
	return p.ID + "." + p.Version
}

// MissingPackage is a packages.config package that is not present in the solution packages folder.
type MissingPackage struct {
	Package  PackageIdentity
	Projects []string
}
