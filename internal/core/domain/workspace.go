package domain

import (
	"path/filepath"
	"time"
)

// Verbosity is the amount of restore output shown to the user.
type Verbosity int

const (
	// VerbosityQuiet shows errors only.
	VerbosityQuiet Verbosity = iota
	// VerbosityMinimal shows errors and warnings.
	VerbosityMinimal
	// VerbosityNormal shows summaries of explicit restores.
	VerbosityNormal
	// VerbosityDetailed shows summaries of every restore.
	VerbosityDetailed
	// VerbosityDiagnostic shows everything.
	VerbosityDiagnostic
)

// ParseVerbosity maps a verbosity name to a Verbosity. Unknown names map to VerbosityNormal.
func ParseVerbosity(name string) Verbosity {
	switch name {
	case "quiet", "q":
		return VerbosityQuiet
	case "minimal", "m":
		return VerbosityMinimal
	case "detailed", "d":
		return VerbosityDetailed
	case "diagnostic", "diag":
		return VerbosityDiagnostic
	default:
		return VerbosityNormal
	}
}

// RestoreConfig holds the user settings consulted by a restore.
type RestoreConfig struct {
	ConsentGranted         bool
	AutomaticRestore       bool
	MaxDegreeOfConcurrency int
	DisableParallel        bool
	GlobalPackagesFolder   string
	Feeds                  []string
	Verbosity              Verbosity
	MachineLock            bool
}

// DefaultRestoreConfig returns the settings used when restore.yaml does not set them.
func DefaultRestoreConfig() RestoreConfig {
	return RestoreConfig{
		ConsentGranted:       true,
		AutomaticRestore:     true,
		GlobalPackagesFolder: DefaultGlobalPackagesFolder,
		Verbosity:            VerbosityNormal,
	}
}

// PackagesConfigProject is a packages.config style project listed in restore.yaml.
type PackagesConfigProject struct {
	ProjectPath        string
	PackagesConfigPath string
	Packages           []PackageIdentity
}

// Workspace is the loaded restore.yaml of a solution.
type Workspace struct {
	Root              string
	ConfigPath        string
	Solution          string
	NominationFiles   []string
	PackagesConfig    []PackagesConfigProject
	Settings          RestoreConfig
	DaemonIdleTimeout time.Duration
	MetricsAddress    string
}

// DefaultDaemonIdleTimeout is how long the restore host keeps running without requests.
const DefaultDaemonIdleTimeout = 3 * time.Hour

// PackagesFolder returns the global packages folder resolved against the workspace root.
func (w *Workspace) PackagesFolder() string {
	folder := w.Settings.GlobalPackagesFolder
	if folder == "" {
		folder = DefaultGlobalPackagesFolder
	}
	if filepath.IsAbs(folder) || w.Root == "" {
		return filepath.Clean(folder)
	}
	return filepath.Join(w.Root, folder)
}
