package domain

import "path/filepath"

const (
	// RestoreDirName is the name of the internal workspace directory.
	RestoreDirName = ".restore"

	// ConfigFileName is the name of the workspace configuration file.
	ConfigFileName = "restore.yaml"

	// NominationFileSuffix ends the name of every nomination file.
	NominationFileSuffix = ".nomination.yaml"

	// PackagesConfigFileName is the name of a packages.config file.
	PackagesConfigFileName = "packages.config"

	// AssetsFileName is the name of the assets file written into the project output path.
	AssetsFileName = "project.assets.json"

	// CacheFileName is the name of the no-op cache file written into the project output path.
	CacheFileName = "project.nuget.cache"

	// LockFileName is the default name of the package lock file next to the project.
	LockFileName = "packages.lock.json"

	// TargetsFileSuffix is appended to the project file name to build the generated targets file name.
	TargetsFileSuffix = ".nuget.g.targets"

	// PropsFileSuffix is appended to the project file name to build the generated props file name.
	PropsFileSuffix = ".nuget.g.props"

	// PackagesConfigFolder is the solution-level folder holding packages.config packages.
	PackagesConfigFolder = "packages"

	// ToolsFolderName is the folder under the global packages folder holding tool restore outputs.
	ToolsFolderName = ".tools"

	// ToolCacheFileSuffix is appended to the tool id to build the no-op cache file name of a tool.
	ToolCacheFileSuffix = ".nuget.cache"

	// DefaultGlobalPackagesFolder is used when no global packages folder is configured.
	DefaultGlobalPackagesFolder = ".packages"

	// SocketFileName is the name of the daemon unix socket.
	SocketFileName = "daemon.sock"

	// PIDFileName is the name of the daemon pid file.
	PIDFileName = "daemon.pid"

	// LogFileName is the name of the file a spawned daemon writes its output to.
	LogFileName = "daemon.log"

	// Clear resets sources or fallback folders to empty when present among configured values.
	Clear = "Clear"

	// AdditionalValue separates configured sources or fallback folders from the
	// additional entries appended after them.
	AdditionalValue = "AdditionalValue"

	// AllVersions is the version range accepting every version.
	AllVersions = "(, )"

	// DefaultPackageVersion is used when a project declares no version.
	DefaultPackageVersion = "1.0.0"

	// DefaultToolFramework is the framework tool references restore for when the
	// project does not set DotnetCliToolTargetFramework.
	DefaultToolFramework = "netcoreapp1.0"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600

	// SocketPerm is the permission of the daemon socket (rw-------).
	SocketPerm = 0o600
)

// DefaultRestorePath returns the root directory for restore metadata.
func DefaultRestorePath() string {
	return RestoreDirName
}

// DefaultDaemonSocketPath returns the default path of the daemon socket.
// It joins .restore and daemon.sock.
func DefaultDaemonSocketPath() string {
	return filepath.Join(RestoreDirName, SocketFileName)
}

// DefaultDaemonPIDPath returns the default path of the daemon pid file.
// It joins .restore and daemon.pid.
func DefaultDaemonPIDPath() string {
	return filepath.Join(RestoreDirName, PIDFileName)
}

// DefaultDaemonLogPath returns the default path of the daemon log file.
func DefaultDaemonLogPath() string {
	return filepath.Join(RestoreDirName, LogFileName)
}
