package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidNomination is returned when nomination data violates the caller contract
	// (missing project name, base intermediate path or target frameworks).
	ErrInvalidNomination = zerr.New("invalid project nomination")

	// ErrPropertyNotSingleValue is returned when a project-wide property has different
	// values across target frameworks.
	ErrPropertyNotSingleValue = zerr.New("property does not have a single value across target frameworks")

	// ErrInvalidPackageDownload is returned when a PackageDownload item is not pinned to exact versions.
	ErrInvalidPackageDownload = zerr.New("package download version must be an exact version like [1.0.0]")

	// ErrProjectAlreadyExists is returned when a project is added twice to a dependency graph spec.
	ErrProjectAlreadyExists = zerr.New("project already exists")

	// ErrProjectNotFound is returned when a project is not part of the dependency graph spec.
	ErrProjectNotFound = zerr.New("project not found")

	// ErrMissingRestoreRoot is returned when a restore root has no project entry.
	ErrMissingRestoreRoot = zerr.New("restore root has no project entry")

	// ErrMissingProjectReference is returned when a project reference does not resolve.
	ErrMissingProjectReference = zerr.New("project reference does not resolve")

	// ErrUnsupportedGraphFormat is returned when a serialized dependency graph spec has an unknown format.
	ErrUnsupportedGraphFormat = zerr.New("unsupported dependency graph spec format")

	// ErrPromotionFailed is returned when a restore operation cannot be promoted to active.
	// It indicates concurrent promotions, which the worker never performs.
	ErrPromotionFailed = zerr.New("failed promoting pending task")

	// ErrWorkerClosed is returned when a restore is requested from a closed worker.
	ErrWorkerClosed = zerr.New("restore worker is closed")

	// ErrRestorePanicked is logged when a restore operation panics. The worker keeps running.
	ErrRestorePanicked = zerr.New("restore operation panicked")

	// ErrEventHandlerPanicked is logged when a restore event subscriber panics.
	ErrEventHandlerPanicked = zerr.New("restore event handler panicked")

	// ErrCacheFileRemoveFailed is returned when a project's no-op cache file cannot be deleted.
	ErrCacheFileRemoveFailed = zerr.New("failed to remove restore cache file")

	// ErrRequestQueueFull is returned when the pending request queue is at capacity.
	ErrRequestQueueFull = zerr.New("restore request queue is full")

	// ErrSolutionNotSaved is returned when a solution with projects has no directory.
	ErrSolutionNotSaved = zerr.New("the solution is not saved; save the solution before restoring packages")

	// ErrRelativeGlobalPackagesFolder is returned when the global packages folder is relative
	// and there is no solution to resolve it against.
	ErrRelativeGlobalPackagesFolder = zerr.New("the global packages folder is a relative path and no solution is available")

	// ErrRestoreConsentMissing is reported when packages are not restored because consent was not granted.
	ErrRestoreConsentMissing = zerr.New("package restore is disabled; enable restore consent to restore packages")

	// ErrRestoreFailed is returned when the restore engine fails for a project.
	ErrRestoreFailed = zerr.New("restore failed")

	// ErrPackageNotFound is returned when no feed contains a package matching the requested range.
	ErrPackageNotFound = zerr.New("unable to find package")

	// ErrPackageCopyFailed is returned when a package cannot be copied into the packages folder.
	ErrPackageCopyFailed = zerr.New("failed to copy package")

	// ErrPackagesFolderNotSet is returned when a project reaches the restore engine without
	// a packages folder.
	ErrPackagesFolderNotSet = zerr.New("the packages folder of the project is not set")

	// ErrOutputPathNotSet is returned when a project reaches the restore engine without an
	// output path.
	ErrOutputPathNotSet = zerr.New("the output path of the project is not set")

	// ErrUnsupportedProjectStyle is returned when the restore engine is handed a project it
	// does not restore, such as a packages.config project.
	ErrUnsupportedProjectStyle = zerr.New("project style is not restored by the restore engine")

	// ErrInvalidVersionRange is returned when a package version range cannot be parsed.
	ErrInvalidVersionRange = zerr.New("invalid version range")

	// ErrLockAcquireFailed is returned when the restore lock cannot be acquired.
	ErrLockAcquireFailed = zerr.New("failed to acquire restore lock")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no restore.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find restore.yaml")

	// ErrNominationReadFailed is returned when a nomination file cannot be read.
	ErrNominationReadFailed = zerr.New("failed to read nomination file")

	// ErrNominationParseFailed is returned when a nomination file cannot be parsed.
	ErrNominationParseFailed = zerr.New("failed to parse nomination file")

	// ErrPackagesConfigParseFailed is returned when a packages.config file cannot be parsed.
	ErrPackagesConfigParseFailed = zerr.New("failed to parse packages.config")

	// ErrOutputWriteFailed is returned when a restore output artifact cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write restore output")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to watch workspace files")

	// ErrDaemonUnavailable is returned when the restore daemon cannot be reached.
	ErrDaemonUnavailable = zerr.New("restore daemon is not running")

	// ErrDaemonSpawnFailed is returned when the restore daemon cannot be started.
	ErrDaemonSpawnFailed = zerr.New("failed to start restore daemon")

	// ErrRestoreExecutionFailed is returned by the CLI when a restore run did not succeed.
	ErrRestoreExecutionFailed = zerr.New("restore execution failed")
)
