package ports

// Settings gives access to the persisted restore settings. Implementations read the
// configuration store on every call.
//
//go:generate mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type Settings interface {
	// ConsentGranted reports whether the user consented to package restore.
	ConsentGranted() bool
	// AutomaticRestoreEnabled reports whether restore runs automatically on build.
	AutomaticRestoreEnabled() bool
	// MaxDegreeOfConcurrency returns the configured parallelism, or 0 for the default.
	MaxDegreeOfConcurrency() int
	// ParallelDisabled reports whether projects must be restored one at a time.
	ParallelDisabled() bool
	// GlobalPackagesFolder returns the configured global packages folder.
	GlobalPackagesFolder() string
}
