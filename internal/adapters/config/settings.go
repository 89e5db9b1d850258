package config

import (
	"sync"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
)

// Settings reads the restore settings from restore.yaml on every query so edits take
// effect without restarting the host. When the file cannot be read the last good
// values are used.
type Settings struct {
	path   string
	fsys   FileSystem
	logger ports.Logger

	mu   sync.Mutex
	last domain.RestoreConfig
}

// NewSettings creates Settings backed by the restore.yaml at path. initial is used
// until the first successful read.
func NewSettings(path string, fsys FileSystem, initial domain.RestoreConfig, logger ports.Logger) *Settings {
	return &Settings{
		path:   path,
		fsys:   fsys,
		logger: logger,
		last:   initial,
	}
}

// Current re-reads the settings file and returns its settings.
func (s *Settings) Current() domain.RestoreConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	var file Restorefile
	if err := readAndUnmarshalYAML(s.fsys, s.path, &file); err != nil {
		s.logger.Warn("using last known restore settings: " + err.Error())
		return s.last
	}
	s.last = settingsFrom(file.Settings)
	return s.last
}

// ConsentGranted reports whether package restore consent is granted.
func (s *Settings) ConsentGranted() bool {
	return s.Current().ConsentGranted
}

// AutomaticRestoreEnabled reports whether restore runs on build.
func (s *Settings) AutomaticRestoreEnabled() bool {
	return s.Current().AutomaticRestore
}

// MaxDegreeOfConcurrency returns the configured parallelism, or 0 for the default.
func (s *Settings) MaxDegreeOfConcurrency() int {
	return s.Current().MaxDegreeOfConcurrency
}

// ParallelDisabled reports whether projects restore one at a time.
func (s *Settings) ParallelDisabled() bool {
	return s.Current().DisableParallel
}

// GlobalPackagesFolder returns the configured global packages folder as written.
func (s *Settings) GlobalPackagesFolder() string {
	return s.Current().GlobalPackagesFolder
}
