// Package config loads restore.yaml, packages.config files and nomination files.
package config

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader is responsible for loading and parsing the workspace configuration.
type Loader struct {
	Logger ports.Logger
	fsys   FileSystem
}

// NewLoader creates a new configuration loader reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS())
}

// NewLoaderWithFS creates a new configuration loader reading from fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{
		Logger: logger,
		fsys:   fsys,
	}
}

// Load finds restore.yaml by walking up from cwd and returns the workspace it describes.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var file Restorefile
	if err := readAndUnmarshalYAML(l.fsys, configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	root := resolveRoot(configPath, file.Root)
	ws := &domain.Workspace{
		Root:              root,
		ConfigPath:        configPath,
		Solution:          file.Solution,
		Settings:          settingsFrom(file.Settings),
		DaemonIdleTimeout: domain.DefaultDaemonIdleTimeout,
		MetricsAddress:    file.Daemon.MetricsAddress,
	}
	if ws.Solution == "" {
		ws.Solution = filepath.Base(root)
	}

	if file.Daemon.IdleTimeout != "" {
		timeout, parseErr := time.ParseDuration(file.Daemon.IdleTimeout)
		if parseErr != nil || timeout <= 0 {
			err := zerr.With(domain.ErrConfigParseFailed, "field", "daemon.idleTimeout")
			return nil, zerr.With(err, "value", file.Daemon.IdleTimeout)
		}
		ws.DaemonIdleTimeout = timeout
	}

	ws.NominationFiles, err = l.resolveNominationPaths(root, file.Nominations)
	if err != nil {
		return nil, err
	}

	ws.PackagesConfig, err = l.loadPackagesConfig(root, file.PackagesConfig)
	if err != nil {
		return nil, err
	}

	return ws, nil
}

// LoadNominations reads every nomination file of ws. Files that fail to load are
// skipped and their errors joined into the returned error.
func (l *Loader) LoadNominations(ws *domain.Workspace) ([]domain.NominationData, error) {
	nominations := make([]domain.NominationData, 0, len(ws.NominationFiles))
	var errs []error
	for _, path := range ws.NominationFiles {
		n, err := l.LoadNomination(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		nominations = append(nominations, n)
	}
	return nominations, errors.Join(errs...)
}

// LoadNomination reads a single nomination file. A relative project path is resolved
// against the directory of the file, and a relative intermediate path against the
// directory of the project.
func (l *Loader) LoadNomination(path string) (domain.NominationData, error) {
	var n domain.NominationData

	data, err := l.fsys.ReadFile(path)
	if err != nil {
		return n, zerr.With(zerr.Wrap(err, domain.ErrNominationReadFailed.Error()), "path", path)
	}
	if err := decodeStrict(data, &n); err != nil {
		return n, zerr.With(zerr.Wrap(err, domain.ErrNominationParseFailed.Error()), "path", path)
	}

	if n.ProjectUniqueName != "" && !filepath.IsAbs(n.ProjectUniqueName) {
		n.ProjectUniqueName = filepath.Join(filepath.Dir(path), n.ProjectUniqueName)
	}
	if p := n.RestoreInfo.BaseIntermediatePath; p != "" && !filepath.IsAbs(p) {
		n.RestoreInfo.BaseIntermediatePath = filepath.Join(filepath.Dir(n.ProjectUniqueName), p)
	}

	return n, nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	dir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if info, err := l.fsys.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
		}
		dir = parent
	}
}

func (l *Loader) resolveNominationPaths(root string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range patterns {
		fullPattern := pattern
		if !filepath.IsAbs(fullPattern) {
			fullPattern = filepath.Join(root, pattern)
		}

		matches, err := l.fsys.Glob(fullPattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "pattern", pattern)
		}
		if len(matches) == 0 {
			l.Logger.Warn("nomination pattern matched no files: " + pattern)
		}

		for _, match := range matches {
			match = filepath.Clean(match)
			if seen[match] {
				continue
			}
			seen[match] = true
			paths = append(paths, match)
		}
	}

	slices.Sort(paths)
	return paths, nil
}

func (l *Loader) loadPackagesConfig(
	root string,
	entries []PackagesConfigDTO,
) ([]domain.PackagesConfigProject, error) {
	projects := make([]domain.PackagesConfigProject, 0, len(entries))
	for i, entry := range entries {
		if entry.Project == "" {
			return nil, zerr.With(domain.ErrConfigParseFailed, "field", "packagesConfig.project")
		}

		projectPath := rebase(root, entry.Project)
		configPath := filepath.Join(filepath.Dir(projectPath), domain.PackagesConfigFileName)
		if entry.Packages != "" {
			configPath = rebase(root, entry.Packages)
		}

		packages, err := l.readPackagesConfig(configPath)
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}

		projects = append(projects, domain.PackagesConfigProject{
			ProjectPath:        projectPath,
			PackagesConfigPath: configPath,
			Packages:           packages,
		})
	}
	return projects, nil
}

func (l *Loader) readPackagesConfig(path string) ([]domain.PackageIdentity, error) {
	data, err := l.fsys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.Logger.Warn("packages.config not found: " + path)
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	packages, err := ParsePackagesConfig(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return packages, nil
}

// ParsePackagesConfig decodes the package entries of a packages.config document.
func ParsePackagesConfig(data []byte) ([]domain.PackageIdentity, error) {
	var file packagesFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrPackagesConfigParseFailed.Error())
	}

	packages := make([]domain.PackageIdentity, 0, len(file.Packages))
	for _, p := range file.Packages {
		if p.ID == "" || p.Version == "" {
			return nil, zerr.With(domain.ErrPackagesConfigParseFailed, "package", p.ID)
		}
		packages = append(packages, domain.PackageIdentity{ID: p.ID, Version: p.Version})
	}
	return packages, nil
}

func settingsFrom(dto SettingsDTO) domain.RestoreConfig {
	cfg := domain.DefaultRestoreConfig()
	if dto.Consent != nil {
		cfg.ConsentGranted = *dto.Consent
	}
	if dto.Automatic != nil {
		cfg.AutomaticRestore = *dto.Automatic
	}
	if dto.MaxDegreeOfConcurrency > 0 {
		cfg.MaxDegreeOfConcurrency = dto.MaxDegreeOfConcurrency
	}
	cfg.DisableParallel = dto.DisableParallel
	if dto.GlobalPackagesFolder != "" {
		cfg.GlobalPackagesFolder = dto.GlobalPackagesFolder
	}
	cfg.Feeds = slices.Clone(dto.Feeds)
	if dto.Verbosity != "" {
		cfg.Verbosity = domain.ParseVerbosity(dto.Verbosity)
	}
	cfg.MachineLock = dto.MachineLock
	return cfg
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

func rebase(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func readAndUnmarshalYAML[T any](fsys FileSystem, configPath string, target *T) error {
	configFile, err := fsys.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := decodeStrict(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

// decodeStrict rejects unknown keys. An empty document leaves target untouched.
func decodeStrict(data []byte, target any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
