package domain_test

import (
	"path/filepath"
	"testing"

	"go.trai.ch/restore/internal/core/domain"
)

func TestLayoutPaths(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "DefaultRestorePath",
			got:      domain.DefaultRestorePath(),
			expected: ".restore",
		},
		{
			name:     "DefaultDaemonSocketPath",
			got:      domain.DefaultDaemonSocketPath(),
			expected: filepath.Join(".restore", "daemon.sock"),
		},
		{
			name:     "DefaultDaemonPIDPath",
			got:      domain.DefaultDaemonPIDPath(),
			expected: filepath.Join(".restore", "daemon.pid"),
		},
		{
			name:     "DefaultDaemonLogPath",
			got:      domain.DefaultDaemonLogPath(),
			expected: filepath.Join(".restore", "daemon.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s() = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestRestoreOutputPaths(t *testing.T) {
	dir := filepath.Join("src", "app")
	obj := filepath.Join(dir, "obj")

	t.Run("PackageReference", func(t *testing.T) {
		p := &domain.ProjectSpec{
			UniqueName:    filepath.Join(dir, "app.csproj"),
			FilePath:      filepath.Join(dir, "app.csproj"),
			OutputPath:    obj,
			CacheFilePath: filepath.Join(obj, domain.CacheFileName),
			Style:         domain.StylePackageReference,
		}
		paths := domain.RestoreOutputPaths(p)
		if paths.AssetsFile != filepath.Join(obj, "project.assets.json") {
			t.Errorf("unexpected assets file %q", paths.AssetsFile)
		}
		if paths.TargetsFile != filepath.Join(obj, "app.csproj.nuget.g.targets") {
			t.Errorf("unexpected targets file %q", paths.TargetsFile)
		}
		if paths.PropsFile != filepath.Join(obj, "app.csproj.nuget.g.props") {
			t.Errorf("unexpected props file %q", paths.PropsFile)
		}
		if paths.LockFile != filepath.Join(dir, "packages.lock.json") {
			t.Errorf("unexpected lock file %q", paths.LockFile)
		}
	})

	t.Run("PackageReferenceCustomLockPath", func(t *testing.T) {
		p := &domain.ProjectSpec{
			FilePath:   filepath.Join(dir, "app.csproj"),
			OutputPath: obj,
			Style:      domain.StylePackageReference,
			Settings: domain.RestoreSettings{
				Lock: domain.LockFileSettings{Enabled: true, Path: "locks/app.lock.json"},
			},
		}
		paths := domain.RestoreOutputPaths(p)
		if paths.LockFile != filepath.Join(dir, "locks", "app.lock.json") {
			t.Errorf("unexpected lock file %q", paths.LockFile)
		}
		if paths.CacheFile != filepath.Join(obj, domain.CacheFileName) {
			t.Errorf("unexpected cache file %q", paths.CacheFile)
		}
	})

	t.Run("ProjectJson", func(t *testing.T) {
		p := &domain.ProjectSpec{
			FilePath:   filepath.Join(dir, "app.csproj"),
			OutputPath: obj,
			Style:      domain.StyleProjectJSON,
		}
		paths := domain.RestoreOutputPaths(p)
		if paths.AssetsFile != filepath.Join(dir, "project.assets.json") {
			t.Errorf("unexpected assets file %q", paths.AssetsFile)
		}
		if paths.TargetsFile != filepath.Join(obj, "app.nuget.g.targets") {
			t.Errorf("unexpected targets file %q", paths.TargetsFile)
		}
		if paths.LockFile != "" {
			t.Errorf("expected no lock file, got %q", paths.LockFile)
		}
	})
}
