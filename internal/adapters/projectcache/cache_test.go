package projectcache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/restore/internal/adapters/projectcache"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func nominated(t *testing.T, spec *domain.ProjectSpec) *domain.DependencyGraphSpec {
	t.Helper()
	dg := domain.NewDependencyGraphSpec()
	require.NoError(t, dg.AddProject(spec))
	dg.AddRestore(spec.UniqueName)
	return dg
}

func project(path string, settings domain.RestoreSettings) *domain.ProjectSpec {
	return &domain.ProjectSpec{
		Name:       "App",
		UniqueName: path,
		FilePath:   path,
		Style:      domain.StylePackageReference,
		Settings:   settings,
	}
}

func newCache(t *testing.T, ws *domain.Workspace, folder string) *projectcache.Cache {
	t.Helper()
	ctrl := gomock.NewController(t)
	settings := mocks.NewMockSettings(ctrl)
	settings.EXPECT().GlobalPackagesFolder().Return(folder).AnyTimes()
	return projectcache.New(ws, settings)
}

func TestCache_SolutionState(t *testing.T) {
	ws := &domain.Workspace{
		Root:            "/sln",
		NominationFiles: []string{"/sln/a.nomination.yaml", "/sln/b.nomination.yaml"},
	}
	cache := newCache(t, ws, ".packages")

	assert.True(t, cache.IsAvailable())
	assert.Equal(t, "/sln", cache.Directory())
	assert.False(t, cache.IsLoaded())
	cache.SetLoaded(true)
	assert.True(t, cache.IsLoaded())

	cache.AddProjectRestoreInfo("/sln/A/A.csproj", nominated(t, project("/sln/A/A.csproj", domain.RestoreSettings{})))
	assert.False(t, cache.AllProjectsNominated())

	cache.AddProjectRestoreInfo("/sln/B/B.csproj", nominated(t, project("/sln/B/B.csproj", domain.RestoreSettings{})))
	assert.True(t, cache.AllProjectsNominated())

	cache.AddProjectRestoreInfo("/SLN/B/B.csproj", nominated(t, project("/SLN/B/B.csproj", domain.RestoreSettings{})))
	assert.Equal(t, 2, cache.Count(), "unique names compare case-insensitively")

	cache.RemoveProject("/sln/a/a.csproj")
	assert.Equal(t, 1, cache.Count())
}

func TestCache_NoSolution(t *testing.T) {
	cache := newCache(t, nil, ".packages")

	assert.False(t, cache.IsAvailable())
	assert.Empty(t, cache.Directory())
	assert.False(t, cache.AllProjectsNominated())

	cache.AddProjectRestoreInfo("/a/A.csproj", nominated(t, project("/a/A.csproj", domain.RestoreSettings{})))
	dg, err := cache.DependencyGraph(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ".packages", dg.Project("/a/A.csproj").Settings.PackagesPath,
		"relative folders stay relative without a solution directory")
}

func TestCache_DependencyGraphAppliesSettings(t *testing.T) {
	ws := &domain.Workspace{
		Root:     "/sln",
		Settings: domain.RestoreConfig{Feeds: []string{"feed", "https://api.nuget.org/v3/index.json"}},
	}
	cache := newCache(t, ws, ".packages")

	raw := project("/sln/App/App.csproj", domain.RestoreSettings{
		FallbackFolders: []string{"fallback", domain.AdditionalValue, "/extra"},
		Lock:            domain.LockFileSettings{Enabled: true},
	})
	cache.AddProjectRestoreInfo(raw.UniqueName, nominated(t, raw))

	dg, err := cache.DependencyGraph(context.Background())
	require.NoError(t, err)

	got := dg.Project("/sln/App/App.csproj")
	require.NotNil(t, got)
	assert.Equal(t, "/sln/.packages", got.Settings.PackagesPath)
	assert.Equal(t, []string{"/sln/feed", "https://api.nuget.org/v3/index.json"}, got.Settings.Sources)
	assert.Equal(t, []string{"/sln/App/fallback", "/extra"}, got.Settings.FallbackFolders)
	assert.Equal(t, "/sln/App/packages.lock.json", got.Settings.Lock.Path)
	assert.Equal(t, []string{"/sln/App/App.csproj"}, dg.Restore())

	assert.Empty(t, raw.Settings.PackagesPath, "stored nominations are not modified")
}

func TestCache_DependencyGraphClearSources(t *testing.T) {
	ws := &domain.Workspace{Root: "/sln", Settings: domain.RestoreConfig{Feeds: []string{"feed"}}}
	cache := newCache(t, ws, "/global")

	raw := project("/sln/App/App.csproj", domain.RestoreSettings{
		Sources:      []string{domain.Clear, domain.AdditionalValue, "local"},
		PackagesPath: "pkgs",
	})
	cache.AddProjectRestoreInfo(raw.UniqueName, nominated(t, raw))

	dg, err := cache.DependencyGraph(context.Background())
	require.NoError(t, err)

	got := dg.Project(raw.UniqueName)
	assert.Equal(t, []string{"/sln/App/local"}, got.Settings.Sources)
	assert.Equal(t, "/sln/App/pkgs", got.Settings.PackagesPath)
}

func TestCache_DependencyGraphIncludesPackagesConfigProjects(t *testing.T) {
	ws := &domain.Workspace{
		Root: "/sln",
		PackagesConfig: []domain.PackagesConfigProject{{
			ProjectPath:        "/sln/legacy/Old.csproj",
			PackagesConfigPath: "/sln/legacy/packages.config",
		}},
	}
	cache := newCache(t, ws, ".packages")

	dg, err := cache.DependencyGraph(context.Background())
	require.NoError(t, err)

	got := dg.Project("/sln/legacy/Old.csproj")
	require.NotNil(t, got)
	assert.Equal(t, domain.StylePackagesConfig, got.Style)
	assert.Equal(t, "Old", got.Name)
	assert.Equal(t, "/sln/legacy/packages.config", got.PackagesConfigPath)
	assert.True(t, dg.IsRestoreRoot("/sln/legacy/Old.csproj"))
}

func TestCache_DependencyGraphPlacesToolOutputs(t *testing.T) {
	ws := &domain.Workspace{Root: "/sln"}
	cache := newCache(t, ws, "/global")

	app := project("/sln/App/App.csproj", domain.RestoreSettings{})
	dg := nominated(t, app)
	for _, ref := range []string{"Contoso.Tool", "Contoso.Other"} {
		tool := &domain.ProjectSpec{
			Name:       ref,
			UniqueName: ref + "-netcoreapp1.0-[1.0.0]",
			FilePath:   app.FilePath,
			Style:      domain.StyleDotnetCliTool,
			TargetFrameworks: []domain.TargetFramework{{
				Name:              "netcoreapp1.0",
				PackageReferences: []domain.PackageReference{{Name: ref, VersionRange: "[1.0.0]"}},
			}},
		}
		dg.SetProject(tool)
		dg.AddRestore(tool.UniqueName)
	}
	cache.AddProjectRestoreInfo(app.UniqueName, dg)

	got, err := cache.DependencyGraph(context.Background())
	require.NoError(t, err)

	first := got.Project("Contoso.Tool-netcoreapp1.0-[1.0.0]")
	require.NotNil(t, first)
	assert.Equal(t, "/global/.tools/contoso.tool/_1.0.0_/netcoreapp1.0", first.OutputPath)
	assert.Equal(t, "/global/.tools/contoso.tool/_1.0.0_/netcoreapp1.0/contoso.tool.nuget.cache", first.CacheFilePath)

	second := got.Project("Contoso.Other-netcoreapp1.0-[1.0.0]")
	require.NotNil(t, second)
	assert.NotEqual(t, first.CacheFilePath, second.CacheFilePath)

	assert.Empty(t, got.Project(app.UniqueName).OutputPath, "nominated output paths are kept as is")
}
