package nomination_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/engine/nomination"
)

var projectPath = filepath.Join(string(filepath.Separator), "src", "App", "App.csproj")

func framework(alias string, props map[string]string, items map[string][]domain.ReferenceItem) domain.TargetFrameworkInfo {
	all := map[string]string{"TargetFramework": alias}
	for k, v := range props {
		all[k] = v
	}
	return domain.TargetFrameworkInfo{Properties: all, Items: items}
}

func nominate(tfms ...domain.TargetFrameworkInfo) domain.NominationData {
	return domain.NominationData{
		ProjectUniqueName: projectPath,
		RestoreInfo: domain.ProjectRestoreInfo{
			BaseIntermediatePath: "obj",
			TargetFrameworks:     tfms,
		},
	}
}

func build(t *testing.T, n domain.NominationData) *domain.ProjectSpec {
	t.Helper()
	dg, err := nomination.NewBuilder().Build(n)
	require.NoError(t, err)
	spec := dg.Project(projectPath)
	require.NotNil(t, spec)
	return spec
}

func TestBuild_ProjectMetadata(t *testing.T) {
	dg, err := nomination.NewBuilder().Build(nominate(framework("net8.0", nil, nil)))
	require.NoError(t, err)

	assert.Equal(t, []string{projectPath}, dg.Restore())
	spec := dg.Project(projectPath)
	require.NotNil(t, spec)

	projectDir := filepath.Dir(projectPath)
	assert.Equal(t, "App", spec.Name)
	assert.Equal(t, "1.0.0", spec.Version)
	assert.Equal(t, domain.StylePackageReference, spec.Style)
	assert.Equal(t, filepath.Join(projectDir, "obj"), spec.OutputPath)
	assert.Equal(t, filepath.Join(projectDir, "obj", "project.nuget.cache"), spec.CacheFilePath)
	assert.False(t, spec.CrossTargeting)
	assert.Equal(t, []string{"net8.0"}, spec.OriginalTargetFrameworks)
	assert.True(t, spec.Settings.HideWarningsAndErrors)
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name  string
		data  domain.NominationData
		field string
	}{
		{
			name: "Missing project name",
			data: domain.NominationData{RestoreInfo: domain.ProjectRestoreInfo{
				BaseIntermediatePath: "obj",
				TargetFrameworks:     []domain.TargetFrameworkInfo{framework("net8.0", nil, nil)},
			}},
			field: "ProjectUniqueName",
		},
		{
			name: "Missing base intermediate path",
			data: domain.NominationData{ProjectUniqueName: projectPath, RestoreInfo: domain.ProjectRestoreInfo{
				TargetFrameworks: []domain.TargetFrameworkInfo{framework("net8.0", nil, nil)},
			}},
			field: "BaseIntermediatePath",
		},
		{
			name: "No target frameworks",
			data: domain.NominationData{ProjectUniqueName: projectPath, RestoreInfo: domain.ProjectRestoreInfo{
				BaseIntermediatePath: "obj",
				TargetFrameworks:     []domain.TargetFrameworkInfo{},
			}},
			field: "TargetFrameworks",
		},
		{
			name: "Nameless tool reference",
			data: domain.NominationData{ProjectUniqueName: projectPath, RestoreInfo: domain.ProjectRestoreInfo{
				BaseIntermediatePath: "obj",
				TargetFrameworks:     []domain.TargetFrameworkInfo{framework("net8.0", nil, nil)},
				ToolReferences:       []domain.ReferenceItem{{}},
			}},
			field: "ToolReferences",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nomination.NewBuilder().Build(tt.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), domain.ErrInvalidNomination.Error())
		})
	}
}

func TestBuild_PackageVersionAndID(t *testing.T) {
	spec := build(t, nominate(
		framework("net8.0", map[string]string{"PackageId": "Contoso.App", "Version": "2.0.0", "PackageVersion": "2.1.0-beta"}, nil),
		framework("net48", map[string]string{"Version": "2.0.0"}, nil),
	))
	assert.Equal(t, "Contoso.App", spec.Name)
	assert.Equal(t, "2.1.0-beta", spec.Version)
	assert.True(t, spec.CrossTargeting)
	assert.Equal(t, []string{"net8.0", "net48"}, spec.OriginalTargetFrameworks)
}

func TestBuild_PropertyNotSingleValue(t *testing.T) {
	_, err := nomination.NewBuilder().Build(nominate(
		framework("net8.0", map[string]string{"RestorePackagesPath": "a"}, nil),
		framework("net48", map[string]string{"RestorePackagesPath": "b"}, nil),
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrPropertyNotSingleValue.Error())
}

func TestBuild_SourcesClear(t *testing.T) {
	tests := []struct {
		name    string
		props   []map[string]string
		sources []string
		folders []string
	}{
		{
			name:    "Configured",
			props:   []map[string]string{{"RestoreSources": "a;b", "RestoreFallbackFolders": "f1"}},
			sources: []string{"a", "b"},
			folders: []string{"f1"},
		},
		{
			name:    "Clear discards configured values",
			props:   []map[string]string{{"RestoreSources": "a;clear;b", "RestoreFallbackFolders": "Clear"}},
			sources: []string{domain.Clear},
			folders: []string{domain.Clear},
		},
		{
			name: "Additional values follow clear",
			props: []map[string]string{
				{"RestoreSources": "Clear", "RestoreAdditionalProjectSources": "x"},
				{"RestoreSources": "Clear", "RestoreAdditionalProjectSources": "y;x"},
			},
			sources: []string{domain.Clear, domain.AdditionalValue, "x", "y"},
		},
		{
			name: "Excluded fallback folders",
			props: []map[string]string{{
				"RestoreAdditionalProjectFallbackFolders":         "f1;f2;f3",
				"RestoreAdditionalProjectFallbackFoldersExcludes": "f2",
			}},
			folders: []string{domain.AdditionalValue, "f1", "f3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aliases := []string{"net8.0", "net48"}
			tfms := make([]domain.TargetFrameworkInfo, 0, len(tt.props))
			for i, props := range tt.props {
				tfms = append(tfms, framework(aliases[i], props, nil))
			}
			spec := build(t, nominate(tfms...))
			assert.Equal(t, tt.sources, spec.Settings.Sources)
			assert.Equal(t, tt.folders, spec.Settings.FallbackFolders)
		})
	}
}

func TestBuild_RuntimeGraph(t *testing.T) {
	spec := build(t, nominate(
		framework("net8.0", map[string]string{"RuntimeIdentifier": "win-x64", "RuntimeIdentifiers": "linux-x64;win-x64", "RuntimeSupports": "uap10.0"}, nil),
		framework("net48", map[string]string{"RuntimeIdentifiers": "osx-arm64; linux-x64", "RuntimeSupports": "uap10.0;net46.app"}, nil),
	))
	assert.Equal(t, []string{"win-x64", "linux-x64", "osx-arm64"}, spec.RuntimeGraph.Runtimes)
	assert.Equal(t, []string{"uap10.0", "net46.app"}, spec.RuntimeGraph.Supports)
}

func TestBuild_Dependencies(t *testing.T) {
	items := map[string][]domain.ReferenceItem{
		"PackageReference": {
			{Name: "Newtonsoft.Json", Metadata: map[string]string{"Version": "13.0.1", "PrivateAssets": "all", "NoWarn": "NU1603;CS0168"}},
			{Name: "Serilog"},
		},
		"ProjectReference": {
			{Name: `..\Lib\Lib.csproj`},
			{Name: "../lib/lib.csproj"},
			{Name: "../Analyzer/Analyzer.csproj", Metadata: map[string]string{"ReferenceOutputAssembly": "false"}},
		},
		"FrameworkReference": {
			{Name: "Microsoft.AspNetCore.App"},
			{Name: "microsoft.aspnetcore.app"},
		},
		"PackageDownload": {
			{Name: "Microsoft.NETCore.App.Ref", Metadata: map[string]string{"Version": "[6.0.0];[7.0.0]"}},
		},
	}
	spec := build(t, nominate(framework("net8.0", map[string]string{"TargetFrameworkMoniker": ".NETCoreApp,Version=v8.0"}, items)))
	require.Len(t, spec.TargetFrameworks, 1)
	tf := spec.TargetFrameworks[0]

	assert.Equal(t, ".NETCoreApp,Version=v8.0", tf.Name)
	assert.Equal(t, "net8.0", tf.Alias)

	require.Len(t, tf.PackageReferences, 2)
	assert.Equal(t, "13.0.1", tf.PackageReferences[0].VersionRange)
	assert.Equal(t, "all", tf.PackageReferences[0].PrivateAssets)
	assert.Equal(t, []string{"NU1603"}, tf.PackageReferences[0].NoWarn)
	assert.Equal(t, domain.AllVersions, tf.PackageReferences[1].VersionRange)

	libPath := filepath.Join(filepath.Dir(filepath.Dir(projectPath)), "Lib", "Lib.csproj")
	require.Len(t, tf.ProjectReferences, 1, "references are de-duplicated and ReferenceOutputAssembly=false is skipped")
	assert.Equal(t, libPath, tf.ProjectReferences[0].ProjectUniqueName)
	assert.Equal(t, []string{libPath}, spec.ProjectReferences())

	require.Len(t, tf.FrameworkReferences, 1)
	assert.Equal(t, []domain.PackageDownload{
		{Name: "Microsoft.NETCore.App.Ref", VersionRange: "[6.0.0]"},
		{Name: "Microsoft.NETCore.App.Ref", VersionRange: "[7.0.0]"},
	}, tf.Downloads)
}

func TestBuild_PackageDownloadRequiresExactVersions(t *testing.T) {
	for _, version := range []string{"", "6.0.0", "[6.0.0, 7.0.0)", "[6.0.0,7.0.0]"} {
		t.Run(version, func(t *testing.T) {
			items := map[string][]domain.ReferenceItem{
				"PackageDownload": {{Name: "Ref", Metadata: map[string]string{"Version": version}}},
			}
			_, err := nomination.NewBuilder().Build(nominate(framework("net8.0", nil, items)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), domain.ErrInvalidPackageDownload.Error())
		})
	}
}

func TestBuild_CentralPackageVersions(t *testing.T) {
	items := map[string][]domain.ReferenceItem{
		"PackageReference": {
			{Name: "Newtonsoft.Json"},
			{Name: "Serilog", Metadata: map[string]string{"VersionOverride": "3.0.0"}},
			{Name: "Polly"},
		},
		"PackageVersion": {
			{Name: "Newtonsoft.Json", Metadata: map[string]string{"Version": "13.0.1"}},
			{Name: "newtonsoft.json", Metadata: map[string]string{"Version": "12.0.0"}},
			{Name: "Serilog", Metadata: map[string]string{"Version": "2.0.0"}},
		},
	}

	t.Run("Enabled", func(t *testing.T) {
		spec := build(t, nominate(framework("net8.0", map[string]string{"ManagePackageVersionsCentrally": "true"}, items)))
		tf := spec.TargetFrameworks[0]

		assert.True(t, spec.Settings.CentralPackageVersions)
		assert.Equal(t, []domain.CentralVersion{
			{Name: "Newtonsoft.Json", Version: "13.0.1"},
			{Name: "Serilog", Version: "2.0.0"},
		}, tf.CentralVersions)

		assert.Equal(t, "13.0.1", tf.PackageReferences[0].VersionRange)
		assert.True(t, tf.PackageReferences[0].VersionCentrallyManaged)
		assert.Equal(t, "3.0.0", tf.PackageReferences[1].VersionRange)
		assert.False(t, tf.PackageReferences[1].VersionCentrallyManaged)
		assert.Empty(t, tf.PackageReferences[2].VersionRange)
	})

	t.Run("OverrideDisabled", func(t *testing.T) {
		spec := build(t, nominate(framework("net8.0", map[string]string{
			"ManagePackageVersionsCentrally":       "true",
			"CentralPackageVersionOverrideEnabled": "false",
		}, items)))
		tf := spec.TargetFrameworks[0]
		assert.True(t, spec.Settings.CentralPackageVersionOverrideDisabled)
		assert.Equal(t, "2.0.0", tf.PackageReferences[1].VersionRange)
	})

	t.Run("Disabled", func(t *testing.T) {
		spec := build(t, nominate(framework("net8.0", nil, items)))
		tf := spec.TargetFrameworks[0]
		assert.Empty(t, tf.CentralVersions)
		assert.Equal(t, domain.AllVersions, tf.PackageReferences[0].VersionRange)
	})
}

func TestBuild_LockAndWarnings(t *testing.T) {
	spec := build(t, nominate(
		framework("net8.0", map[string]string{
			"RestorePackagesWithLockFile": "true",
			"NuGetLockFilePath":           "locks/app.lock.json",
			"RestoreLockedMode":           "True",
			"TreatWarningsAsErrors":       "true",
			"NoWarn":                      "NU1701;CS1591",
			"WarningsAsErrors":            "NU1605",
			"HideWarningsAndErrors":       "false",
		}, nil),
		framework("net48", map[string]string{
			"TreatWarningsAsErrors": "false",
			"NoWarn":                "NU1701",
			"WarningsAsErrors":      "NU1603",
			"HideWarningsAndErrors": "false",
		}, nil),
	))

	assert.Equal(t, domain.LockFileSettings{Enabled: true, Path: filepath.Join("locks", "app.lock.json"), LockedMode: true}, spec.Settings.Lock)
	assert.False(t, spec.Settings.Warnings.TreatWarningsAsErrors, "frameworks disagree, default applies")
	assert.Equal(t, []string{"NU1701"}, spec.Settings.Warnings.NoWarn)
	assert.Empty(t, spec.Settings.Warnings.WarningsAsErrors)
	assert.False(t, spec.Settings.HideWarningsAndErrors)
}

func TestBuild_OriginalTargetFrameworks(t *testing.T) {
	n := nominate(framework("net8.0", nil, nil))
	n.RestoreInfo.OriginalTargetFrameworks = "net8.0"
	spec := build(t, n)
	assert.True(t, spec.CrossTargeting)
	assert.Equal(t, []string{"net8.0"}, spec.OriginalTargetFrameworks)
}

func TestBuild_ToolReferences(t *testing.T) {
	n := nominate(framework("net8.0", map[string]string{"RestoreSources": "feed"}, nil))
	n.RestoreInfo.ToolReferences = []domain.ReferenceItem{
		{Name: "Contoso.Tool", Metadata: map[string]string{"Version": "1.0.0"}},
	}

	dg, err := nomination.NewBuilder().Build(n)
	require.NoError(t, err)

	toolName := "contoso.tool-netcoreapp1.0-1.0.0"
	assert.Len(t, dg.Restore(), 2)
	assert.True(t, dg.IsRestoreRoot(toolName))

	tool := dg.Project(toolName)
	require.NotNil(t, tool)
	assert.Equal(t, domain.StyleDotnetCliTool, tool.Style)
	assert.Equal(t, []string{"feed"}, tool.Settings.Sources)
	require.Len(t, tool.TargetFrameworks, 1)
	assert.Equal(t, "Contoso.Tool", tool.TargetFrameworks[0].PackageReferences[0].Name)
}

func TestBuild_IsDeterministic(t *testing.T) {
	items := map[string][]domain.ReferenceItem{
		"PackageReference": {{Name: "A", Metadata: map[string]string{"Version": "1.0.0"}}},
		"ProjectReference": {{Name: "../Lib/Lib.csproj"}},
	}
	first := build(t, nominate(framework("net8.0", nil, items)))
	second := build(t, nominate(framework("net8.0", nil, items)))
	assert.True(t, first.Equal(second))
}
