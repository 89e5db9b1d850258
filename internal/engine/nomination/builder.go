// Package nomination converts project nominations into dependency graph specs.
package nomination

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/zerr"
)

// Builder converts nomination data into a DependencyGraphSpec. It has no side effects;
// machine settings are applied later by the project cache.
type Builder struct {
	validate *validator.Validate
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{validate: validator.New()}
}

// Build converts a nomination into a dependency graph spec holding the nominated
// project as restore root, plus one restore root per tool reference.
func (b *Builder) Build(n domain.NominationData) (*domain.DependencyGraphSpec, error) {
	if err := b.validateNomination(n); err != nil {
		return nil, err
	}

	projectPath, err := filepath.Abs(normalizePath(n.ProjectUniqueName))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidNomination.Error()), "project", n.ProjectUniqueName)
	}

	spec, err := b.projectSpec(projectPath, n.RestoreInfo)
	if err != nil {
		return nil, zerr.With(err, "project", projectPath)
	}

	dg := domain.NewDependencyGraphSpec()
	dg.AddRestore(spec.UniqueName)
	if err := dg.AddProject(spec); err != nil {
		return nil, err
	}

	tools, err := toolSpecs(projectPath, spec, n.RestoreInfo)
	if err != nil {
		return nil, zerr.With(err, "project", projectPath)
	}
	for _, tool := range tools {
		dg.AddRestore(tool.UniqueName)
		// Tool references of the same package and framework collapse into one spec.
		dg.SetProject(tool)
	}
	return dg, nil
}

func (b *Builder) validateNomination(n domain.NominationData) error {
	err := b.validate.Struct(n)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return zerr.Wrap(err, domain.ErrInvalidNomination.Error())
	}

	var errs error
	for _, fe := range fieldErrs {
		e := zerr.With(domain.ErrInvalidNomination, "field", fe.Namespace())
		errs = errors.Join(errs, zerr.With(e, "rule", fe.Tag()))
	}
	return errs
}

func (b *Builder) projectSpec(projectPath string, info domain.ProjectRestoreInfo) (*domain.ProjectSpec, error) {
	tfms := info.TargetFrameworks
	projectDir := filepath.Dir(projectPath)

	name, err := singleValue(tfms, propPackageID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		base := filepath.Base(projectPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	version, err := packageVersion(tfms)
	if err != nil {
		return nil, err
	}

	settings, err := restoreSettings(tfms)
	if err != nil {
		return nil, err
	}

	frameworks := make([]domain.TargetFramework, 0, len(tfms))
	for _, tf := range tfms {
		framework, err := targetFramework(tf, projectDir, settings)
		if err != nil {
			return nil, err
		}
		frameworks = append(frameworks, framework)
	}

	original := make([]string, 0, len(frameworks))
	for _, f := range frameworks {
		if f.Alias != "" {
			original = append(original, f.Alias)
		} else {
			original = append(original, f.Name)
		}
	}
	crossTargeting := len(original) > 1
	if strings.TrimSpace(info.OriginalTargetFrameworks) != "" {
		original = split(info.OriginalTargetFrameworks)
		// Cross targeting is on even for a single framework in the raw list.
		crossTargeting = true
	}

	outputPath := normalizePath(info.BaseIntermediatePath)
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(projectDir, outputPath)
	}

	return &domain.ProjectSpec{
		Name:                     name,
		Version:                  version,
		UniqueName:               projectPath,
		FilePath:                 projectPath,
		OutputPath:               outputPath,
		CacheFilePath:            filepath.Join(outputPath, domain.CacheFileName),
		Style:                    domain.StylePackageReference,
		CrossTargeting:           crossTargeting,
		OriginalTargetFrameworks: original,
		TargetFrameworks:         frameworks,
		RuntimeGraph:             runtimeGraph(tfms),
		Settings:                 settings,
	}, nil
}

func packageVersion(tfms []domain.TargetFrameworkInfo) (string, error) {
	// PackageVersion overrides Version.
	for _, prop := range []string{propPackageVersion, propVersion} {
		v, err := singleValue(tfms, prop)
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
	}
	return domain.DefaultPackageVersion, nil
}

func restoreSettings(tfms []domain.TargetFrameworkInfo) (domain.RestoreSettings, error) {
	var s domain.RestoreSettings
	var err error

	if s.PackagesPath, err = singleValue(tfms, propRestorePackagesPath); err != nil {
		return s, err
	}

	sources, err := singleValue(tfms, propRestoreSources)
	if err != nil {
		return s, err
	}
	s.Sources = withAdditional(
		handleClear(split(sources)),
		aggregate(tfms, propRestoreAdditionalSources, nil),
	)

	folders, err := singleValue(tfms, propRestoreFallbackFolders)
	if err != nil {
		return s, err
	}
	excludes := aggregate(tfms, propRestoreAdditionalFallbackFoldersIgnore, nil)
	s.FallbackFolders = withAdditional(
		handleClear(split(folders)),
		aggregate(tfms, propRestoreAdditionalFallbackFolders, excludes),
	)

	withLock, err := singleValue(tfms, propRestorePackagesWithLockFile)
	if err != nil {
		return s, err
	}
	lockPath, err := singleValue(tfms, propNuGetLockFilePath)
	if err != nil {
		return s, err
	}
	lockedMode, err := singleValue(tfms, propRestoreLockedMode)
	if err != nil {
		return s, err
	}
	s.Lock = domain.LockFileSettings{
		Enabled:    isTrue(withLock),
		Path:       normalizePath(lockPath),
		LockedMode: isTrue(lockedMode),
	}

	cpvm, err := singleValue(tfms, propManagePackageVersionsCentrally)
	if err != nil {
		return s, err
	}
	s.CentralPackageVersions = isTrue(cpvm)

	overrideEnabled, err := singleValue(tfms, propCentralPackageVersionOverrideEnabled)
	if err != nil {
		return s, err
	}
	s.CentralPackageVersionOverrideDisabled = isFalse(overrideEnabled)

	s.Warnings = domain.WarningSettings{
		TreatWarningsAsErrors: isTrue(singleOrDefault(tfms, propTreatWarningsAsErrors)),
		WarningsAsErrors:      logCodes(tfms, propWarningsAsErrors),
		NoWarn:                logCodes(tfms, propNoWarn),
	}

	// Build hosts show restore diagnostics themselves unless the project opts out.
	s.HideWarningsAndErrors = !isFalse(singleOrDefault(tfms, propHideWarningsAndErrors))
	return s, nil
}

func runtimeGraph(tfms []domain.TargetFrameworkInfo) domain.RuntimeGraph {
	var g domain.RuntimeGraph
	for _, tf := range tfms {
		for _, prop := range []string{propRuntimeIdentifier, propRuntimeIdentifiers} {
			g.Runtimes = appendDistinct(g.Runtimes, split(property(tf, prop))...)
		}
		g.Supports = appendDistinct(g.Supports, split(property(tf, propRuntimeSupports))...)
	}
	return g
}

func appendDistinct(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func targetFramework(
	tf domain.TargetFrameworkInfo,
	projectDir string,
	settings domain.RestoreSettings,
) (domain.TargetFramework, error) {
	alias := property(tf, propTargetFramework)
	name := property(tf, propTargetFrameworkMoniker)
	if name == "" {
		name = alias
	}

	out := domain.TargetFramework{
		Name:                       name,
		Alias:                      alias,
		AssetTargetFallback:        split(property(tf, propAssetTargetFallback)),
		RuntimeIdentifierGraphPath: property(tf, propRuntimeIdentifierGraphPath),
	}

	for _, item := range tf.Items[itemPackageReference] {
		out.PackageReferences = append(out.PackageReferences, packageReference(item, settings.CentralPackageVersions))
	}

	for _, item := range tf.Items[itemPackageDownload] {
		downloads, err := packageDownloads(item)
		if err != nil {
			return out, err
		}
		out.Downloads = append(out.Downloads, downloads...)
	}

	if settings.CentralPackageVersions {
		seen := make(map[string]struct{})
		for _, item := range tf.Items[itemPackageVersion] {
			key := strings.ToLower(item.Name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			version := metadata(item, metaVersion)
			if version == "" {
				version = domain.AllVersions
			}
			out.CentralVersions = append(out.CentralVersions, domain.CentralVersion{Name: item.Name, Version: version})
		}
		applyCentralVersions(out.PackageReferences, out.CentralVersions, settings.CentralPackageVersionOverrideDisabled)
	}

	seenFrameworks := make(map[string]struct{})
	for _, item := range tf.Items[itemFrameworkReference] {
		key := strings.ToLower(item.Name)
		if _, ok := seenFrameworks[key]; ok {
			continue
		}
		seenFrameworks[key] = struct{}{}
		out.FrameworkReferences = append(out.FrameworkReferences, domain.FrameworkReference{
			Name:          item.Name,
			PrivateAssets: metadata(item, metaPrivateAssets),
		})
	}

	seenProjects := make(map[string]struct{})
	for _, item := range tf.Items[itemProjectReference] {
		if !isTrueOrEmpty(item.MetadataValue(metaReferenceOutputAssembly)) {
			continue
		}
		path := normalizePath(item.Name)
		if !filepath.IsAbs(path) {
			path = filepath.Join(projectDir, path)
		}
		key := strings.ToLower(path)
		if _, ok := seenProjects[key]; ok {
			continue
		}
		seenProjects[key] = struct{}{}
		out.ProjectReferences = append(out.ProjectReferences, domain.ProjectReference{
			ProjectUniqueName: path,
			ProjectPath:       path,
			IncludeAssets:     metadata(item, metaIncludeAssets),
			ExcludeAssets:     metadata(item, metaExcludeAssets),
			PrivateAssets:     metadata(item, metaPrivateAssets),
		})
	}
	return out, nil
}

func packageReference(item domain.ReferenceItem, cpvm bool) domain.PackageReference {
	version := metadata(item, metaVersion)
	if version == "" && !cpvm {
		version = domain.AllVersions
	}
	return domain.PackageReference{
		Name:                 item.Name,
		VersionRange:         version,
		VersionOverride:      metadata(item, metaVersionOverride),
		IncludeAssets:        metadata(item, metaIncludeAssets),
		ExcludeAssets:        metadata(item, metaExcludeAssets),
		PrivateAssets:        metadata(item, metaPrivateAssets),
		NoWarn:               parseLogCodes(metadata(item, metaNoWarn)),
		GeneratePathProperty: isTrue(metadata(item, metaGeneratePathProperty)),
		Aliases:              metadata(item, metaAliases),
	}
}

// applyCentralVersions resolves the version of every package reference that does not
// declare one from the central pins. VersionOverride wins unless overrides are disabled.
func applyCentralVersions(refs []domain.PackageReference, pins []domain.CentralVersion, overrideDisabled bool) {
	for i := range refs {
		ref := &refs[i]
		if ref.VersionOverride != "" && !overrideDisabled {
			ref.VersionRange = ref.VersionOverride
			continue
		}
		if ref.VersionRange != "" {
			continue
		}
		for _, pin := range pins {
			if strings.EqualFold(pin.Name, ref.Name) {
				ref.VersionRange = pin.Version
				ref.VersionCentrallyManaged = true
				break
			}
		}
	}
}

func packageDownloads(item domain.ReferenceItem) ([]domain.PackageDownload, error) {
	versions := split(metadata(item, metaVersion))
	if len(versions) == 0 {
		return nil, zerr.With(domain.ErrInvalidPackageDownload, "package", item.Name)
	}

	out := make([]domain.PackageDownload, 0, len(versions))
	for _, v := range versions {
		if !isExactRange(v) {
			err := zerr.With(domain.ErrInvalidPackageDownload, "package", item.Name)
			return nil, zerr.With(err, "version", v)
		}
		out = append(out, domain.PackageDownload{Name: item.Name, VersionRange: v})
	}
	return out, nil
}

// isExactRange reports whether a version range pins a single version, as in "[1.2.3]".
func isExactRange(v string) bool {
	if !strings.HasPrefix(v, "[") || !strings.HasSuffix(v, "]") {
		return false
	}
	inner := strings.TrimSpace(v[1 : len(v)-1])
	if inner == "" {
		return false
	}
	if lower, upper, ok := strings.Cut(inner, ","); ok {
		return strings.TrimSpace(lower) != "" && strings.TrimSpace(lower) == strings.TrimSpace(upper)
	}
	return true
}

// toolSpecs builds one DotnetCliTool spec per tool reference of the project.
func toolSpecs(
	projectPath string,
	project *domain.ProjectSpec,
	info domain.ProjectRestoreInfo,
) ([]*domain.ProjectSpec, error) {
	if len(info.ToolReferences) == 0 {
		return nil, nil
	}

	framework, err := singleValue(info.TargetFrameworks, propDotnetCliToolTargetFramework)
	if err != nil {
		return nil, err
	}
	if framework == "" {
		framework = domain.DefaultToolFramework
	}

	out := make([]*domain.ProjectSpec, 0, len(info.ToolReferences))
	for _, ref := range info.ToolReferences {
		version := metadata(ref, metaVersion)
		if version == "" {
			version = domain.AllVersions
		}
		uniqueName := strings.ToLower(fmt.Sprintf("%s-%s-%s", ref.Name, framework, version))
		out = append(out, &domain.ProjectSpec{
			Name:       uniqueName,
			Version:    domain.DefaultPackageVersion,
			UniqueName: uniqueName,
			FilePath:   projectPath,
			Style:      domain.StyleDotnetCliTool,
			TargetFrameworks: []domain.TargetFramework{{
				Name: framework,
				PackageReferences: []domain.PackageReference{{
					Name:         ref.Name,
					VersionRange: version,
				}},
			}},
			Settings: domain.RestoreSettings{
				Sources:               project.Settings.Sources,
				FallbackFolders:       project.Settings.FallbackFolders,
				PackagesPath:          project.Settings.PackagesPath,
				HideWarningsAndErrors: true,
			},
		})
	}
	return out, nil
}

// normalizePath converts build host separators to the local separator.
func normalizePath(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(strings.TrimSpace(p), `\`, "/"))
}
