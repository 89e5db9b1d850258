package nomination

import (
	"slices"
	"strings"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/zerr"
)

// Project build property and item names read from nominations.
const (
	propPackageID                              = "PackageId"
	propPackageVersion                         = "PackageVersion"
	propVersion                                = "Version"
	propTargetFramework                        = "TargetFramework"
	propTargetFrameworkMoniker                 = "TargetFrameworkMoniker"
	propRuntimeIdentifier                      = "RuntimeIdentifier"
	propRuntimeIdentifiers                     = "RuntimeIdentifiers"
	propRuntimeSupports                        = "RuntimeSupports"
	propRuntimeIdentifierGraphPath             = "RuntimeIdentifierGraphPath"
	propAssetTargetFallback                    = "AssetTargetFallback"
	propRestorePackagesPath                    = "RestorePackagesPath"
	propRestoreSources                         = "RestoreSources"
	propRestoreAdditionalSources               = "RestoreAdditionalProjectSources"
	propRestoreFallbackFolders                 = "RestoreFallbackFolders"
	propRestoreAdditionalFallbackFolders       = "RestoreAdditionalProjectFallbackFolders"
	propRestoreAdditionalFallbackFoldersIgnore = "RestoreAdditionalProjectFallbackFoldersExcludes"
	propRestorePackagesWithLockFile            = "RestorePackagesWithLockFile"
	propNuGetLockFilePath                      = "NuGetLockFilePath"
	propRestoreLockedMode                      = "RestoreLockedMode"
	propManagePackageVersionsCentrally         = "ManagePackageVersionsCentrally"
	propCentralPackageVersionOverrideEnabled   = "CentralPackageVersionOverrideEnabled"
	propTreatWarningsAsErrors                  = "TreatWarningsAsErrors"
	propWarningsAsErrors                       = "WarningsAsErrors"
	propNoWarn                                 = "NoWarn"
	propHideWarningsAndErrors                  = "HideWarningsAndErrors"
	propDotnetCliToolTargetFramework           = "DotnetCliToolTargetFramework"

	itemPackageReference   = "PackageReference"
	itemProjectReference   = "ProjectReference"
	itemFrameworkReference = "FrameworkReference"
	itemPackageDownload    = "PackageDownload"
	itemPackageVersion     = "PackageVersion"

	metaVersion                 = "Version"
	metaVersionOverride         = "VersionOverride"
	metaIncludeAssets           = "IncludeAssets"
	metaExcludeAssets           = "ExcludeAssets"
	metaPrivateAssets           = "PrivateAssets"
	metaNoWarn                  = "NoWarn"
	metaGeneratePathProperty    = "GeneratePathProperty"
	metaAliases                 = "Aliases"
	metaReferenceOutputAssembly = "ReferenceOutputAssembly"
)

// split breaks an MSBuild list on ';', trimming entries and dropping empty ones.
func split(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isTrue(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

func isFalse(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "false")
}

func isTrueOrEmpty(value string) bool {
	return strings.TrimSpace(value) == "" || isTrue(value)
}

func property(tf domain.TargetFrameworkInfo, name string) string {
	return strings.TrimSpace(tf.Property(name))
}

func metadata(item domain.ReferenceItem, name string) string {
	return strings.TrimSpace(item.MetadataValue(name))
}

// distinctValues returns the distinct non-empty values of a property across frameworks
// in order of appearance.
func distinctValues(tfms []domain.TargetFrameworkInfo, name string) []string {
	var out []string
	for _, tf := range tfms {
		v := property(tf, name)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// singleValue returns the value of a project-wide property. Frameworks that do not set
// the property are ignored; frameworks that disagree are an error.
func singleValue(tfms []domain.TargetFrameworkInfo, name string) (string, error) {
	values := distinctValues(tfms, name)
	switch len(values) {
	case 0:
		return "", nil
	case 1:
		return values[0], nil
	default:
		slices.Sort(values)
		err := zerr.With(domain.ErrPropertyNotSingleValue, "property", name)
		return "", zerr.With(err, "values", strings.Join(values, ", "))
	}
}

// singleOrDefault returns the value of a property when every framework agrees, and ""
// otherwise.
func singleOrDefault(tfms []domain.TargetFrameworkInfo, name string) string {
	values := distinctValues(tfms, name)
	if len(values) != 1 {
		return ""
	}
	return values[0]
}

// logCodes returns the warning codes of a property when every framework lists the same
// set, and nil otherwise.
func logCodes(tfms []domain.TargetFrameworkInfo, name string) []string {
	var codes []string
	for i, tf := range tfms {
		current := parseLogCodes(property(tf, name))
		if i == 0 {
			codes = current
			continue
		}
		if !slices.Equal(codes, current) {
			return nil
		}
	}
	return codes
}

// parseLogCodes splits a NoWarn-style list on ';' and ',' keeping NU codes only,
// sorted and distinct.
func parseLogCodes(value string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == ';' || r == ',' }) {
		code := strings.ToUpper(strings.TrimSpace(part))
		if !strings.HasPrefix(code, "NU") || slices.Contains(out, code) {
			continue
		}
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}

// aggregate collects the split values of a property across every framework, distinct
// in order of appearance, minus the excluded values.
func aggregate(tfms []domain.TargetFrameworkInfo, name string, exclude []string) []string {
	var out []string
	for _, tf := range tfms {
		for _, v := range split(property(tf, name)) {
			if slices.Contains(out, v) || slices.Contains(exclude, v) {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

// handleClear keeps only the Clear sentinel when it appears among the values.
func handleClear(values []string) []string {
	for _, v := range values {
		if strings.EqualFold(v, domain.Clear) {
			return []string{domain.Clear}
		}
	}
	return values
}

// withAdditional appends additional entries after the AdditionalValue marker so that
// a later settings pass can tell them apart from the configured entries.
func withAdditional(entries, additional []string) []string {
	if len(additional) == 0 {
		return entries
	}
	out := make([]string, 0, len(entries)+1+len(additional))
	out = append(out, entries...)
	out = append(out, domain.AdditionalValue)
	return append(out, additional...)
}
