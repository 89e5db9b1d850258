package feed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/juju/clock"
	"go.trai.ch/restore/internal/adapters/config"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
)

// PackagesConfig restores packages.config style projects into the solution packages
// folder, which uses the <id>.<version> layout.
type PackagesConfig struct {
	installer
	feeds []string
}

// NewPackagesConfig creates a packages.config restorer reading from the given local feeds.
func NewPackagesConfig(feeds []string, logger ports.Logger, clk clock.Clock) *PackagesConfig {
	return &PackagesConfig{
		installer: installer{clock: clk, logger: logger},
		feeds:     feeds,
	}
}

func solutionPackageDir(solutionDir string, pkg domain.PackageIdentity) string {
	return filepath.Join(solutionDir, domain.PackagesConfigFolder, pkg.String())
}

// MissingPackages returns the packages of projects that are not present in the
// solution packages folder, ordered by identity.
func (pc *PackagesConfig) MissingPackages(
	_ context.Context,
	solutionDir string,
	projects []*domain.ProjectSpec,
) ([]domain.MissingPackage, error) {
	byKey := make(map[string]*domain.MissingPackage)
	for _, p := range projects {
		path := p.PackagesConfigPath
		if path == "" {
			path = filepath.Join(p.ProjectDirectory(), domain.PackagesConfigFileName)
		}
		// #nosec G304 -- path comes from restore.yaml
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
		}
		packages, err := config.ParsePackagesConfig(data)
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}

		for _, pkg := range packages {
			if exists(filepath.Join(solutionPackageDir(solutionDir, pkg), MetadataFileName)) {
				continue
			}
			key := strings.ToLower(pkg.String())
			m, ok := byKey[key]
			if !ok {
				m = &domain.MissingPackage{Package: pkg}
				byKey[key] = m
			}
			if !slices.Contains(m.Projects, p.UniqueName) {
				m.Projects = append(m.Projects, p.UniqueName)
			}
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]domain.MissingPackage, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	return out, nil
}

// RestoreMissing copies the missing packages out of the feeds and returns one summary
// per affected project.
func (pc *PackagesConfig) RestoreMissing(
	ctx context.Context,
	solutionDir string,
	missing []domain.MissingPackage,
) ([]domain.RestoreSummary, error) {
	summaries := make(map[string]*domain.RestoreSummary)
	summary := func(project string) *domain.RestoreSummary {
		s, ok := summaries[project]
		if !ok {
			s = &domain.RestoreSummary{ProjectUniqueName: project, Success: true}
			summaries[project] = s
		}
		return s
	}

	for _, m := range missing {
		if err := ctx.Err(); err != nil {
			return collectSummaries(summaries), err
		}

		src, source, found := pc.find(m.Package)
		if !found {
			for _, project := range m.Projects {
				s := summary(project)
				s.Success = false
				s.Messages = append(s.Messages, domain.LogMessage{
					Code:        "NU1101",
					Level:       domain.SeverityError,
					Message:     fmt.Sprintf("Unable to find package %s %s in source(s): %s", m.Package.ID, m.Package.Version, strings.Join(pc.feeds, ", ")),
					ProjectPath: project,
				})
			}
			continue
		}

		if err := pc.install(ctx, src, solutionPackageDir(solutionDir, m.Package), source); err != nil {
			return collectSummaries(summaries), err
		}
		for _, project := range m.Projects {
			summary(project).InstallCount++
		}
	}
	return collectSummaries(summaries), nil
}

func (pc *PackagesConfig) find(pkg domain.PackageIdentity) (dir, source string, found bool) {
	for _, feed := range pc.feeds {
		if isRemote(feed) {
			continue
		}
		vs, err := versions(feed, pkg.ID)
		if err != nil {
			continue
		}
		for _, v := range vs {
			if compareVersions(v, pkg.Version) == 0 {
				return packageDir(feed, pkg.ID, v), feed, true
			}
		}
	}
	return "", "", false
}

func collectSummaries(byProject map[string]*domain.RestoreSummary) []domain.RestoreSummary {
	names := make([]string, 0, len(byProject))
	for name := range byProject {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]domain.RestoreSummary, 0, len(names))
	for _, name := range names {
		out = append(out, *byProject[name])
	}
	return out
}
