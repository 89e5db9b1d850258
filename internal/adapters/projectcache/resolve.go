package projectcache

import (
	"path/filepath"
	"strings"

	"go.trai.ch/restore/internal/core/domain"
)

// settingsResolver turns the raw nominated settings of a project into the settings a
// restore runs with.
type settingsResolver struct {
	root           string
	packagesFolder string
	feeds          []string
}

func (r settingsResolver) apply(p *domain.ProjectSpec) *domain.ProjectSpec {
	out := p.Clone()
	dir := out.ProjectDirectory()
	s := &out.Settings

	if s.PackagesPath == "" {
		s.PackagesPath = rebase(r.root, r.packagesFolder)
	} else {
		s.PackagesPath = rebase(dir, s.PackagesPath)
	}

	feeds := make([]string, 0, len(r.feeds))
	for _, f := range r.feeds {
		feeds = append(feeds, rebase(r.root, f))
	}
	s.Sources = resolveList(dir, s.Sources, feeds)
	s.FallbackFolders = resolveList(dir, s.FallbackFolders, nil)

	switch {
	case s.Lock.Path != "":
		s.Lock.Path = rebase(dir, s.Lock.Path)
	case s.Lock.Enabled:
		s.Lock.Path = filepath.Join(dir, domain.LockFileName)
	}

	if out.Style == domain.StyleDotnetCliTool && out.OutputPath == "" {
		out.OutputPath, out.CacheFilePath = domain.ToolOutputPaths(out)
	}
	return out
}

// resolveList applies the Clear and AdditionalValue markers. Without configured
// entries the defaults are used.
func resolveList(dir string, values, defaults []string) []string {
	configured, additional := splitAdditional(values)

	var out []string
	switch {
	case len(configured) == 1 && strings.EqualFold(configured[0], domain.Clear):
	case len(configured) == 0:
		out = append(out, defaults...)
	default:
		for _, v := range configured {
			out = append(out, rebase(dir, v))
		}
	}
	for _, v := range additional {
		out = append(out, rebase(dir, v))
	}
	return distinct(out)
}

func splitAdditional(values []string) (configured, additional []string) {
	for i, v := range values {
		if v == domain.AdditionalValue {
			return values[:i], values[i+1:]
		}
	}
	return values, nil
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		k := strings.ToLower(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// rebase resolves a relative local path against base. Remote sources and paths
// without a base are returned unchanged.
func rebase(base, path string) string {
	if path == "" || strings.Contains(path, "://") || filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}
