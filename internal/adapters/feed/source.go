package feed

import (
	"encoding/xml"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MetadataFileName marks a package folder as completely installed.
const MetadataFileName = ".nupkg.metadata"

// packageDir returns the folder of a package in the id/version layout shared by
// feeds, fallback folders and the global packages folder.
func packageDir(root, id, version string) string {
	return filepath.Join(root, strings.ToLower(id), strings.ToLower(version))
}

func isRemote(source string) bool {
	return strings.Contains(source, "://")
}

// versions lists the versions of id available in a local folder.
func versions(root, id string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, strings.ToLower(id)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && canonical(e.Name()) != "" {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

type nuspecDependency struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`
}

type nuspecGroup struct {
	TargetFramework string             `xml:"targetFramework,attr"`
	Dependencies    []nuspecDependency `xml:"dependency"`
}

type nuspec struct {
	Metadata struct {
		Dependencies struct {
			Dependencies []nuspecDependency `xml:"dependency"`
			Groups       []nuspecGroup      `xml:"group"`
		} `xml:"dependencies"`
	} `xml:"metadata"`
}

// dependencies reads the dependencies a package declares for framework. A package
// without a nuspec has none.
func dependencies(dir, id, framework string) ([]nuspecDependency, error) {
	// #nosec G304 -- dir is a resolved package folder
	data, err := os.ReadFile(filepath.Join(dir, strings.ToLower(id)+".nuspec"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var spec nuspec
	if err := xml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	deps := spec.Metadata.Dependencies
	var generic []nuspecDependency
	generic = append(generic, deps.Dependencies...)
	for _, g := range deps.Groups {
		if strings.EqualFold(g.TargetFramework, framework) {
			return g.Dependencies, nil
		}
		if g.TargetFramework == "" {
			generic = append(generic, g.Dependencies...)
		}
	}
	return generic, nil
}
