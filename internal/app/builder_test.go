package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/restore/internal/app"
	"go.trai.ch/restore/internal/core/domain"
	_ "go.trai.ch/restore/internal/wiring" // Register providers
)

func TestAppWiring(t *testing.T) {
	// Components build outside of any workspace.
	t.Chdir(t.TempDir())

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}

func TestRuntimeWiring_RestoresEmptyWorkspace(t *testing.T) {
	root := t.TempDir()
	config := "settings:\n  globalPackagesFolder: " + filepath.Join(root, "packages") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ConfigFileName), []byte(config), domain.FilePerm))
	t.Chdir(root)

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	a := components.App.WithOutput(&out)
	a.Configure(app.LogOptions{Verbosity: "quiet"})

	require.NoError(t, a.Restore(context.Background(), app.RestoreOptions{}))
	assert.Contains(t, out.String(), "all projects are up-to-date")
}
