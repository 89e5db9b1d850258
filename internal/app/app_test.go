package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/restore/internal/app"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/restore/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type appTest struct {
	loader    *mocks.MockConfigLoader
	connector *mocks.MockDaemonConnector
	client    *mocks.MockDaemonClient
	logger    *mocks.MockLogger
	out       *bytes.Buffer
	root      string
}

func noRuntime(context.Context) (*app.Runtime, error) {
	return nil, errors.New("runtime not available")
}

func setupApp(t *testing.T) (*app.App, *appTest) {
	t.Helper()
	ctrl := gomock.NewController(t)
	at := &appTest{
		loader:    mocks.NewMockConfigLoader(ctrl),
		connector: mocks.NewMockDaemonConnector(ctrl),
		client:    mocks.NewMockDaemonClient(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		out:       &bytes.Buffer{},
		root:      "/work",
	}
	at.loader.EXPECT().Load(gomock.Any()).Return(&domain.Workspace{Root: at.root}, nil).AnyTimes()

	a := app.New(at.loader, at.connector, at.logger, noRuntime).WithOutput(at.out)
	return a, at
}

func TestApp_RuntimeErrorsPropagate(t *testing.T) {
	a, _ := setupApp(t)
	ctx := context.Background()

	require.EqualError(t, a.Restore(ctx, app.RestoreOptions{}), "runtime not available")
	_, err := a.Check(ctx)
	require.EqualError(t, err, "runtime not available")
	require.EqualError(t, a.Clean(ctx, app.CleanOptions{}), "runtime not available")
	require.EqualError(t, a.Serve(ctx), "runtime not available")
}

func TestApp_Status_NotRunning(t *testing.T) {
	a, at := setupApp(t)

	at.connector.EXPECT().Dial(gomock.Any(), at.root).Return(nil, domain.ErrDaemonUnavailable)

	require.NoError(t, a.Status(context.Background()))
	assert.Contains(t, at.out.String(), "daemon is not running")
}

func TestApp_Status_Running(t *testing.T) {
	a, at := setupApp(t)

	at.connector.EXPECT().Dial(gomock.Any(), at.root).Return(at.client, nil)
	at.client.EXPECT().Status(gomock.Any()).Return(&ports.DaemonStatus{
		Running:       true,
		PID:           4242,
		Uptime:        90 * time.Second,
		IdleRemaining: time.Hour,
		Busy:          true,
		Projects:      7,
	}, nil)
	at.client.EXPECT().Close()

	require.NoError(t, a.Status(context.Background()))
	out := at.out.String()
	assert.Contains(t, out, "daemon is running (pid 4242, restoring)")
	assert.Contains(t, out, "1m30s")
	assert.Contains(t, out, "projects:   7")
}

func TestApp_Status_JSON(t *testing.T) {
	a, at := setupApp(t)
	a.Configure(app.LogOptions{JSON: true})

	at.connector.EXPECT().Dial(gomock.Any(), at.root).Return(at.client, nil)
	at.client.EXPECT().Status(gomock.Any()).Return(&ports.DaemonStatus{Running: true, PID: 1, Projects: 2}, nil)
	at.client.EXPECT().Close()

	require.NoError(t, a.Status(context.Background()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(at.out.Bytes(), &got))
	assert.Equal(t, true, got["running"])
	assert.InDelta(t, 2, got["projects"], 0)
}

func TestApp_Status_Error(t *testing.T) {
	a, at := setupApp(t)

	at.connector.EXPECT().Dial(gomock.Any(), at.root).Return(at.client, nil)
	at.client.EXPECT().Status(gomock.Any()).Return(nil, errors.New("boom"))
	at.client.EXPECT().Close()

	require.EqualError(t, a.Status(context.Background()), "boom")
}

func TestApp_Stop(t *testing.T) {
	a, at := setupApp(t)

	at.connector.EXPECT().Dial(gomock.Any(), at.root).Return(at.client, nil)
	at.client.EXPECT().Shutdown(gomock.Any()).Return(nil)
	at.client.EXPECT().Close()

	require.NoError(t, a.Stop(context.Background()))
	assert.Contains(t, at.out.String(), "daemon stopped")
}

func TestApp_Stop_NotRunning(t *testing.T) {
	a, at := setupApp(t)

	at.connector.EXPECT().Dial(gomock.Any(), at.root).Return(nil, domain.ErrDaemonUnavailable)

	require.NoError(t, a.Stop(context.Background()))
	assert.Contains(t, at.out.String(), "daemon is not running")
}

func TestApp_Nominate(t *testing.T) {
	a, at := setupApp(t)
	app1 := domain.NominationData{ProjectUniqueName: "/work/App/App.csproj"}
	lib := domain.NominationData{ProjectUniqueName: "/work/Lib/Lib.csproj"}

	at.connector.EXPECT().Connect(gomock.Any(), at.root).Return(at.client, nil)
	at.loader.EXPECT().LoadNomination("App.nomination.yaml").Return(app1, nil)
	at.loader.EXPECT().LoadNomination("Bad.nomination.yaml").Return(domain.NominationData{}, domain.ErrNominationParseFailed)
	at.loader.EXPECT().LoadNomination("Lib.nomination.yaml").Return(lib, nil)
	at.client.EXPECT().Nominate(gomock.Any(), app1).Return(true, nil)
	at.client.EXPECT().Nominate(gomock.Any(), lib).Return(false, nil)
	at.client.EXPECT().Close()

	err := a.Nominate(context.Background(), []string{"App.nomination.yaml", "Bad.nomination.yaml", "Lib.nomination.yaml"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNominationParseFailed)
	assert.Contains(t, err.Error(), domain.ErrRestoreExecutionFailed.Error())
	assert.Contains(t, at.out.String(), "/work/App/App.csproj")
	assert.NotContains(t, at.out.String(), "/work/Lib/Lib.csproj")
}

func TestApp_Nominate_ConnectFails(t *testing.T) {
	a, at := setupApp(t)

	at.connector.EXPECT().Connect(gomock.Any(), at.root).Return(nil, domain.ErrDaemonSpawnFailed)

	err := a.Nominate(context.Background(), []string{"App.nomination.yaml"})
	require.ErrorIs(t, err, domain.ErrDaemonSpawnFailed)
}

func TestApp_WorkspaceNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrConfigNotFound)

	a := app.New(loader, mocks.NewMockDaemonConnector(ctrl), mocks.NewMockLogger(ctrl), noRuntime)
	require.ErrorIs(t, a.Status(context.Background()), domain.ErrConfigNotFound)
}
