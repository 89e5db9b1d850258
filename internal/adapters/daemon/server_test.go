package daemon_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/restore/internal/adapters/daemon"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakeRestorer struct {
	nominated atomic.Value
	force     atomic.Bool
	busy      atomic.Bool
	fail      atomic.Bool
}

func (f *fakeRestorer) NominateProject(_ context.Context, n domain.NominationData) (bool, error) {
	if len(n.RestoreInfo.TargetFrameworks) == 0 {
		return false, domain.ErrInvalidNomination
	}
	f.nominated.Store(n)
	return true, nil
}

func (f *fakeRestorer) RestoreSolution(
	_ context.Context,
	force bool,
	reason domain.ExplicitRestoreReason,
) (bool, error) {
	if reason != domain.ReasonRestoreSolutionPackages {
		return false, errors.New("unexpected reason")
	}
	if f.fail.Load() {
		return false, domain.ErrRestoreExecutionFailed
	}
	f.force.Store(force)
	return true, nil
}

func (f *fakeRestorer) IsBusy() bool {
	return f.busy.Load()
}

type fixedCount int

func (c fixedCount) Count() int {
	return int(c)
}

func startServer(t *testing.T, restorer daemon.Restorer) (string, <-chan error) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	root := t.TempDir()
	server := daemon.NewServer(root, daemon.NewLifecycle(time.Hour), restorer, fixedCount(3), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		done <- server.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-exited
	})

	require.Eventually(t, func() bool {
		_, err := os.Stat(daemon.PIDPath(root))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	return root, done
}

func dial(t *testing.T, root string) *daemon.Client {
	t.Helper()
	client, err := daemon.Dial(root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestServer_Nominate(t *testing.T) {
	restorer := &fakeRestorer{}
	root, _ := startServer(t, restorer)
	client := dial(t, root)

	n := nomination("/sln/App/App.csproj", "net8.0")
	n.RestoreInfo.TargetFrameworks[0].Items = map[string][]domain.ReferenceItem{
		"PackageReference": {{Name: "Newtonsoft.Json", Metadata: map[string]string{"Version": "13.0.1"}}},
	}

	ok, err := client.Nominate(context.Background(), n)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, n, restorer.nominated.Load(), "nominations survive the wire format")

	_, err = client.Nominate(context.Background(), domain.NominationData{ProjectUniqueName: "/sln/Bad.csproj"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidNomination.Error())
}

func TestServer_Restore(t *testing.T) {
	restorer := &fakeRestorer{}
	root, _ := startServer(t, restorer)
	client := dial(t, root)

	ok, err := client.Restore(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, restorer.force.Load())

	restorer.fail.Store(true)
	_, err = client.Restore(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrRestoreExecutionFailed.Error())
}

func TestServer_Status(t *testing.T) {
	restorer := &fakeRestorer{}
	restorer.busy.Store(true)
	root, _ := startServer(t, restorer)
	client := dial(t, root)

	st, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Running)
	assert.Equal(t, os.Getpid(), st.PID)
	assert.True(t, st.Busy)
	assert.Equal(t, 3, st.Projects)
	assert.LessOrEqual(t, st.IdleRemaining, time.Hour)
	assert.Positive(t, st.IdleRemaining)
}

func TestServer_Shutdown(t *testing.T) {
	root, done := startServer(t, &fakeRestorer{})
	client := dial(t, root)

	require.NoError(t, client.Shutdown(context.Background()))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	_, err := os.Stat(daemon.SocketPath(root))
	assert.True(t, os.IsNotExist(err), "socket is removed on exit")
	_, err = os.Stat(daemon.PIDPath(root))
	assert.True(t, os.IsNotExist(err), "pid file is removed on exit")
}

func TestClient_Unavailable(t *testing.T) {
	client := dial(t, t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := client.Status(ctx)
	require.Error(t, err)
}
