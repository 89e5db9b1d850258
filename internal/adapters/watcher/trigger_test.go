package watcher_test

import (
	"context"
	"iter"
	"slices"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/restore/internal/adapters/watcher"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/restore/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestIsRestoreInput(t *testing.T) {
	assert.True(t, watcher.IsRestoreInput("/sln/restore.yaml"))
	assert.True(t, watcher.IsRestoreInput("/sln/legacy/Packages.config"))
	assert.True(t, watcher.IsRestoreInput("/sln/src/App/App.nomination.yaml"))
	assert.False(t, watcher.IsRestoreInput("/sln/src/App/Program.cs"))
	assert.False(t, watcher.IsRestoreInput("/sln/src/App/nomination.yaml.swp"))
}

func TestTrigger_RunBatchesRestoreInputs(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		w := mocks.NewMockWatcher(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Debug(gomock.Any()).AnyTimes()

		events := []ports.WatchEvent{
			{Path: "/sln/src/App/App.nomination.yaml", Operation: ports.OpWrite},
			{Path: "/sln/src/App/Program.cs", Operation: ports.OpWrite},
			{Path: "/sln/restore.yaml", Operation: ports.OpWrite},
			{Path: "/sln/src/App/App.nomination.yaml", Operation: ports.OpWrite},
		}
		ctx := context.Background()
		w.EXPECT().Start(ctx, "/sln").Return(nil)
		w.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](slices.Values(events)))
		w.EXPECT().Stop().Return(nil)

		var got [][]string
		trigger := watcher.NewTrigger(w, time.Second, logger)
		require.NoError(t, trigger.Run(ctx, "/sln", func(paths []string) {
			got = append(got, paths)
		}))

		require.Len(t, got, 1, "pending changes are flushed when the stream ends")
		assert.Equal(t, []string{"/sln/restore.yaml", "/sln/src/App/App.nomination.yaml"}, got[0])
	})
}

func TestTrigger_StartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockWatcher(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	w.EXPECT().Start(gomock.Any(), "/sln").Return(assert.AnError)

	err := watcher.NewTrigger(w, time.Second, logger).Run(context.Background(), "/sln", func([]string) {})
	require.ErrorIs(t, err, assert.AnError)
}
