package lock

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/juju/clock"
	"go.trai.ch/restore/internal/adapters/config"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
)

// NodeID is the unique identifier for the restore lock Graft node.
const NodeID graft.ID = "adapter.lock"

func init() {
	graft.Register(graft.Node[ports.LockService]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.WorkspaceNodeID},
		Run: func(ctx context.Context) (ports.LockService, error) {
			ws, err := graft.Dep[*domain.Workspace](ctx)
			if err != nil {
				return nil, err
			}
			return New(clock.WallClock, ws.Settings.MachineLock, ws.PackagesFolder()), nil
		},
	})
}
