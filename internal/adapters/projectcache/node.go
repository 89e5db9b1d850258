package projectcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/restore/internal/adapters/config"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
)

// NodeID is the unique identifier for the project cache Graft node.
const NodeID graft.ID = "adapter.projectcache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.WorkspaceNodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (*Cache, error) {
			ws, err := graft.Dep[*domain.Workspace](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[ports.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(ws, settings), nil
		},
	})
}
