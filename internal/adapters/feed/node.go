package feed

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"github.com/juju/clock"
	"go.trai.ch/restore/internal/adapters/config"
	"go.trai.ch/restore/internal/adapters/logger"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the restore engine Graft node.
	NodeID graft.ID = "adapter.feed"
	// PackagesConfigNodeID is the unique identifier for the packages.config restorer Graft node.
	PackagesConfigNodeID graft.ID = "adapter.feed.packagesconfig"
)

func init() {
	graft.Register(graft.Node[ports.RestoreEngine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.RestoreEngine, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log, clock.WallClock), nil
		},
	})

	graft.Register(graft.Node[ports.PackagesConfigRestorer]{
		ID:        PackagesConfigNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.WorkspaceNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.PackagesConfigRestorer, error) {
			ws, err := graft.Dep[*domain.Workspace](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			feeds := make([]string, 0, len(ws.Settings.Feeds))
			for _, f := range ws.Settings.Feeds {
				if !filepath.IsAbs(f) && !isRemote(f) {
					f = filepath.Join(ws.Root, f)
				}
				feeds = append(feeds, f)
			}
			return NewPackagesConfig(feeds, log, clock.WallClock), nil
		},
	})
}
