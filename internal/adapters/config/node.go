package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/restore/internal/adapters/logger"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config"
	// WorkspaceNodeID is the unique identifier for the loaded workspace Graft node.
	WorkspaceNodeID graft.ID = "adapter.config.workspace"
	// SettingsNodeID is the unique identifier for the live settings Graft node.
	SettingsNodeID graft.ID = "adapter.config.settings"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[*domain.Workspace]{
		ID:        WorkspaceNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.Workspace, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
			}
			return loader.Load(cwd)
		},
	})

	graft.Register(graft.Node[ports.Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WorkspaceNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Settings, error) {
			ws, err := graft.Dep[*domain.Workspace](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSettings(ws.ConfigPath, NewOSFS(), ws.Settings, log), nil
		},
	})
}
