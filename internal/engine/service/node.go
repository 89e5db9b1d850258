package service

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/restore/internal/adapters/config"
	"go.trai.ch/restore/internal/adapters/logger"
	"go.trai.ch/restore/internal/adapters/projectcache"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/restore/internal/engine/nomination"
	"go.trai.ch/restore/internal/engine/worker"
)

// NodeID is the unique identifier for the restore service Graft node.
const NodeID graft.ID = "engine.service"

func init() {
	graft.Register(graft.Node[*Service]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			nomination.NodeID,
			projectcache.NodeID,
			worker.NodeID,
			config.SettingsNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Service, error) {
			builder, err := graft.Dep[*nomination.Builder](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[*projectcache.Cache](ctx)
			if err != nil {
				return nil, err
			}
			w, err := graft.Dep[*worker.Worker](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[ports.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(builder, cache, cache, w, settings, log), nil
		},
	})
}
