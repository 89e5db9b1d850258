package events

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/restore/internal/adapters/logger"
	"go.trai.ch/restore/internal/core/ports"
)

// NodeID is the unique identifier for the restore event bus Graft node.
const NodeID graft.ID = "engine.events"

func init() {
	graft.Register(graft.Node[*Bus]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Bus, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBus(log), nil
		},
	})
}
