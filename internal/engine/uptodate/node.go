package uptodate

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/restore/internal/adapters/filetimes"
	"go.trai.ch/restore/internal/adapters/logger"
	"go.trai.ch/restore/internal/core/ports"
)

// NodeID is the unique identifier for the up-to-date checker factory Graft node.
const NodeID graft.ID = "engine.uptodate"

func init() {
	graft.Register(graft.Node[ports.CheckerFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, filetimes.NodeID},
		Run: func(ctx context.Context) (ports.CheckerFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			times, err := graft.Dep[ports.FileTimes](ctx)
			if err != nil {
				return nil, err
			}
			return func() ports.UpToDateChecker {
				return NewChecker(log, times)
			}, nil
		},
	})
}
