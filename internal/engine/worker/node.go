package worker

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/juju/clock"
	"go.trai.ch/restore/internal/adapters/diagnostics"
	"go.trai.ch/restore/internal/adapters/lock"
	"go.trai.ch/restore/internal/adapters/logger"
	"go.trai.ch/restore/internal/adapters/metrics"
	"go.trai.ch/restore/internal/adapters/projectcache"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/restore/internal/engine/events"
	"go.trai.ch/restore/internal/engine/job"
	"go.trai.ch/restore/internal/engine/uptodate"
)

// NodeID is the unique identifier for the restore worker Graft node.
const NodeID graft.ID = "engine.worker"

func init() {
	graft.Register(graft.Node[*Worker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			projectcache.NodeID,
			lock.NodeID,
			job.NodeID,
			uptodate.NodeID,
			diagnostics.NodeID,
			events.NodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Worker, error) {
			cache, err := graft.Dep[*projectcache.Cache](ctx)
			if err != nil {
				return nil, err
			}
			lockSvc, err := graft.Dep[ports.LockService](ctx)
			if err != nil {
				return nil, err
			}
			restoreJob, err := graft.Dep[ports.RestoreJob](ctx)
			if err != nil {
				return nil, err
			}
			newChecker, err := graft.Dep[ports.CheckerFactory](ctx)
			if err != nil {
				return nil, err
			}
			errorList, err := graft.Dep[ports.ErrorList](ctx)
			if err != nil {
				return nil, err
			}
			bus, err := graft.Dep[*events.Bus](ctx)
			if err != nil {
				return nil, err
			}
			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cache, lockSvc, restoreJob, newChecker, errorList, bus, m, log, clock.WallClock), nil
		},
	})
}
