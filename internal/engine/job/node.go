package job

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/juju/clock"
	"go.trai.ch/restore/internal/adapters/config"
	"go.trai.ch/restore/internal/adapters/diagnostics"
	"go.trai.ch/restore/internal/adapters/feed"
	"go.trai.ch/restore/internal/adapters/lock"
	"go.trai.ch/restore/internal/adapters/logger"
	"go.trai.ch/restore/internal/adapters/metrics"
	"go.trai.ch/restore/internal/adapters/projectcache"
	"go.trai.ch/restore/internal/adapters/telemetry"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/restore/internal/engine/events"
)

// NodeID is the unique identifier for the restore job Graft node.
const NodeID graft.ID = "engine.job"

func init() {
	graft.Register(graft.Node[ports.RestoreJob]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			projectcache.NodeID,
			feed.NodeID,
			feed.PackagesConfigNodeID,
			config.SettingsNodeID,
			lock.NodeID,
			diagnostics.NodeID,
			events.NodeID,
			telemetry.NodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.RestoreJob, error) {
			solution, err := graft.Dep[*projectcache.Cache](ctx)
			if err != nil {
				return nil, err
			}
			engine, err := graft.Dep[ports.RestoreEngine](ctx)
			if err != nil {
				return nil, err
			}
			packagesConfig, err := graft.Dep[ports.PackagesConfigRestorer](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[ports.Settings](ctx)
			if err != nil {
				return nil, err
			}
			lockSvc, err := graft.Dep[ports.LockService](ctx)
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
			tracer, err := graft.Dep[ports.Tracer](ctx)
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
			return New(
				solution, engine, packagesConfig, settings, lockSvc,
				errorList, bus, tracer, m, log, clock.WallClock,
			), nil
		},
	})
}
