package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/restore/internal/adapters/config"       //nolint:depguard // Wired in app layer
	"go.trai.ch/restore/internal/adapters/daemon"       //nolint:depguard // Wired in app layer
	"go.trai.ch/restore/internal/adapters/diagnostics"  //nolint:depguard // Wired in app layer
	"go.trai.ch/restore/internal/adapters/filetimes"    //nolint:depguard // Wired in app layer
	"go.trai.ch/restore/internal/adapters/logger"       //nolint:depguard // Wired in app layer
	"go.trai.ch/restore/internal/adapters/metrics"      //nolint:depguard // Wired in app layer
	"go.trai.ch/restore/internal/adapters/projectcache" //nolint:depguard // Wired in app layer
	"go.trai.ch/restore/internal/adapters/telemetry"    //nolint:depguard // Wired in app layer
	"go.trai.ch/restore/internal/adapters/watcher"      //nolint:depguard // Wired in app layer
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/restore/internal/engine/events"
	"go.trai.ch/restore/internal/engine/service"
	"go.trai.ch/restore/internal/engine/worker"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
	// RuntimeNodeID is the unique identifier for the workspace runtime Graft node.
	RuntimeNodeID graft.ID = "app.runtime"
)

// Components contains the initialized application components used by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node. It does not depend on the workspace, which is only loaded when a
	// command needs it.
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			daemon.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			connector, err := graft.Dep[ports.DaemonConnector](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, connector, log, executeRuntime), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})

	// Runtime Node
	graft.Register(graft.Node[*Runtime]{
		ID:        RuntimeNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.WorkspaceNodeID,
			service.NodeID,
			projectcache.NodeID,
			worker.NodeID,
			diagnostics.NodeID,
			events.NodeID,
			metrics.RegistryNodeID,
			watcher.TriggerNodeID,
			filetimes.NodeID,
			telemetry.NodeID,
		},
		Run: runRuntimeNode,
	})
}

func executeRuntime(ctx context.Context) (*Runtime, error) {
	rt, _, err := graft.ExecuteFor[*Runtime](ctx)
	return rt, err
}

func runRuntimeNode(ctx context.Context) (*Runtime, error) {
	ws, err := graft.Dep[*domain.Workspace](ctx)
	if err != nil {
		return nil, err
	}

	svc, err := graft.Dep[*service.Service](ctx)
	if err != nil {
		return nil, err
	}

	solution, err := graft.Dep[*projectcache.Cache](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[*worker.Worker](ctx)
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

	registry, err := graft.Dep[*metrics.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	trigger, err := graft.Dep[*watcher.Trigger](ctx)
	if err != nil {
		return nil, err
	}

	times, err := graft.Dep[ports.FileTimes](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Workspace:   ws,
		Service:     svc,
		Solution:    solution,
		Worker:      w,
		Diagnostics: errorList,
		Events:      bus,
		Metrics:     registry,
		Trigger:     trigger,
		Times:       times,
		Tracer:      tracer,
	}, nil
}
