package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/restore/internal/adapters/logger"
	"go.trai.ch/restore/internal/core/ports"
)

const (
	// WatcherNodeID is the unique identifier for the file watcher Graft node.
	WatcherNodeID graft.ID = "adapter.watcher"
	// TriggerNodeID is the unique identifier for the restore trigger Graft node.
	TriggerNodeID graft.ID = "adapter.watcher.trigger"
)

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        WatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(log)
		},
	})

	graft.Register(graft.Node[*Trigger]{
		ID:        TriggerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WatcherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Trigger, error) {
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewTrigger(w, DefaultDebounceWindow, log), nil
		},
	})
}
