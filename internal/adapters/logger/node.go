package logger

import (
	"context"
	"sync"

	"github.com/grindlemire/graft"
	"go.trai.ch/restore/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// shared is the process logger. Every graph execution gets the same instance, so
// output settings applied by the CLI hold for runtimes built later.
var shared = sync.OnceValue(New)

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return shared(), nil
		},
	})
}
