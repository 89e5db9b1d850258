package metrics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/restore/internal/core/ports"
)

// NodeID is the unique identifier for the metrics Graft node.
const NodeID graft.ID = "adapter.metrics"

// RegistryNodeID is the unique identifier for the Graft node exposing the concrete
// metrics used to serve the /metrics endpoint.
const RegistryNodeID graft.ID = "adapter.metrics.registry"

func init() {
	graft.Register(graft.Node[*Metrics]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Metrics, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.Metrics]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RegistryNodeID},
		Run: func(ctx context.Context) (ports.Metrics, error) {
			m, err := graft.Dep[*Metrics](ctx)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
	})
}
