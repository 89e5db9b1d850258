package diagnostics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/restore/internal/core/ports"
)

// NodeID is the unique identifier for the error list Graft node.
const NodeID graft.ID = "adapter.diagnostics"

func init() {
	graft.Register(graft.Node[ports.ErrorList]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ErrorList, error) {
			return New(), nil
		},
	})
}
