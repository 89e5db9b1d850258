package filetimes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/restore/internal/core/ports"
)

// NodeID is the unique identifier for the file times Graft node.
const NodeID graft.ID = "adapter.filetimes"

func init() {
	graft.Register(graft.Node[ports.FileTimes]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileTimes, error) {
			return New(), nil
		},
	})
}
