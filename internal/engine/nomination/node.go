package nomination

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the nomination builder Graft node.
const NodeID graft.ID = "engine.nomination"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Builder, error) {
			return NewBuilder(), nil
		},
	})
}
