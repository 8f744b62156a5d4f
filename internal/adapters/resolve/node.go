package resolve

import (
	"context"

	"github.com/grindlemire/graft"
	"go.hermetik.dev/hermetik/internal/adapters/catalog"
	"go.hermetik.dev/hermetik/internal/core/ports"
)

// NodeID is the unique identifier for the source resolver Graft node.
const NodeID graft.ID = "adapter.resolver"

func init() {
	graft.Register(graft.Node[ports.SourceResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{catalog.NodeID},
		Run: func(ctx context.Context) (ports.SourceResolver, error) {
			registry, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(registry), nil
		},
	})
}
