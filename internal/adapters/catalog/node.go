package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.hermetik.dev/hermetik/internal/adapters/envcfg"
	"go.hermetik.dev/hermetik/internal/adapters/logger"
	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.hermetik.dev/hermetik/internal/core/ports"
)

// NodeID is the unique identifier for the catalog Graft node.
const NodeID graft.ID = "adapter.catalog"

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, envcfg.NodeID},
		Run: func(ctx context.Context) (ports.Registry, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			env, err := graft.Dep[domain.EnvironmentConfig](ctx)
			if err != nil {
				return nil, err
			}
			return Load(log, env.CatalogDir)
		},
	})
}
