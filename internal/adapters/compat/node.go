package compat

import (
	"context"

	"github.com/grindlemire/graft"
	"go.hermetik.dev/hermetik/internal/adapters/envcfg"
	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.hermetik.dev/hermetik/internal/core/ports"
)

// NodeID is the unique identifier for the compatibility validator Graft node.
const NodeID graft.ID = "adapter.compat"

func init() {
	graft.Register(graft.Node[ports.CompatibilityValidator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{envcfg.NodeID},
		Run: func(ctx context.Context) (ports.CompatibilityValidator, error) {
			env, err := graft.Dep[domain.EnvironmentConfig](ctx)
			if err != nil {
				return nil, err
			}
			return Load(env.CatalogDir)
		},
	})
}
