package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.hermetik.dev/hermetik/internal/adapters/envcfg"
	"go.hermetik.dev/hermetik/internal/adapters/logger"
	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.hermetik.dev/hermetik/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher Graft node.
const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{envcfg.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			env, err := graft.Dep[domain.EnvironmentConfig](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(NewHTTPTransport(), env, domain.DefaultCachePath(), log), nil
		},
	})
}
