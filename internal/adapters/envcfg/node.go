package envcfg

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.hermetik.dev/hermetik/internal/core/domain"
)

// NodeID is the unique identifier for the environment config Graft node.
const NodeID graft.ID = "adapter.envcfg"

func init() {
	graft.Register(graft.Node[domain.EnvironmentConfig]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (domain.EnvironmentConfig, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return domain.EnvironmentConfig{}, err
			}
			return Load(cwd, os.LookupEnv)
		},
	})
}
