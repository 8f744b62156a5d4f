// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.hermetik.dev/hermetik/internal/adapters/catalog"
	_ "go.hermetik.dev/hermetik/internal/adapters/compat"
	_ "go.hermetik.dev/hermetik/internal/adapters/envcfg"
	_ "go.hermetik.dev/hermetik/internal/adapters/fetch"
	_ "go.hermetik.dev/hermetik/internal/adapters/logger"
	_ "go.hermetik.dev/hermetik/internal/adapters/resolve"
	// Register app nodes.
	_ "go.hermetik.dev/hermetik/internal/app"
)
