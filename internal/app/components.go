package app

import "go.hermetik.dev/hermetik/internal/core/ports"

// Components bundles the application with the shared services the CLI needs
// after the dependency graph is built.
type Components struct {
	App    *App
	Logger ports.Logger
}
