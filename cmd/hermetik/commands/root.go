// Package commands implements the CLI commands for the hermetik resolver.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.hermetik.dev/hermetik/internal/adapters/platform"
	"go.hermetik.dev/hermetik/internal/app"
	"go.hermetik.dev/hermetik/internal/build"
	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for hermetik.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, reqs []app.Request) ([]app.Resolution, []domain.CompatWarning, error)
	Fetch(ctx context.Context, reqs []app.Request) ([]app.Fetched, []domain.CompatWarning, error)
	Verify(ctx context.Context, path, expected string) error
	Versions(ctx context.Context, artifact string) (app.VersionsInfo, error)
	Validate(ctx context.Context, selection map[string]string) []domain.CompatWarning
	Clean(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "hermetik",
		Short:         "Resolve, verify, and fetch pinned build artifacts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newFetchCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newVersionsCmd())
	rootCmd.AddCommand(c.newCompatCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// parseRequests turns "name" or "name@version" arguments into requests. The
// platform flag, when non-empty, is normalized and applied to every request,
// so vendor spellings like "macos_x86_64" select the canonical key.
func parseRequests(args []string, platformFlag string) ([]app.Request, error) {
	var key domain.PlatformKey
	if platformFlag != "" {
		parsed, err := platform.Parse(platformFlag)
		if err != nil {
			return nil, err
		}
		key = parsed
	}

	reqs := make([]app.Request, 0, len(args))
	for _, arg := range args {
		name, version, _ := strings.Cut(arg, "@")
		if name == "" {
			err := zerr.New("artifact name must not be empty")
			return nil, zerr.With(err, "argument", arg)
		}
		reqs = append(reqs, app.Request{
			Artifact: name,
			Version:  version,
			Platform: key,
		})
	}
	return reqs, nil
}
