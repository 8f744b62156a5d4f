package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newCompatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compat <artifact>=<version>...",
		Short: "Check an artifact selection against the compatibility matrix",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection := make(map[string]string, len(args))
			for _, arg := range args {
				name, version, ok := strings.Cut(arg, "=")
				if !ok || name == "" || version == "" {
					err := zerr.New("selection must be of the form artifact=version")
					return zerr.With(err, "argument", arg)
				}
				selection[name] = version
			}

			out := cmd.OutOrStdout()
			warnings := c.app.Validate(cmd.Context(), selection)
			if len(warnings) == 0 {
				_, _ = fmt.Fprintln(out, "all selected versions are tested together")
				return nil
			}
			for _, w := range warnings {
				_, _ = fmt.Fprintf(out, "%s %s is untested with %s %s (tested: %s)\n",
					w.Artifact, w.Version, w.BaseName, w.BaseVersion,
					strings.Join(w.Recommended, ", "))
			}
			return nil
		},
	}
}
