package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions <artifact>",
		Short: "List the published versions and platforms for an artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := c.app.Versions(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, version := range info.Versions {
				keys := info.Platforms[version]
				names := make([]string, 0, len(keys))
				for _, k := range keys {
					names = append(names, string(k))
				}
				marker := ""
				if version == info.Latest {
					marker = " (latest)"
				}
				_, _ = fmt.Fprintf(out, "%s %s%s [%s]\n",
					info.Artifact, version, marker, strings.Join(names, ", "))
			}
			return nil
		},
	}
}
