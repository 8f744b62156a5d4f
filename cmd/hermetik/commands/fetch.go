package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [artifact[@version]...]",
		Short: "Download artifacts into the verified local cache",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			platform, _ := cmd.Flags().GetString("platform")
			reqs, err := parseRequests(args, platform)
			if err != nil {
				return err
			}

			results, _, err := c.app.Fetch(cmd.Context(), reqs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, res := range results {
				if res.Path == "" {
					_, _ = fmt.Fprintf(out, "%s@%s %s requires a source build\n",
						res.Artifact, res.Version, res.Platform)
					continue
				}
				_, _ = fmt.Fprintf(out, "%s@%s %s %s\n",
					res.Artifact, res.Version, res.Platform, res.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringP("platform", "p", "", "Target platform key (defaults to the host)")
	return cmd
}
