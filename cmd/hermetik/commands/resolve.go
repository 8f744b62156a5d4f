package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [artifact[@version]...]",
		Short: "Resolve artifacts to verified source locations without downloading",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			platform, _ := cmd.Flags().GetString("platform")
			reqs, err := parseRequests(args, platform)
			if err != nil {
				return err
			}

			results, _, err := c.app.Resolve(cmd.Context(), reqs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, res := range results {
				if res.Source.ExpectedDigest == "" && res.Source.SourceInfo != nil {
					_, _ = fmt.Fprintf(out, "%s@%s %s source %s (%s)\n",
						res.Artifact, res.Version, res.Platform,
						res.Source.SourceInfo.Ref, res.Source.SourceInfo.BuildCommand)
					continue
				}
				_, _ = fmt.Fprintf(out, "%s@%s %s %s %s sha256=%s\n",
					res.Artifact, res.Version, res.Platform,
					res.Source.Kind, res.Source.Location, res.Source.ExpectedDigest)
			}
			return nil
		},
	}
	cmd.Flags().StringP("platform", "p", "", "Target platform key (defaults to the host)")
	return cmd
}
