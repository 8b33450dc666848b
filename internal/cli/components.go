package cli

import (
	"fmt"

	"github.com/ariel-frischer/changelint/internal/changelog"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/spf13/cobra"
)

func newComponentsCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "components [path]",
		Short: "List component tags with entry counts",
		Long: `List every component tag used in the changelog with the number of
entries that mention it, sorted by name. Untagged entries are counted
separately.`,
		Example: `  changelint components changelog/infrastructure.md
  changelint components --format json`,
		GroupID: GroupChangelog,
		Args:    argsWith(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.resolveFile(firstArg(args))
			if err != nil {
				return err
			}
			c, err := loadChangelog(path)
			if err != nil {
				return err
			}

			counts := c.Components()
			if format != "" && format != "text" {
				f, err := changelog.ParseExportFormat(format)
				if err != nil {
					return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
				}
				return changelog.Export(counts, f, cmd.OutOrStdout())
			}

			out := cmd.OutOrStdout()
			if len(counts) == 0 {
				fmt.Fprintln(out, "No component tags found.")
			}
			width := 0
			for _, cc := range counts {
				width = max(width, len(cc.Component))
			}
			for _, cc := range counts {
				fmt.Fprintf(out, "%-*s  %d\n", width, cc.Component, cc.Count)
			}

			if untagged := len(c.Filter(changelog.Query{Untagged: true})); untagged > 0 {
				fmt.Fprintf(out, "\n%d untagged entries\n", untagged)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, yaml or json")
	return cmd
}
