package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/changelint/internal/changelog"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	format  string
	release string
}

func newExportCmd(g *globalOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export a changelog as YAML or JSON",
		Long: `Export the parsed changelog (title, preamble, releases, kinds and
entries with their component tags) as structured data for other tools.`,
		Example: `  changelint export changelog/infrastructure.md
  changelint export changelog/infrastructure.md --format json
  changelint export --release unreleased --format json`,
		GroupID: GroupChangelog,
		Args:    argsWith(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, g, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVar(&opts.release, "release", "", "Export only this release (unreleased or YYYY-MM-DD)")

	return cmd
}

func runExport(cmd *cobra.Command, g *globalOptions, opts *exportOptions, args []string) error {
	format, err := changelog.ParseExportFormat(opts.format)
	if err != nil {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	}

	path, err := g.resolveFile(firstArg(args))
	if err != nil {
		return err
	}
	c, err := loadChangelog(path)
	if err != nil {
		return err
	}

	var v any = c
	if opts.release != "" {
		r, err := c.Release(opts.release)
		if err != nil {
			var notFound *changelog.ReleaseNotFoundError
			if errors.As(err, &notFound) {
				return clierrors.ReleaseNotFound(opts.release, notFound.Available)
			}
			return err
		}
		v = r
	}

	if err := changelog.Export(v, format, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
