package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ariel-frischer/changelint/internal/changelog"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/lint"
	"github.com/ariel-frischer/changelint/internal/log"
	"github.com/spf13/cobra"
)

func newFmtCmd(g *globalOptions) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Rewrite changelogs in canonical format",
		Long: `Rewrite changelog files in canonical format: one blank line between
blocks, "- " list markers, backquoted component tags, continuation lines
joined, and a single trailing newline.

With --check, nothing is written; the command exits 1 and lists the files
that would change.`,
		Example: `  changelint fmt
  changelint fmt changelog/infrastructure.md
  changelint fmt --check       # CI: fail if any file is not canonical`,
		GroupID: GroupChangelog,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, g, args, check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Report files that are not canonical without rewriting them")
	return cmd
}

func runFmt(cmd *cobra.Command, g *globalOptions, args []string, check bool) error {
	paths, err := g.resolvePaths(args)
	if err != nil {
		return err
	}
	files, err := lint.ExpandPaths(paths)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Prerequisite)
	}

	l := log.WithComponent("fmt")
	out := cmd.OutOrStdout()
	var drift []string

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading changelog")
		}
		c, err := changelog.LoadBytes(data)
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Validation, "cannot format "+file,
				"Fix the parse error first; run 'changelint lint "+file+"' for details")
		}
		canonical, err := changelog.RenderString(c)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", file, err)
		}

		if bytes.Equal(data, []byte(canonical)) {
			l.Debug().Str("path", file).Msg("already canonical")
			continue
		}
		drift = append(drift, file)
		if check {
			fmt.Fprintf(out, "would reformat %s\n", file)
			continue
		}
		if err := changelog.WriteFile(file, []byte(canonical)); err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
		fmt.Fprintf(out, "formatted %s\n", file)
	}

	if check && len(drift) > 0 {
		return clierrors.FormatDrift(drift)
	}
	if len(drift) == 0 {
		fmt.Fprintf(out, "%d file(s) already formatted\n", len(files))
	}
	return nil
}
