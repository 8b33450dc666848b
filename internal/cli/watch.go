package cli

import (
	"fmt"
	"time"

	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/lint"
	"github.com/ariel-frischer/changelint/internal/log"
	"github.com/ariel-frischer/changelint/internal/watch"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newWatchCmd(g *globalOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-lint changelogs whenever they change",
		Long: `Lint every changelog in the directory, then watch it and re-lint files as
they are saved. Runs until interrupted (Ctrl+C).`,
		Example: `  changelint watch
  changelint watch docs/changes --debounce 500ms`,
		GroupID: GroupChangelog,
		Args:    argsWith(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := firstArg(args)
			if dir == "" {
				dir = g.changelogDir()
			}
			if !isDir(dir) {
				return clierrors.ChangelogNotFound(dir)
			}

			out := cmd.OutOrStdout()
			w := &watch.Watcher{
				Dir: dir,
				Runner: &lint.Runner{
					Options:     lintRuleOptions(g.cfg),
					Concurrency: g.cfg.Concurrency,
					Logf:        log.Printf("lint"),
				},
				Debounce: debounce,
				OnReport: func(r *lint.Report) {
					dim := color.New(color.Faint).SprintFunc()
					fmt.Fprintln(out, dim(time.Now().Format(time.TimeOnly)))
					writeReport(out, r, color.NoColor)
				},
				Logger: log.WithComponent("watch"),
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", dir)
			if err := w.Run(cmd.Context()); err != nil {
				return clierrors.Wrap(err, clierrors.Runtime)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-linting")
	return cmd
}
