package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/changelint/internal/changelog"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type showOptions struct {
	file      string
	component string
	kind      string
	untagged  bool
	last      int
	plain     bool
	oneline   bool
	markdown  bool
}

func newShowCmd(g *globalOptions) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show [release]",
		Short: "Show changelog entries",
		Long: `Show changelog entries in the terminal.

With a release argument ("unreleased" or a YYYY-MM-DD date), shows every
entry of that release grouped by kind. Without one, shows the most recent
entries across all releases; --last controls how many.

Filters narrow the entries by kind or component tag. --oneline prints a
short summary per entry; --markdown prints a release's entries as
markdown release notes.`,
		Example: `  changelint show                           # 10 most recent entries
  changelint show unreleased                # Pending changes
  changelint show 2021-01-12                # One release
  changelint show --component zk --last 0   # Every entry tagged zk
  changelint show --untagged                # Entries missing a component tag
  changelint show --plain                   # No colors/icons
  changelint show --oneline --last 0        # One line per entry
  changelint show 2021-01-12 --markdown     # Release notes as markdown`,
		GroupID: GroupChangelog,
		Args:    argsWith(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, g, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Changelog file (default: the only .md file in the changelog dir)")
	cmd.Flags().StringVar(&opts.component, "component", "", "Only entries tagged with this component")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "", "Only entries of this kind (e.g. Fixed)")
	cmd.Flags().BoolVar(&opts.untagged, "untagged", false, "Only entries without a component tag")
	cmd.Flags().IntVarP(&opts.last, "last", "n", 10, "Number of entries to show (0 = all)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Plain text output (no colors/icons)")
	cmd.Flags().BoolVar(&opts.oneline, "oneline", false, "One truncated line per entry")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Print the release as markdown release notes")

	return cmd
}

func runShow(cmd *cobra.Command, g *globalOptions, opts *showOptions, args []string) error {
	if opts.markdown && opts.oneline {
		return clierrors.NewArgumentErrorWithUsage("--markdown and --oneline cannot be combined", cmd.UseLine())
	}
	if opts.markdown && len(args) == 0 {
		return clierrors.NewArgumentErrorWithUsage("--markdown needs a release",
			"changelint show <unreleased|YYYY-MM-DD> --markdown")
	}

	path, err := g.resolveFile(opts.file)
	if err != nil {
		return err
	}
	c, err := loadChangelog(path)
	if err != nil {
		return err
	}

	fopts := changelog.FormatOptions{Plain: opts.plain || g.cfg.Plain || color.NoColor}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		r, err := c.Release(args[0])
		if err != nil {
			var notFound *changelog.ReleaseNotFoundError
			if errors.As(err, &notFound) {
				return clierrors.ReleaseNotFound(args[0], notFound.Available)
			}
			return fmt.Errorf("getting release: %w", err)
		}
		if opts.markdown {
			if r.IsEmpty() {
				fmt.Fprintln(out, "No changelog entries found.")
				return nil
			}
			return changelog.RenderRelease(r, out)
		}
		if opts.kind == "" && opts.component == "" && !opts.untagged && !opts.oneline {
			return changelog.FormatRelease(r, out, fopts)
		}
	}

	q := changelog.Query{
		Kind:      opts.kind,
		Component: opts.component,
		Untagged:  opts.untagged,
	}
	if len(args) == 1 {
		q.Release = args[0]
	} else {
		q.Last = opts.last
	}

	items := c.Filter(q)
	if len(items) == 0 {
		fmt.Fprintln(out, "No changelog entries found.")
		return nil
	}
	if opts.oneline {
		for _, it := range items {
			fmt.Fprintln(out, changelog.FormatItemSummary(it, fopts))
		}
	} else if err := changelog.FormatItems(items, out, fopts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	if q.Last > 0 {
		total := len(c.Filter(changelog.Query{Kind: q.Kind, Component: q.Component, Untagged: q.Untagged}))
		if total > len(items) {
			fmt.Fprintf(out, "\n(%d of %d entries shown. Use --last 0 to see all)\n", len(items), total)
		}
	}
	return nil
}
