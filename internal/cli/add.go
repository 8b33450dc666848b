package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ariel-frischer/changelint/internal/changelog"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type addOptions struct {
	file      string
	component string
}

func newAddCmd(g *globalOptions) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <kind> <text>",
		Short: "Add an entry to the Unreleased section",
		Long: `Add an entry under the given kind in the Unreleased section.

The Unreleased section and the kind heading are created when missing; new
kind headings are placed in canonical order (Added, Changed, Deprecated,
Removed, Fixed, Security). Kind matching is case-insensitive.

The file is rewritten atomically in canonical format.`,
		Example: `  changelint add fixed "Handle empty batches." --component fee-seller
  changelint add Added "New `+"`zk db reset`"+` command." --component zk -f changelog/infrastructure.md`,
		GroupID: GroupChangelog,
		Args:    argsWith(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, g, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Changelog file (default: the only .md file in the changelog dir)")
	cmd.Flags().StringVar(&opts.component, "component", "", "Component tag for the entry")

	return cmd
}

func runAdd(cmd *cobra.Command, g *globalOptions, opts *addOptions, kind, text string) error {
	component := strings.TrimSpace(opts.component)
	if component == "" && g.cfg.RequireComponent {
		return clierrors.NewArgumentErrorWithUsage("a component tag is required",
			cmd.UseLine(),
			"Pass --component <name>",
			"Or set require_component: false in .changelint.yml",
		)
	}
	if err := changelog.ValidateComponent(component); err != nil {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			"Component tags cannot contain parentheses, backticks or line breaks")
	}
	if component != "" && len(g.cfg.Components) > 0 {
		// Store the registry spelling so lint's exact match accepts it.
		known, ok := lookupFold(g.cfg.Components, component)
		if !ok {
			return clierrors.NewArgumentError(
				fmt.Sprintf("unknown component %q", component),
				"Known components: "+strings.Join(g.cfg.Components, ", "),
				"Add it to 'components' in .changelint.yml",
			)
		}
		component = known
	}

	path, err := g.resolveFile(opts.file)
	if err != nil {
		return err
	}
	c, err := loadChangelog(path)
	if err != nil {
		return err
	}

	entry, err := c.AddEntry(kind, component, text)
	if err != nil {
		if errors.Is(err, changelog.ErrEmptyEntry) || errors.Is(err, changelog.ErrInvalidComponent) {
			return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
		}
		return clierrors.Wrap(err, clierrors.Argument)
	}

	canonical := changelog.CanonicalKind(kind)
	if !containsFold(g.cfg.Kinds, canonical) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %q is not a configured change kind\n", canonical)
	}

	if err := changelog.Save(path, c); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	l := log.WithComponent("add")
	l.Info().Str("path", path).Str("kind", canonical).Str("component", component).Msg("entry added")

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Added to %s / %s: %s\n", green("✓"), changelog.UnreleasedName, canonical, entry.String())
	return nil
}

func containsFold(values []string, s string) bool {
	_, ok := lookupFold(values, s)
	return ok
}

// lookupFold returns the element of values equal to s under case folding.
func lookupFold(values []string, s string) (string, bool) {
	i := slices.IndexFunc(values, func(v string) bool {
		return strings.EqualFold(v, s)
	})
	if i < 0 {
		return "", false
	}
	return values[i], true
}
