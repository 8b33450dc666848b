package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/changelint/internal/changelog"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/lint"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type initOptions struct {
	title string
	force bool
}

func newInitCmd(g *globalOptions) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Create a new changelog from the built-in template",
		Long: `Create a changelog with a title, the component convention comment and
an Unreleased section with empty Added, Changed and Fixed headings.

A bare name is created inside the configured changelog directory. The title
defaults to the file name, e.g. "infrastructure.md" becomes
"Infrastructure Changelog".`,
		Example: `  changelint init infrastructure
  changelint init docs/api.md --title "API Changelog"`,
		GroupID: GroupChangelog,
		Args:    argsWith(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, g, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "Changelog title (default: derived from the file name)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing file")

	return cmd
}

func runInit(cmd *cobra.Command, g *globalOptions, opts *initOptions, arg string) error {
	path := initPath(arg, g.changelogDir())

	if _, err := os.Stat(path); err == nil && !opts.force {
		return clierrors.NewArgumentError(
			fmt.Sprintf("%s already exists", path),
			"Pass --force to overwrite it",
		)
	}

	title := opts.title
	if title == "" {
		title = titleFromPath(path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "creating directory")
	}
	c, err := changelog.LoadTemplate(title)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if err := changelog.Save(path, c); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s (%s)\n", green("✓"), path, title)
	return nil
}

// initPath resolves the init argument: a bare name goes into dir and gets
// a .md extension; anything with a directory component is used as given.
func initPath(arg, dir string) string {
	path := arg
	if !lint.IsChangelogFile(path) {
		path += ".md"
	}
	if filepath.Base(path) == path {
		path = filepath.Join(dir, path)
	}
	return path
}

// titleFromPath derives "Infrastructure Changelog" from ".../infrastructure.md".
func titleFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = changelog.Capitalize(w)
	}
	title := strings.Join(words, " ")
	if title == "" || strings.EqualFold(title, "changelog") {
		return "Changelog"
	}
	return title + " Changelog"
}
