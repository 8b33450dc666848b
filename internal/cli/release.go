package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/ariel-frischer/changelint/internal/changelog"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/git"
	"github.com/ariel-frischer/changelint/internal/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type releaseOptions struct {
	file  string
	force bool
}

// now is replaced in tests.
var now = time.Now

func newReleaseCmd(g *globalOptions) *cobra.Command {
	opts := &releaseOptions{}

	cmd := &cobra.Command{
		Use:   "release [date]",
		Short: "Move Unreleased entries under a new dated release",
		Long: `Cut a release: the Unreleased entries move under "## Release <date>"
and Unreleased is left with its kind headings and no entries.

The date defaults to today and must be newer than the latest release.
Inside a git repository the changelog must have no uncommitted changes
unless --force is given.`,
		Example: `  changelint release                 # Release as of today
  changelint release 2021-01-12      # Explicit date
  changelint release --force         # Skip the uncommitted-changes check`,
		GroupID: GroupChangelog,
		Args:    argsWith(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := now().Format(changelog.DateLayout)
			if len(args) == 1 {
				date = args[0]
			}
			return runRelease(cmd, g, opts, date)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Changelog file (default: the only .md file in the changelog dir)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Release even if the changelog has uncommitted changes")

	return cmd
}

func runRelease(cmd *cobra.Command, g *globalOptions, opts *releaseOptions, date string) error {
	if _, err := changelog.ParseDate(date); err != nil {
		return clierrors.InvalidReleaseDate(date)
	}

	path, err := g.resolveFile(opts.file)
	if err != nil {
		return err
	}

	l := log.WithComponent("release")
	if !opts.force {
		dirty, err := git.IsDirty(path)
		switch {
		case errors.Is(err, git.ErrNotRepository):
			l.Debug().Str("path", path).Msg("not in a git repository, skipping dirty check")
		case err != nil:
			return clierrors.WrapWithMessage(err, clierrors.Prerequisite, "checking git status",
				"Pass --force to skip the check")
		case dirty:
			return clierrors.UncommittedChanges(path)
		}
	}

	c, err := loadChangelog(path)
	if err != nil {
		return err
	}

	r, err := c.Cut(date)
	if err != nil {
		return releaseError(path, err)
	}

	if err := changelog.Save(path, c); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	l.Info().Str("path", path).Str("release", r.Name).Int("entries", r.Count()).Msg("release cut")

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Released %d entries as %s in %s\n",
		green("✓"), r.Count(), changelog.ReleaseHeading(*r), path)
	return nil
}

func releaseError(path string, err error) error {
	switch {
	case errors.Is(err, changelog.ErrNothingToRelease):
		return clierrors.NothingToRelease(path)
	case errors.Is(err, changelog.ErrInvalidDate):
		return clierrors.NewArgumentError(err.Error())
	case errors.Is(err, changelog.ErrReleaseExists), errors.Is(err, changelog.ErrReleaseOrder):
		return clierrors.NewArgumentError(err.Error(),
			"Pick a date newer than the latest release",
			"See existing releases with: changelint show --last 0 --file "+path)
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}
