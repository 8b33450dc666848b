package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/changelint/internal/changelog"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/git"
	"github.com/ariel-frischer/changelint/internal/lint"
	"github.com/ariel-frischer/changelint/internal/log"
)

// changelogDir returns the configured changelog directory. A relative
// directory is looked up from the current directory first, then from the
// repository root, so commands work from any subdirectory of a repo.
func (g *globalOptions) changelogDir() string {
	dir := g.cfg.Dir
	if filepath.IsAbs(dir) || isDir(dir) {
		return dir
	}

	root, err := git.RepositoryRoot("")
	if err != nil {
		return dir
	}
	candidate := filepath.Join(root, dir)
	if isDir(candidate) {
		l := log.WithComponent("cli")
		l.Debug().Str("dir", candidate).Msg("resolved changelog dir from repository root")
		return candidate
	}
	return dir
}

// resolveFile picks the changelog a single-file command operates on. An
// explicit path wins; otherwise the configured directory must hold exactly
// one markdown file.
func (g *globalOptions) resolveFile(explicit string) (string, error) {
	if explicit != "" {
		if !isFile(explicit) {
			return "", clierrors.ChangelogNotFound(explicit)
		}
		return explicit, nil
	}

	dir := g.changelogDir()
	if !isDir(dir) {
		return "", clierrors.ChangelogNotFound(dir)
	}
	files, err := lint.ExpandPaths([]string{dir})
	if err != nil {
		return "", clierrors.Wrap(err, clierrors.Prerequisite)
	}

	switch len(files) {
	case 0:
		return "", clierrors.ChangelogNotFound(filepath.Join(dir, "*.md"))
	case 1:
		return files[0], nil
	default:
		return "", clierrors.NewArgumentError(
			"multiple changelogs in "+dir+"; choose one with --file",
			"Available: "+strings.Join(files, ", "),
		)
	}
}

// resolvePaths returns the paths a multi-file command operates on,
// defaulting to the configured directory.
func (g *globalOptions) resolvePaths(args []string) ([]string, error) {
	if len(args) > 0 {
		for _, p := range args {
			if _, err := os.Stat(p); err != nil {
				return nil, clierrors.ChangelogNotFound(p)
			}
		}
		return args, nil
	}

	dir := g.changelogDir()
	if !isDir(dir) {
		return nil, clierrors.ChangelogNotFound(dir)
	}
	return []string{dir}, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// notExist reports whether err is a missing-file error.
func notExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// loadChangelog loads path, mapping failures onto categorized CLI errors.
func loadChangelog(path string) (*changelog.Changelog, error) {
	c, err := changelog.Load(path)
	switch {
	case err == nil:
		return c, nil
	case notExist(err):
		return nil, clierrors.ChangelogNotFound(path)
	case changelog.IsParseError(err):
		return nil, clierrors.WrapWithMessage(err, clierrors.Validation, "invalid changelog",
			"Run 'changelint lint "+path+"' to see all issues")
	default:
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}
}
