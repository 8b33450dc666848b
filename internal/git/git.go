// Package git provides the repository queries changelint needs: locating the
// repository root so the changelog directory resolves from any subdirectory,
// and detecting uncommitted edits to a changelog before a release is cut.
// All operations use the go-git library; no git binary is required.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when a path is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the git repository containing path.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// RepositoryRoot returns the top-level worktree directory of the repository
// containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// IsDirty reports whether the file at path differs from HEAD, either staged
// or in the worktree. Untracked files count as dirty.
// Returns an error wrapping ErrNotRepository when path is outside a repository.
func IsDirty(path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", path, err)
	}

	repo, err := openRepo(filepath.Dir(abs))
	if err != nil {
		return false, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	rel, err := relativeToRoot(worktree.Filesystem.Root(), abs)
	if err != nil {
		return false, err
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("getting worktree status: %w", err)
	}

	fs, ok := status[rel]
	if !ok {
		logDebug("[git] IsDirty(%s): clean", rel)
		return false, nil
	}
	dirty := fs.Staging != git.Unmodified || fs.Worktree != git.Unmodified
	logDebug("[git] IsDirty(%s): staging=%c worktree=%c", rel, fs.Staging, fs.Worktree)
	return dirty, nil
}

// relativeToRoot returns target relative to root in the slash-separated form
// go-git uses for status keys. Both paths have symlinks resolved so temp
// directories behind symlinked prefixes still compare equal.
func relativeToRoot(root, target string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	dir, base := filepath.Split(target)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		target = filepath.Join(resolved, base)
	}

	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", fmt.Errorf("locating %s in repository: %w", target, err)
	}
	return filepath.ToSlash(rel), nil
}
