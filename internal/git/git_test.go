package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository in a temp dir with one committed changelog.
func initRepo(t *testing.T) (string, *git.Worktree) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "changelog"), 0o755))
	path := filepath.Join(dir, "changelog", "core.md")
	require.NoError(t, os.WriteFile(path, []byte("# Core Changelog\n\n## Unreleased\n"), 0o644))

	_, err = wt.Add("changelog/core.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, wt
}

func TestRepositoryRoot(t *testing.T) {
	dir, _ := initRepo(t)

	root, err := RepositoryRoot(filepath.Join(dir, "changelog"))
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepositoryRoot_NotRepository(t *testing.T) {
	_, err := RepositoryRoot(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestIsDirty(t *testing.T) {
	tests := map[string]struct {
		setup func(t *testing.T, dir string, wt *git.Worktree) string
		want  bool
	}{
		"committed file is clean": {
			setup: func(t *testing.T, dir string, _ *git.Worktree) string {
				return filepath.Join(dir, "changelog", "core.md")
			},
			want: false,
		},
		"modified file is dirty": {
			setup: func(t *testing.T, dir string, _ *git.Worktree) string {
				path := filepath.Join(dir, "changelog", "core.md")
				require.NoError(t, os.WriteFile(path, []byte("# Core Changelog\n\n## Unreleased\n\n### Added\n\n- x\n"), 0o644))
				return path
			},
			want: true,
		},
		"staged file is dirty": {
			setup: func(t *testing.T, dir string, wt *git.Worktree) string {
				path := filepath.Join(dir, "changelog", "core.md")
				require.NoError(t, os.WriteFile(path, []byte("# Core\n"), 0o644))
				_, err := wt.Add("changelog/core.md")
				require.NoError(t, err)
				return path
			},
			want: true,
		},
		"untracked file is dirty": {
			setup: func(t *testing.T, dir string, _ *git.Worktree) string {
				path := filepath.Join(dir, "changelog", "new.md")
				require.NoError(t, os.WriteFile(path, []byte("# New\n"), 0o644))
				return path
			},
			want: true,
		},
		"other file modified leaves target clean": {
			setup: func(t *testing.T, dir string, _ *git.Worktree) string {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi\n"), 0o644))
				return filepath.Join(dir, "changelog", "core.md")
			},
			want: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir, wt := initRepo(t)
			path := tt.setup(t, dir, wt)

			dirty, err := IsDirty(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dirty)
		})
	}
}

func TestIsDirty_NotRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "core.md")
	require.NoError(t, os.WriteFile(path, []byte("# Core\n"), 0o644))

	_, err := IsDirty(path)
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestSetDebugLogger(t *testing.T) {
	var lines []string
	SetDebugLogger(func(format string, args ...any) {
		lines = append(lines, format)
	})
	t.Cleanup(func() { SetDebugLogger(nil) })

	dir, _ := initRepo(t)
	_, err := RepositoryRoot(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, lines)
}
