package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/ariel-frischer/changelint/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		arg  string
		want string
	}{
		"bare name":          {arg: "explorer", want: filepath.Join("changelog", "explorer.md")},
		"bare name with ext": {arg: "explorer.md", want: filepath.Join("changelog", "explorer.md")},
		"relative path":      {arg: "docs/api", want: "docs/api.md"},
		"explicit file":      {arg: "docs/api.md", want: "docs/api.md"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, initPath(tt.arg, "changelog"))
		})
	}
}

func TestTitleFromPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string
		want string
	}{
		"simple":     {path: "changelog/infrastructure.md", want: "Infrastructure Changelog"},
		"dashed":     {path: "fee-seller.md", want: "Fee Seller Changelog"},
		"underscore": {path: "tok_cli.md", want: "Tok Cli Changelog"},
		"changelog":  {path: "CHANGELOG.md", want: "Changelog"},
		"non-ascii":  {path: "änderungen.md", want: "Änderungen Changelog"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, titleFromPath(tt.path))
		})
	}
}

func TestInit(t *testing.T) {
	workspace(t)

	stdout, stderr, code := runCLI(t, "init", "explorer")
	require.Equal(t, ExitSuccess, code, stderr)
	path := filepath.Join("changelog", "explorer.md")
	assert.Contains(t, stdout, "Created "+path+" (Explorer Changelog)")

	c, err := changelog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Explorer Changelog", c.Title)
	require.NotNil(t, c.Unreleased())
	assert.True(t, c.Unreleased().IsEmpty())

	_, _, code = runCLI(t, "lint", path)
	assert.Equal(t, ExitSuccess, code, "a fresh changelog lints clean")

	_, stderr, code = runCLI(t, "init", "explorer")
	assert.Equal(t, ExitInvalidArguments, code)
	assert.Contains(t, stderr, "already exists")

	_, _, code = runCLI(t, "init", "explorer", "--force", "--title", "Block Explorer Changelog")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, readFile(t, path), "# Block Explorer Changelog\n")
}

func TestConfigShow(t *testing.T) {
	tests := map[string]struct {
		args     []string
		contains []string
	}{
		"yaml": {
			args:     []string{"config", "show"},
			contains: []string{"dir: changelog", "remote_timeout: 5s", "concurrency: 4"},
		},
		"json": {
			args:     []string{"config", "show", "--json"},
			contains: []string{`"dir": "changelog"`, `"strict": false`},
		},
		"dir flag overrides": {
			args:     []string{"--dir", "docs", "config", "show"},
			contains: []string{"dir: docs"},
		},
		"template": {
			args:     []string{"config", "show", "--template"},
			contains: []string{"# changelint configuration"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			workspace(t)
			stdout, stderr, code := runCLI(t, tt.args...)
			require.Equal(t, ExitSuccess, code, stderr)
			for _, s := range tt.contains {
				assert.Contains(t, stdout, s)
			}
		})
	}
}

func TestConfigInit(t *testing.T) {
	workspace(t)

	_, stderr, code := runCLI(t, "config", "init")
	require.Equal(t, ExitSuccess, code, stderr)
	_, err := os.Stat(config.ProjectConfigPath())
	require.NoError(t, err)

	_, _, code = runCLI(t, "config", "init")
	assert.Equal(t, ExitInvalidArguments, code)

	require.NoError(t, os.WriteFile(config.ProjectConfigPath(), []byte("strict: true\n"), 0o644))
	stdout, _, code := runCLI(t, "config", "show")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "strict: true")
}

func TestVersion(t *testing.T) {
	workspace(t)

	stdout, _, code := runCLI(t, "version", "--plain")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "changelint dev\n")
	assert.Contains(t, stdout, "commit: unknown\n")
	assert.Contains(t, stdout, "go: go")
}
