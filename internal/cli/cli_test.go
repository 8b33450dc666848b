package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleChangelog is the canonical sample, read once before tests chdir away.
var sampleChangelog = func() []byte {
	data, err := os.ReadFile(filepath.Join("testdata", "infrastructure.md"))
	if err != nil {
		panic(err)
	}
	return data
}()

const samplePath = "changelog/infrastructure.md"

// workspace runs the test from a temp dir holding changelog/infrastructure.md,
// with user config and environment isolated.
func workspace(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{"CHANGELINT_DIR", "CHANGELINT_STRICT", "CHANGELINT_REQUIRE_COMPONENT", "CHANGELINT_COMPONENTS", "CHANGELINT_REMOTE_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("changelog", 0o755))
	require.NoError(t, os.WriteFile(samplePath, sampleChangelog, 0o644))
	return dir
}

// runCLI executes a fresh command tree and returns stdout, stderr and the
// process exit code.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	code := execute(context.Background(), cmd)
	return stdout.String(), stderr.String(), code
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
