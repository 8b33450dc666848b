package changelog

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_RoundTrip(t *testing.T) {
	c := loadSample(t)
	path := filepath.Join(t.TempDir(), "infrastructure.md")

	require.NoError(t, Save(path, c))

	want, err := os.ReadFile(samplePath)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestWriteFile_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.md")
	require.NoError(t, WriteFile(fresh, []byte("# Fresh\n")))
	info, err := os.Stat(fresh)
	require.NoError(t, err)
	// umask may clear group/other bits, never add them
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm()&0o700)
	assert.Zero(t, info.Mode().Perm()&^0o644)

	existing := filepath.Join(dir, "existing.md")
	require.NoError(t, os.WriteFile(existing, []byte("old\n"), 0o600))
	require.NoError(t, os.Chmod(existing, 0o600))
	require.NoError(t, WriteFile(existing, []byte("new\n")))

	info, err = os.Stat(existing)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}

func TestWriteFile_MissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "x.md"), []byte("x"))
	assert.Error(t, err)
}
