package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatch_MissingDir(t *testing.T) {
	workspace(t)

	_, stderr, code := runCLI(t, "watch", "nope")
	assert.Equal(t, ExitMissingDependencies, code)
	assert.Contains(t, stderr, "nope")
}

func TestWatch_InitialLintUntilCancelled(t *testing.T) {
	workspace(t)

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--no-color", "watch", "--debounce", "10ms"})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	code := execute(ctx, cmd)
	assert.Equal(t, ExitSuccess, code, stderr.String())
	assert.Contains(t, stderr.String(), "Watching changelog")
	assert.Contains(t, stdout.String(), "1 file(s) checked: 0 error(s), 2 warning(s)")
}
