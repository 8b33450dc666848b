package changelog

import (
	"bytes"
	"fmt"

	"github.com/google/renameio/v2"
)

// Save renders c and atomically replaces the file at path. A crash mid-write
// leaves either the old or the new content, never a truncated file.
// New files are created 0644; existing files keep their permissions.
func Save(path string, c *Changelog) error {
	var buf bytes.Buffer
	if err := Render(c, &buf); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	pending, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("creating pending file for %s: %w", path, err)
	}
	defer func() {
		_ = pending.Cleanup()
	}()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
