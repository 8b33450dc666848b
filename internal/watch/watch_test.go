package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ariel-frischer/changelint/internal/lint"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const validChangelog = "# Core Changelog\n\n## Unreleased\n\n### Added\n\n- (`core`): Initial entry.\n"

func startWatcher(t *testing.T, dir string) (<-chan *lint.Report, context.CancelFunc, <-chan error) {
	t.Helper()
	reports := make(chan *lint.Report, 16)
	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		Dir:      dir,
		Runner:   &lint.Runner{Options: lint.Options{Kinds: []string{"Added", "Fixed"}}},
		Debounce: 20 * time.Millisecond,
		OnReport: func(r *lint.Report) { reports <- r },
		Logger:   zerolog.Nop(),
	}

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(cancel)
	return reports, cancel, done
}

func nextReport(t *testing.T, reports <-chan *lint.Report) *lint.Report {
	t.Helper()
	select {
	case r := <-reports:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for lint report")
		return nil
	}
}

func hasRule(r *lint.Report, rule string) bool {
	for _, i := range r.Issues {
		if i.Rule == rule {
			return true
		}
	}
	return false
}

func TestWatcher_InitialAndChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "core.md")
	require.NoError(t, os.WriteFile(path, []byte(validChangelog), 0o644))

	reports, cancel, done := startWatcher(t, dir)

	initial := nextReport(t, reports)
	assert.Equal(t, []string{path}, initial.Files)
	assert.Empty(t, initial.Issues)

	require.NoError(t, os.WriteFile(path, []byte("# Core Changelog\n\n## Release 2021-13-01\n"), 0o644))

	// A save may surface as several events; wait for the report that sees
	// the final content.
	deadline := time.After(5 * time.Second)
	for found := false; !found; {
		select {
		case r := <-reports:
			assert.Equal(t, []string{path}, r.Files)
			found = hasRule(r, lint.RuleInvalidDate)
		case <-deadline:
			t.Fatal("no report flagged the invalid date")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	w := &Watcher{
		Dir:      filepath.Join(t.TempDir(), "missing"),
		Runner:   &lint.Runner{},
		OnReport: func(*lint.Report) {},
	}
	assert.Error(t, w.Run(context.Background()))
}

func TestWatcher_RequiresOnReport(t *testing.T) {
	w := &Watcher{Dir: t.TempDir(), Runner: &lint.Runner{}}
	assert.Error(t, w.Run(context.Background()))
}

func TestRelevant(t *testing.T) {
	tests := map[string]struct {
		event fsnotify.Event
		want  bool
	}{
		"write md":   {event: fsnotify.Event{Name: "a.md", Op: fsnotify.Write}, want: true},
		"create md":  {event: fsnotify.Event{Name: "a.MD", Op: fsnotify.Create}, want: true},
		"chmod md":   {event: fsnotify.Event{Name: "a.md", Op: fsnotify.Chmod}, want: false},
		"write swap": {event: fsnotify.Event{Name: "a.md.swp", Op: fsnotify.Write}, want: false},
		"remove md":  {event: fsnotify.Event{Name: "a.md", Op: fsnotify.Remove}, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event))
		})
	}
}

func TestExisting_DropsRemoved(t *testing.T) {
	dir := t.TempDir()
	kept := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(kept, []byte(validChangelog), 0o644))

	got := existing(map[string]bool{
		kept:                          true,
		filepath.Join(dir, "gone.md"): true,
		dir:                           true,
	})
	assert.Equal(t, []string{kept}, got)
}
