// Package watch re-lints changelog files as they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ariel-frischer/changelint/internal/lint"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits after the last event before
// re-linting. Editors often emit several writes per save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher lints every markdown file in Dir once, then again whenever files
// change until its context is cancelled.
type Watcher struct {
	Dir      string
	Runner   *lint.Runner
	Debounce time.Duration
	// OnReport receives each lint report. Required.
	OnReport func(*lint.Report)
	Logger   zerolog.Logger
}

// Run blocks until ctx is cancelled. Cancellation is a clean stop and
// returns nil; watcher setup and lint failures are returned as errors.
func (w *Watcher) Run(ctx context.Context) error {
	if w.OnReport == nil {
		return errors.New("watch: OnReport is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.Dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.Dir, err)
	}

	if err := w.lint(ctx, []string{w.Dir}); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.Logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
			pending[event.Name] = true
			timer.Reset(debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		case <-timer.C:
			paths := existing(pending)
			clear(pending)
			if len(paths) == 0 {
				continue
			}
			if err := w.lint(ctx, paths); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.Logger.Warn().Err(err).Msg("re-lint failed")
			}
		}
	}
}

func (w *Watcher) lint(ctx context.Context, paths []string) error {
	report, err := w.Runner.Run(ctx, paths)
	if err != nil {
		return err
	}
	w.Logger.Info().Int("files", len(report.Files)).Int("issues", len(report.Issues)).Msg("linted")
	w.OnReport(report)
	return nil
}

func relevant(event fsnotify.Event) bool {
	if !lint.IsChangelogFile(event.Name) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// existing returns the pending paths that are still regular files, sorted.
// Renamed-away and deleted files are dropped.
func existing(pending map[string]bool) []string {
	var paths []string
	for p := range pending {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			paths = append(paths, filepath.Clean(p))
		}
	}
	sort.Strings(paths)
	return paths
}
