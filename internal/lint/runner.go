package lint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of files linted at once.
const DefaultConcurrency = 4

// Report aggregates the issues found across one or more files.
type Report struct {
	Files  []string `json:"files"`
	Issues []Issue  `json:"issues"`
}

// Errors returns the number of error-severity issues.
func (r *Report) Errors() int {
	return r.count(SeverityError)
}

// Warnings returns the number of warning-severity issues.
func (r *Report) Warnings() int {
	return r.count(SeverityWarning)
}

func (r *Report) count(sev Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// Failed reports whether the lint run should fail. In strict mode
// warnings fail the run too.
func (r *Report) Failed(strict bool) bool {
	if strict {
		return len(r.Issues) > 0
	}
	return r.Errors() > 0
}

// Runner lints changelog files concurrently.
type Runner struct {
	Options     Options
	Concurrency int
	// Logf receives per-file debug messages. Optional.
	Logf func(format string, args ...any)
}

// LintBytes lints in-memory content, labelling issues with path.
// Parse failures are reported as a single parse issue.
func LintBytes(path string, data []byte, opts Options) []Issue {
	c, err := changelog.LoadBytes(data)
	if err != nil {
		issue := Issue{Path: path, Rule: RuleParse, Severity: SeverityError, Message: err.Error()}
		var pe *changelog.ParseError
		if errors.As(err, &pe) {
			issue.Line = pe.Line
			issue.Message = pe.Message
		}
		return []Issue{issue}
	}

	issues := Check(c, opts)
	for i := range issues {
		issues[i].Path = path
	}
	return issues
}

// Run lints each path. Directories are expanded to the markdown files they
// contain (non-recursive). Issues are sorted by path and line.
// Unreadable files abort the run with an error.
func (r *Runner) Run(ctx context.Context, paths []string) (*Report, error) {
	files, err := ExpandPaths(paths)
	if err != nil {
		return nil, err
	}

	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([][]Issue, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}
			results[i] = LintBytes(file, data, r.Options)
			r.logf("[lint] %s: %d issue(s)", file, len(results[i]))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Files: files, Issues: []Issue{}}
	for _, issues := range results {
		report.Issues = append(report.Issues, issues...)
	}
	SortIssues(report.Issues)
	return report, nil
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}

// SortIssues orders issues by path, then line, then rule.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
}

// ExpandPaths resolves files and directories into a sorted, de-duplicated
// list of markdown files.
func ExpandPaths(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("accessing %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", p, err)
		}
		for _, e := range entries {
			if !e.IsDir() && IsChangelogFile(e.Name()) {
				add(filepath.Join(p, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// IsChangelogFile reports whether name looks like a markdown changelog.
func IsChangelogFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md")
}
