package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/ariel-frischer/changelint/internal/config"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/lint"
	"github.com/ariel-frischer/changelint/internal/log"
	"github.com/ariel-frischer/changelint/internal/progress"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type lintOptions struct {
	strict bool
	url    string
	format string
}

func newLintCmd(g *globalOptions) *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Validate changelog structure and conventions",
		Long: `Lint changelog files. Directories are expanded to the markdown files they
contain. With no paths, the configured changelog directory is linted.

Errors: missing title, malformed or duplicate release dates, releases out of
order, a misplaced or repeated Unreleased section, repeated kind headings,
empty entries, and component tags outside the configured registry.
Warnings: unknown change kinds, untagged entries (errors with
require_component), and dated releases without entries.

Exit status is 1 when errors are found, or when warnings are found in
strict mode.`,
		Example: `  changelint lint
  changelint lint changelog/infrastructure.md --strict
  changelint lint --format json
  changelint lint --url https://example.com/changelog/infrastructure.md`,
		GroupID: GroupChangelog,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, g, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat warnings as failures")
	cmd.Flags().StringVar(&opts.url, "url", "", "Lint a changelog fetched over HTTP instead of local files")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")

	return cmd
}

func lintRuleOptions(cfg *config.Configuration) lint.Options {
	return lint.Options{
		Kinds:            cfg.Kinds,
		Components:       cfg.Components,
		RequireComponent: cfg.RequireComponent,
	}
}

func runLint(cmd *cobra.Command, g *globalOptions, opts *lintOptions, args []string) error {
	if opts.format != "text" && opts.format != "json" {
		return clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unsupported format %q (expected: text or json)", opts.format), cmd.UseLine())
	}
	if opts.url != "" && len(args) > 0 {
		return clierrors.NewArgumentErrorWithUsage("--url cannot be combined with paths", cmd.UseLine())
	}

	var (
		report *lint.Report
		err    error
	)
	if opts.url != "" {
		report, err = lintRemote(cmd, g.cfg, opts)
	} else {
		report, err = lintLocal(cmd.Context(), g, args)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	} else {
		writeReport(out, report, color.NoColor)
	}

	strict := opts.strict || g.cfg.Strict
	if report.Failed(strict) {
		return clierrors.LintFailed(report.Errors(), report.Warnings(), strict)
	}
	return nil
}

func lintLocal(ctx context.Context, g *globalOptions, args []string) (*lint.Report, error) {
	paths, err := g.resolvePaths(args)
	if err != nil {
		return nil, err
	}

	runner := &lint.Runner{
		Options:     lintRuleOptions(g.cfg),
		Concurrency: g.cfg.Concurrency,
		Logf:        log.Printf("lint"),
	}
	report, err := runner.Run(ctx, paths)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}
	return report, nil
}

func lintRemote(cmd *cobra.Command, cfg *config.Configuration, opts *lintOptions) (*lint.Report, error) {
	timeout := cfg.RemoteTimeout
	if timeout <= 0 {
		timeout = changelog.DefaultRemoteTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var sp *progress.Spinner
	if opts.format == "text" {
		sp = progress.NewSpinner(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities())
		sp.Start("Fetching " + opts.url)
	}

	data, err := changelog.FetchRemoteBytes(ctx, opts.url)
	if err != nil {
		if sp != nil {
			sp.Fail("Fetching " + opts.url)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, clierrors.RemoteTimeout(opts.url)
		}
		return nil, clierrors.WrapWithMessage(err, clierrors.Prerequisite, "fetching remote changelog",
			"Check the URL and your network connection")
	}
	if sp != nil {
		sp.Succeed(fmt.Sprintf("Fetched %s (%d bytes)", opts.url, len(data)))
	}

	issues := lint.LintBytes(opts.url, data, lintRuleOptions(cfg))
	lint.SortIssues(issues)
	return &lint.Report{Files: []string{opts.url}, Issues: issues}, nil
}

// writeReport prints one line per issue followed by a summary.
func writeReport(w io.Writer, report *lint.Report, plain bool) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()

	for _, i := range report.Issues {
		if plain {
			fmt.Fprintln(w, i.String())
			continue
		}
		sev := yellow(string(i.Severity))
		if i.Severity == lint.SeverityError {
			sev = red(string(i.Severity))
		}
		loc := i.Path
		if i.Line > 0 {
			loc = fmt.Sprintf("%s:%d", i.Path, i.Line)
		}
		fmt.Fprintf(w, "%s: %s: %s %s\n", loc, sev, i.Message, dim("["+i.Rule+"]"))
	}

	if len(report.Issues) == 0 {
		mark := "✓"
		if !plain {
			mark = green(mark)
		}
		fmt.Fprintf(w, "%s %d file(s) checked, no issues\n", mark, len(report.Files))
		return
	}
	fmt.Fprintf(w, "\n%d file(s) checked: %d error(s), %d warning(s)\n",
		len(report.Files), report.Errors(), report.Warnings())
}
