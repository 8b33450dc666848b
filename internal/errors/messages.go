package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the changelint CLI.
// These templates ensure consistent, actionable error messages.

// ChangelogNotFound creates an error for a missing changelog file or directory.
func ChangelogNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found: %s", path),
		"Check the path, or set 'dir' in .changelint.yml",
		"Create a new changelog with: changelint init "+path,
	)
}

// ReleaseNotFound creates an error for a release name missing from a changelog.
func ReleaseNotFound(name string, available []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("release %q not found", name),
		"changelint show [unreleased|YYYY-MM-DD] --file <path>",
		"Available releases: "+strings.Join(available, ", "),
	)
}

// InvalidReleaseDate creates an error for a malformed release date argument.
func InvalidReleaseDate(date string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid release date %q", date),
		"changelint release [YYYY-MM-DD] --file <path>",
		"Use the calendar date format YYYY-MM-DD (e.g. 2021-01-12)",
		"Omit the date to release as of today",
	)
}

// NothingToRelease creates an error when Unreleased holds no entries.
func NothingToRelease(path string) *CLIError {
	return NewValidationError(
		fmt.Sprintf("%s has no unreleased entries", path),
		"Add entries first: changelint add <kind> \"<description>\" --file "+path,
	)
}

// UncommittedChanges creates an error when a file has uncommitted edits.
func UncommittedChanges(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s has uncommitted changes", path),
		"Commit or stash the changes before cutting a release",
		"Or pass --force to release anyway",
	)
}

// LintFailed creates an error summarizing a failed lint run.
func LintFailed(errorCount, warningCount int, strict bool) *CLIError {
	msg := fmt.Sprintf("lint failed: %d error(s), %d warning(s)", errorCount, warningCount)
	steps := []string{"Fix the reported issues and run 'changelint lint' again"}
	if strict && errorCount == 0 {
		steps = append(steps, "Warnings fail the run because strict mode is enabled")
	}
	return NewValidationError(msg, steps...)
}

// FormatDrift creates an error when files differ from their canonical rendering.
func FormatDrift(paths []string) *CLIError {
	return NewValidationError(
		fmt.Sprintf("%d file(s) not in canonical format: %s", len(paths), strings.Join(paths, ", ")),
		"Run 'changelint fmt' to rewrite them",
	)
}

// RemoteTimeout creates an error when fetching a remote changelog times out.
func RemoteTimeout(url string) *CLIError {
	return &CLIError{
		Category: Timeout,
		Message:  fmt.Sprintf("timed out fetching %s", url),
		Remediation: []string{
			"Check your network connection",
			"Raise the limit with CHANGELINT_REMOTE_TIMEOUT (e.g. 30s)",
		},
	}
}
