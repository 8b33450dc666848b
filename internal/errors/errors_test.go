package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_ExitCode(t *testing.T) {
	tests := map[string]struct {
		category ErrorCategory
		want     int
	}{
		"argument":      {category: Argument, want: ExitInvalidArguments},
		"configuration": {category: Configuration, want: ExitInvalidArguments},
		"prerequisite":  {category: Prerequisite, want: ExitMissingDependencies},
		"validation":    {category: Validation, want: ExitValidationFailed},
		"runtime":       {category: Runtime, want: ExitValidationFailed},
		"timeout":       {category: Timeout, want: ExitTimeout},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.ExitCode())
			assert.NotEqual(t, "Error", tt.category.String())
		})
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := WrapWithMessage(cause, Runtime, "writing changelog", "Free some space")

	assert.Equal(t, "writing changelog: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))
}

func TestAsCLIError_ThroughWrapping(t *testing.T) {
	inner := NewValidationError("bad")
	wrapped := fmt.Errorf("outer: %w", inner)

	assert.Same(t, inner, AsCLIError(wrapped))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
}

func TestFormatErrorPlain(t *testing.T) {
	err := ReleaseNotFound("2020-01-01", []string{"Unreleased", "2021-01-12"})

	out := FormatErrorPlain(err)
	expected := "Error [Argument Error]: release \"2020-01-01\" not found\n" +
		"\nUsage: changelint show [unreleased|YYYY-MM-DD] --file <path>\n" +
		"\nTo fix this:\n" +
		"  • Available releases: Unreleased, 2021-01-12\n"
	assert.Equal(t, expected, out)
}

func TestFprintError(t *testing.T) {
	var buf bytes.Buffer
	FprintError(&buf, nil, true)
	assert.Empty(t, buf.String())

	FprintError(&buf, NothingToRelease("changelog/core.md"), true)
	assert.Contains(t, buf.String(), "Validation Error")
	assert.Contains(t, buf.String(), "--file changelog/core.md")
}

func TestMessages(t *testing.T) {
	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantContains string
	}{
		"changelog not found": {err: ChangelogNotFound("x.md"), wantCategory: Prerequisite, wantContains: "x.md"},
		"invalid date":        {err: InvalidReleaseDate("2021-1-1"), wantCategory: Argument, wantContains: "2021-1-1"},
		"uncommitted":         {err: UncommittedChanges("x.md"), wantCategory: Prerequisite, wantContains: "uncommitted"},
		"lint failed":         {err: LintFailed(2, 1, false), wantCategory: Validation, wantContains: "2 error(s), 1 warning(s)"},
		"format drift":        {err: FormatDrift([]string{"a.md", "b.md"}), wantCategory: Validation, wantContains: "a.md, b.md"},
		"remote timeout":      {err: RemoteTimeout("http://x"), wantCategory: Timeout, wantContains: "http://x"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Contains(t, tt.err.Message, tt.wantContains)
			assert.NotEmpty(t, tt.err.Remediation)
		})
	}
}

func TestLintFailed_StrictHint(t *testing.T) {
	assert.Len(t, LintFailed(0, 3, true).Remediation, 2)
	assert.Len(t, LintFailed(1, 3, true).Remediation, 1)
}
