// Package lint checks parsed changelogs against the file conventions:
// release naming and ordering, change kinds and component tags.
package lint

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/changelint/internal/changelog"
)

// Severity classifies an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule names reported in issues.
const (
	RuleParse              = "parse"
	RuleMissingTitle       = "missing-title"
	RuleInvalidDate        = "invalid-date"
	RuleUnreleasedPosition = "unreleased-position"
	RuleMultipleUnreleased = "multiple-unreleased"
	RuleDuplicateRelease   = "duplicate-release"
	RuleReleaseOrder       = "release-order"
	RuleDuplicateSection   = "duplicate-section"
	RuleUnknownKind        = "unknown-kind"
	RuleMissingComponent   = "missing-component"
	RuleUnknownComponent   = "unknown-component"
	RuleEmptyEntry         = "empty-entry"
	RuleEmptyRelease       = "empty-release"
)

// Issue is a single lint finding.
type Issue struct {
	Path     string   `json:"path,omitempty"`
	Line     int      `json:"line,omitempty"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	loc := i.Path
	if i.Line > 0 {
		loc = fmt.Sprintf("%s:%d", i.Path, i.Line)
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s [%s]", i.Severity, i.Message, i.Rule)
	}
	return fmt.Sprintf("%s: %s: %s [%s]", loc, i.Severity, i.Message, i.Rule)
}

// Options configures the rules.
type Options struct {
	// Kinds is the set of accepted change kinds (default: changelog.DefaultKinds).
	Kinds []string
	// Components is an optional registry of known component tags.
	// When empty, any tag is accepted.
	Components []string
	// RequireComponent turns missing-component into an error.
	RequireComponent bool
}

// Check runs all rules against c and returns the issues in document order.
// Path is left empty; callers that lint files fill it in.
func Check(c *changelog.Changelog, opts Options) []Issue {
	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = changelog.DefaultKinds()
	}
	ck := &checker{
		opts:       opts,
		kinds:      toSet(kinds, true),
		components: toSet(opts.Components, false),
	}

	if strings.TrimSpace(c.Title) == "" {
		ck.add(1, RuleMissingTitle, SeverityError, "changelog has no top-level title")
	}
	ck.checkReleases(c.Releases)
	return ck.issues
}

type checker struct {
	opts       Options
	kinds      map[string]bool
	components map[string]bool
	issues     []Issue
}

func (ck *checker) add(line int, rule string, sev Severity, format string, args ...any) {
	ck.issues = append(ck.issues, Issue{
		Line:     line,
		Rule:     rule,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (ck *checker) checkReleases(releases []changelog.Release) {
	seen := make(map[string]int)
	unreleasedSeen := false
	var prev *changelog.Release

	for i := range releases {
		r := &releases[i]

		if r.IsUnreleased() {
			if unreleasedSeen {
				ck.add(r.Line, RuleMultipleUnreleased, SeverityError, "only one Unreleased section is allowed")
			} else if i > 0 {
				ck.add(r.Line, RuleUnreleasedPosition, SeverityError, "Unreleased must be the first release")
			}
			unreleasedSeen = true
		} else {
			if first, ok := seen[r.Name]; ok {
				ck.add(r.Line, RuleDuplicateRelease, SeverityError, "release %q already defined on line %d", r.Name, first)
			} else {
				seen[r.Name] = r.Line
			}
			ck.checkDated(r, prev)
			if _, err := changelog.ParseDate(r.Name); err == nil {
				prev = r
			}
			if r.IsEmpty() {
				ck.add(r.Line, RuleEmptyRelease, SeverityWarning, "release %s has no entries", r.Name)
			}
		}

		ck.checkSections(r)
	}
}

// checkDated validates the date and its ordering against the previous
// well-formed dated release.
func (ck *checker) checkDated(r, prev *changelog.Release) {
	date, err := changelog.ParseDate(r.Name)
	if err != nil {
		ck.add(r.Line, RuleInvalidDate, SeverityError, "release date %q is not a valid YYYY-MM-DD date", r.Name)
		return
	}
	if prev == nil {
		return
	}
	prevDate, _ := changelog.ParseDate(prev.Name)
	if date.After(prevDate) {
		ck.add(r.Line, RuleReleaseOrder, SeverityError,
			"release %s is newer than the preceding release %s (releases must be newest first)", r.Name, prev.Name)
	}
}

func (ck *checker) checkSections(r *changelog.Release) {
	seen := make(map[string]int)
	for _, s := range r.Sections {
		key := strings.ToLower(s.Kind)
		if first, ok := seen[key]; ok {
			ck.add(s.Line, RuleDuplicateSection, SeverityError,
				"section %q repeated in release %s (first on line %d)", s.Kind, r.Name, first)
		} else {
			seen[key] = s.Line
		}

		if !ck.kinds[key] {
			ck.add(s.Line, RuleUnknownKind, SeverityWarning, "unknown change kind %q", s.Kind)
		}

		for _, e := range s.Entries {
			ck.checkEntry(e)
		}
	}
}

func (ck *checker) checkEntry(e changelog.Entry) {
	if strings.TrimSpace(e.Text) == "" {
		ck.add(e.Line, RuleEmptyEntry, SeverityError, "entry has no description")
	}

	if !e.HasComponent() {
		sev := SeverityWarning
		if ck.opts.RequireComponent {
			sev = SeverityError
		}
		ck.add(e.Line, RuleMissingComponent, sev, "entry has no component tag; write it as (component-name): description")
		return
	}

	if len(ck.components) > 0 && !ck.components[e.Component] {
		ck.add(e.Line, RuleUnknownComponent, SeverityError, "unknown component %q", e.Component)
	}
}

func toSet(values []string, fold bool) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if fold {
			v = strings.ToLower(v)
		}
		if v != "" {
			set[v] = true
		}
	}
	return set
}
