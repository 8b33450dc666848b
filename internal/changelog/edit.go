package changelog

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrEmptyEntry is returned when adding an entry with no text.
	ErrEmptyEntry = errors.New("entry text is empty")
	// ErrInvalidComponent is returned for component tags the entry syntax cannot carry.
	ErrInvalidComponent = errors.New("invalid component tag")
	// ErrNothingToRelease is returned when cutting a release with no unreleased entries.
	ErrNothingToRelease = errors.New("no unreleased entries to release")
	// ErrInvalidDate is returned for release dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid release date")
	// ErrReleaseExists is returned when cutting a release whose date is already present.
	ErrReleaseExists = errors.New("release already exists")
	// ErrReleaseOrder is returned when a new release is not newer than the latest one.
	ErrReleaseOrder = errors.New("release date is not newer than the latest release")
)

// ParseDate parses a release name as a calendar date.
func ParseDate(name string) (time.Time, error) {
	t, err := time.Parse(DateLayout, name)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q (expected: YYYY-MM-DD)", ErrInvalidDate, name)
	}
	return t, nil
}

// CanonicalKind maps a kind onto its canonical spelling ("fixed" -> "Fixed").
// Unrecognized kinds get their first letter capitalized.
func CanonicalKind(kind string) string {
	kind = strings.TrimSpace(kind)
	for _, k := range DefaultKinds() {
		if strings.EqualFold(k, kind) {
			return k
		}
	}
	return Capitalize(kind)
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ValidateComponent reports whether name can be written as an entry tag
// and read back unchanged.
func ValidateComponent(name string) error {
	if i := strings.IndexAny(name, "()`\r\n"); i >= 0 {
		return fmt.Errorf("%w %q: must not contain %q", ErrInvalidComponent, name, name[i:i+1])
	}
	return nil
}

// singleLine collapses all whitespace runs, newlines included, into one space.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// kindRank orders kinds for section insertion; unknown kinds sort last.
func kindRank(kind string) int {
	for i, k := range DefaultKinds() {
		if k == kind {
			return i
		}
	}
	return len(DefaultKinds())
}

// EnsureUnreleased returns the unreleased section, creating it at the top
// of the changelog if it doesn't exist.
func (c *Changelog) EnsureUnreleased() *Release {
	if r := c.Unreleased(); r != nil {
		return r
	}
	c.Releases = append([]Release{{Name: UnreleasedName, Sections: []Section{}}}, c.Releases...)
	return &c.Releases[0]
}

// AddEntry appends an entry to the unreleased section under the given kind.
// Missing sections are created in canonical kind order. Text and kind are
// folded onto a single line since an entry is one list item.
func (c *Changelog) AddEntry(kind, component, text string) (Entry, error) {
	text = singleLine(text)
	if text == "" {
		return Entry{}, ErrEmptyEntry
	}
	component = strings.TrimSpace(component)
	if err := ValidateComponent(component); err != nil {
		return Entry{}, err
	}
	kind = CanonicalKind(singleLine(kind))
	if kind == "" {
		return Entry{}, fmt.Errorf("change kind is empty")
	}

	r := c.EnsureUnreleased()
	s := r.ensureSection(kind)
	entry := Entry{Component: component, Text: text}
	s.Entries = append(s.Entries, entry)
	return entry, nil
}

// ensureSection finds the section for kind (case-insensitive), inserting a
// new one before the first section of a later canonical kind.
func (r *Release) ensureSection(kind string) *Section {
	for i := range r.Sections {
		if strings.EqualFold(r.Sections[i].Kind, kind) {
			return &r.Sections[i]
		}
	}

	pos := len(r.Sections)
	rank := kindRank(kind)
	for i, s := range r.Sections {
		if kindRank(s.Kind) > rank {
			pos = i
			break
		}
	}

	r.Sections = append(r.Sections, Section{})
	copy(r.Sections[pos+1:], r.Sections[pos:])
	r.Sections[pos] = Section{Kind: kind, Entries: []Entry{}}
	return &r.Sections[pos]
}

// Cut promotes the unreleased entries to a new release named date.
// The new release is placed directly after Unreleased, which keeps its
// kind headings with their entries cleared. Empty sections are not
// copied into the new release.
func (c *Changelog) Cut(date string) (*Release, error) {
	newDate, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range c.Releases {
		if c.Releases[i].IsUnreleased() {
			idx = i
			break
		}
	}
	if idx < 0 || c.Releases[idx].IsEmpty() {
		return nil, ErrNothingToRelease
	}

	if _, err := c.Release(date); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrReleaseExists, date)
	}
	if latest := c.Latest(); latest != nil {
		if latestDate, err := ParseDate(latest.Name); err == nil && !newDate.After(latestDate) {
			return nil, fmt.Errorf("%w: %s <= %s", ErrReleaseOrder, date, latest.Name)
		}
	}

	unreleased := &c.Releases[idx]
	release := Release{Name: date, Sections: []Section{}}
	for i := range unreleased.Sections {
		s := &unreleased.Sections[i]
		if len(s.Entries) > 0 {
			release.Sections = append(release.Sections, Section{Kind: s.Kind, Entries: s.Entries})
		}
		s.Entries = []Entry{}
	}

	pos := idx + 1
	c.Releases = append(c.Releases, Release{})
	copy(c.Releases[pos+1:], c.Releases[pos:])
	c.Releases[pos] = release
	return &c.Releases[pos], nil
}
