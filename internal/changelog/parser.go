package changelog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// ParseError represents a malformed changelog line with its position.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// componentPattern matches "(`tag`): text" and "(tag): text".
var componentPattern = regexp.MustCompile("^\\(\\s*`?([^()`]+?)`?\\s*\\)\\s*:\\s*(.*)$")

// Load reads and parses a changelog markdown file from the given path.
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// LoadBytes parses changelog markdown held in memory.
func LoadBytes(data []byte) (*Changelog, error) {
	return Parse(bytes.NewReader(data))
}

// ParseEntry splits list item text into its component tag and description.
// Text without a leading "(tag):" prefix yields an untagged entry.
func ParseEntry(text string) Entry {
	text = strings.TrimSpace(text)
	if m := componentPattern.FindStringSubmatch(text); m != nil {
		return Entry{Component: strings.TrimSpace(m[1]), Text: strings.TrimSpace(m[2])}
	}
	return Entry{Text: text}
}

// parser holds the state of a single Parse call.
type parser struct {
	c         *Changelog
	release   *Release
	section   *Section
	entry     *Entry
	preamble  []string
	sawLevel2 bool
}

// Parse reads a changelog markdown document from r.
// Returns a ParseError with the offending line for content that does not
// fit the release/kind/entry structure.
func Parse(r io.Reader) (*Changelog, error) {
	p := &parser{c: &Changelog{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if err := p.parseLine(line, lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}

	p.flushRelease()
	p.c.Preamble = trimBlankLines(p.preamble)
	return p.c, nil
}

func (p *parser) parseLine(line string, lineNo int) error {
	level, heading := headingLevel(line)
	switch level {
	case 1:
		return p.parseTitle(heading, lineNo)
	case 2:
		return p.parseRelease(heading, lineNo)
	case 3:
		return p.parseSection(heading, lineNo)
	}

	if !p.sawLevel2 {
		p.preamble = append(p.preamble, line)
		return nil
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if marker, ok := listItem(line); ok {
		return p.parseEntry(marker, lineNo)
	}

	if p.entry != nil && startsIndented(line) {
		if p.entry.Text == "" {
			p.entry.Text = trimmed
		} else {
			p.entry.Text += " " + trimmed
		}
		return nil
	}

	return &ParseError{Line: lineNo, Message: fmt.Sprintf("unexpected content %q", truncateText(trimmed, 40))}
}

func (p *parser) parseTitle(heading string, lineNo int) error {
	if p.c.Title != "" || p.sawLevel2 {
		return &ParseError{Line: lineNo, Message: "unexpected top-level heading"}
	}
	p.c.Title = heading
	return nil
}

func (p *parser) parseRelease(heading string, lineNo int) error {
	p.flushRelease()
	p.sawLevel2 = true

	name, ok := releaseName(heading)
	if !ok {
		return &ParseError{
			Line:    lineNo,
			Message: fmt.Sprintf("unrecognized release heading %q (expected: Unreleased or Release YYYY-MM-DD)", heading),
		}
	}
	p.release = &Release{Name: name, Line: lineNo}
	return nil
}

func (p *parser) parseSection(heading string, lineNo int) error {
	if p.release == nil {
		return &ParseError{Line: lineNo, Message: fmt.Sprintf("change section %q outside of a release", heading)}
	}
	if heading == "" {
		return &ParseError{Line: lineNo, Message: "change section heading is empty"}
	}
	p.flushSection()
	p.section = &Section{Kind: heading, Line: lineNo}
	return nil
}

func (p *parser) parseEntry(text string, lineNo int) error {
	if p.section == nil {
		return &ParseError{Line: lineNo, Message: "entry outside of a change section"}
	}
	entry := ParseEntry(text)
	entry.Line = lineNo
	p.section.Entries = append(p.section.Entries, entry)
	p.entry = &p.section.Entries[len(p.section.Entries)-1]
	return nil
}

// flushSection appends the open section to the open release.
func (p *parser) flushSection() {
	if p.section != nil && p.release != nil {
		if p.section.Entries == nil {
			p.section.Entries = []Entry{}
		}
		p.release.Sections = append(p.release.Sections, *p.section)
	}
	p.section = nil
	p.entry = nil
}

// flushRelease closes the open section and appends the open release.
func (p *parser) flushRelease() {
	p.flushSection()
	if p.release != nil {
		if p.release.Sections == nil {
			p.release.Sections = []Section{}
		}
		p.c.Releases = append(p.c.Releases, *p.release)
	}
	p.release = nil
}

// headingLevel returns the ATX heading level of a line and its text.
// Returns 0 for lines that are not headings.
func headingLevel(line string) (int, string) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, ""
	}
	rest := line[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, ""
	}
	return level, strings.TrimSpace(rest)
}

// releaseName extracts the release name from a level-2 heading.
func releaseName(heading string) (string, bool) {
	if strings.EqualFold(heading, UnreleasedName) {
		return UnreleasedName, true
	}
	fields := strings.Fields(heading)
	if len(fields) == 2 && strings.EqualFold(fields[0], "Release") {
		return fields[1], true
	}
	return "", false
}

// listItem returns the text after a top-level "- " or "* " marker.
func listItem(line string) (string, bool) {
	if line == "-" || line == "*" {
		return "", true
	}
	for _, marker := range []string{"- ", "* "} {
		if strings.HasPrefix(line, marker) {
			return line[len(marker):], true
		}
	}
	return "", false
}

func startsIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// trimBlankLines drops leading and trailing blank lines.
func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if start == end {
		return nil
	}
	return append([]string(nil), lines[start:end]...)
}
