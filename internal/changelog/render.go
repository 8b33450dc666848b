package changelog

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the changelog as canonical markdown.
// Headings, the preamble and each run of entries are separated by a single
// blank line, and the document ends with one newline. Parsing the output
// yields the same Changelog (line numbers aside).
//
// The function is idempotent - given the same input, it produces identical output.
func Render(c *Changelog, w io.Writer) error {
	var blocks []string

	if c.Title != "" {
		blocks = append(blocks, "# "+c.Title)
	}
	if len(c.Preamble) > 0 {
		blocks = append(blocks, strings.Join(c.Preamble, "\n"))
	}
	for _, r := range c.Releases {
		blocks = append(blocks, releaseBlocks(r)...)
	}

	if len(blocks) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, strings.Join(blocks, "\n\n")+"\n"); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}

// RenderString is a convenience function that renders to a string.
func RenderString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := Render(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderRelease writes a single release's sections as markdown, without the
// release heading. Empty sections are skipped. The output is suitable for
// release notes.
func RenderRelease(r *Release, w io.Writer) error {
	var blocks []string
	for _, s := range r.Sections {
		if len(s.Entries) == 0 {
			continue
		}
		blocks = append(blocks, "### "+s.Kind, entryBlock(s.Entries))
	}
	if len(blocks) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(blocks, "\n\n")+"\n")
	return err
}

// ReleaseHeading formats the level-2 heading text for a release.
func ReleaseHeading(r Release) string {
	if r.IsUnreleased() {
		return UnreleasedName
	}
	return "Release " + r.Name
}

func releaseBlocks(r Release) []string {
	blocks := []string{"## " + ReleaseHeading(r)}
	for _, s := range r.Sections {
		blocks = append(blocks, "### "+s.Kind)
		if len(s.Entries) > 0 {
			blocks = append(blocks, entryBlock(s.Entries))
		}
	}
	return blocks
}

func entryBlock(entries []Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = strings.TrimRight("- "+e.String(), " ")
	}
	return strings.Join(lines, "\n")
}
