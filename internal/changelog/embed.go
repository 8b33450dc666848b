package changelog

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed template.md
var embeddedTemplate []byte

// Template returns a new changelog skeleton titled title, with empty
// Added, Changed and Fixed sections under Unreleased.
func Template(title string) []byte {
	title = singleLine(title)
	if title == "" {
		title = "Changelog"
	}
	subject := strings.TrimSpace(strings.TrimSuffix(title, "Changelog"))
	if subject == "" {
		subject = "this project"
	} else {
		subject = "the " + strings.ToLower(subject)
	}

	out := bytes.ReplaceAll(embeddedTemplate, []byte("{{TITLE}}"), []byte(title))
	return bytes.ReplaceAll(out, []byte("{{SUBJECT}}"), []byte(subject))
}

// LoadTemplate parses the skeleton returned by Template.
func LoadTemplate(title string) (*Changelog, error) {
	c, err := LoadBytes(Template(title))
	if err != nil {
		return nil, fmt.Errorf("parsing changelog template: %w", err)
	}
	return c, nil
}
