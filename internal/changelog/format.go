package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// KindStyle defines the color and icon for a change kind.
type KindStyle struct {
	Color *color.Color
	Icon  string
}

// kindStyles maps lowercase kind names to their terminal styling.
var kindStyles = map[string]KindStyle{
	"added":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"changed":    {Color: color.New(color.FgBlue), Icon: "~"},
	"deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
	"removed":    {Color: color.New(color.FgRed), Icon: "✗"},
	"fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

var defaultKindStyle = KindStyle{Color: color.New(color.FgWhite), Icon: "•"}

func styleFor(kind string) KindStyle {
	if s, ok := kindStyles[strings.ToLower(kind)]; ok {
		return s
	}
	return defaultKindStyle
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatItems writes items to the writer with terminal styling.
// Items are grouped by release with color-coded kind headers.
func FormatItems(items []Item, w io.Writer, opts FormatOptions) error {
	if len(items) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)

	for i, group := range groupItemsByRelease(items) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeReleaseHeader(group.release, w, opts); err != nil {
			return fmt.Errorf("formatting release %s: %w", group.release, err)
		}
		for _, kg := range groupItemsByKind(group.items) {
			if err := writeKindSection(kg.kind, kg.items, w, opts, width); err != nil {
				return fmt.Errorf("formatting release %s: %w", group.release, err)
			}
		}
	}

	return nil
}

// FormatRelease writes a single release's entries to the writer.
// Empty sections are skipped.
func FormatRelease(r *Release, w io.Writer, opts FormatOptions) error {
	if err := writeReleaseHeader(r.Name, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if r.IsEmpty() {
		_, err := fmt.Fprintln(w, "\n  (no entries)")
		return err
	}

	width := resolveWidth(opts.MaxWidth)
	for _, s := range r.Sections {
		if len(s.Entries) == 0 {
			continue
		}
		items := make([]Item, len(s.Entries))
		for i, e := range s.Entries {
			items[i] = Item{Release: r.Name, Kind: s.Kind, Component: e.Component, Text: e.Text}
		}
		if err := writeKindSection(s.Kind, items, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// itemGroup holds consecutive items sharing a release or kind.
type itemGroup struct {
	release string
	kind    string
	items   []Item
}

// groupItemsByRelease groups items by release, preserving order.
func groupItemsByRelease(items []Item) []itemGroup {
	var groups []itemGroup
	for _, it := range items {
		if len(groups) == 0 || groups[len(groups)-1].release != it.Release {
			groups = append(groups, itemGroup{release: it.Release})
		}
		groups[len(groups)-1].items = append(groups[len(groups)-1].items, it)
	}
	return groups
}

// groupItemsByKind groups items by kind in order of first appearance.
func groupItemsByKind(items []Item) []itemGroup {
	var groups []itemGroup
	index := make(map[string]int)
	for _, it := range items {
		i, ok := index[it.Kind]
		if !ok {
			i = len(groups)
			index[it.Kind] = i
			groups = append(groups, itemGroup{kind: it.Kind})
		}
		groups[i].items = append(groups[i].items, it)
	}
	return groups
}

// writeReleaseHeader writes the release header line.
func writeReleaseHeader(name string, w io.Writer, opts FormatOptions) error {
	header := ReleaseHeading(Release{Name: name})

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeKindSection writes a single kind header with its entries.
func writeKindSection(kind string, items []Item, w io.Writer, opts FormatOptions, width int) error {
	style := styleFor(kind)

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", kind); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(kind)); err != nil {
			return err
		}
	}

	for _, it := range items {
		if err := writeItem(it, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeItem writes a single entry with optional wrapping.
func writeItem(it Item, style KindStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, Entry{Component: it.Component, Text: it.Text}.String())
		return err
	}

	text := wrapText(it.Text, width-len(prefix)-len(it.Component)-3, "    ")
	colored := style.Color.SprintFunc()
	if it.Component != "" {
		cyan := color.New(color.FgCyan).SprintFunc()
		_, err := fmt.Fprintf(w, "%s%s %s\n", prefix, cyan("["+it.Component+"]"), colored(text))
		return err
	}
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(text))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth runes, using indent for
// continuation lines. Lines break at the last space that fits, or mid-word
// when there is none.
func wrapText(text string, maxWidth int, indent string) string {
	remaining := []rune(text)
	if maxWidth <= 0 || len(remaining) <= maxWidth {
		return text
	}

	var lines []string
	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, string(remaining[:breakPoint]))
		remaining = []rune(strings.TrimLeft(string(remaining[breakPoint:]), " "))
	}

	if len(remaining) > 0 {
		lines = append(lines, string(remaining))
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatItemSummary returns a brief one-line summary of an item.
func FormatItemSummary(it Item, opts FormatOptions) string {
	text := truncateText(Entry{Component: it.Component, Text: it.Text}.String(), 60)

	if opts.Plain {
		return fmt.Sprintf("[%s] %s", strings.ToLower(it.Kind), text)
	}

	style := styleFor(it.Kind)
	colored := style.Color.SprintFunc()
	return fmt.Sprintf("%s %s", colored(style.Icon), text)
}

// truncateText truncates text to maxLen runes, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}
