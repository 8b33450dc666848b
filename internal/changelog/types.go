package changelog

// UnreleasedName is the release name used for changes not yet released.
const UnreleasedName = "Unreleased"

// DateLayout is the layout of dated release names (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Changelog represents a parsed changelog markdown document.
// Releases are kept in document order, which by convention is newest first.
type Changelog struct {
	Title    string    `yaml:"title" json:"title"`
	Preamble []string  `yaml:"preamble,omitempty" json:"preamble,omitempty"`
	Releases []Release `yaml:"releases" json:"releases"`
}

// Release is a single `## Unreleased` or `## Release <date>` section.
// Line is the 1-based line of the heading in the source document and is
// zero for releases created in memory.
type Release struct {
	Name     string    `yaml:"name" json:"name"`
	Sections []Section `yaml:"sections" json:"sections"`
	Line     int       `yaml:"-" json:"-"`
}

// Section groups entries under a `### <Kind>` heading.
// Kind is free text; Added, Changed and Fixed are the conventional values.
type Section struct {
	Kind    string  `yaml:"kind" json:"kind"`
	Entries []Entry `yaml:"entries" json:"entries"`
	Line    int     `yaml:"-" json:"-"`
}

// Entry is a single list item. Component is the optional parenthesized tag
// naming the affected subsystem (e.g. "fee-seller").
type Entry struct {
	Component string `yaml:"component,omitempty" json:"component,omitempty"`
	Text      string `yaml:"text" json:"text"`
	Line      int    `yaml:"-" json:"-"`
}

// Item is a flattened view of an entry with its release and kind context.
// This is used for querying and displaying individual entries.
type Item struct {
	Release   string `yaml:"release" json:"release"`
	Kind      string `yaml:"kind" json:"kind"`
	Component string `yaml:"component,omitempty" json:"component,omitempty"`
	Text      string `yaml:"text" json:"text"`
	Line      int    `yaml:"line,omitempty" json:"line,omitempty"`
}

// DefaultKinds returns the recognized change kinds in canonical order.
// The set follows Keep a Changelog; files may use others.
func DefaultKinds() []string {
	return []string{"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security"}
}

// IsUnreleased returns true if this release holds unreleased changes.
func (r Release) IsUnreleased() bool {
	return r.Name == UnreleasedName
}

// Section returns the section with the given kind, or nil.
func (r *Release) Section(kind string) *Section {
	for i := range r.Sections {
		if r.Sections[i].Kind == kind {
			return &r.Sections[i]
		}
	}
	return nil
}

// Count returns the number of entries across all sections.
func (r Release) Count() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Entries)
	}
	return n
}

// IsEmpty returns true if the release has no entries in any section.
func (r Release) IsEmpty() bool {
	return r.Count() == 0
}

// Items returns a flattened list of all entries in this release,
// in section order.
func (r Release) Items() []Item {
	items := make([]Item, 0, r.Count())
	for _, s := range r.Sections {
		for _, e := range s.Entries {
			items = append(items, Item{
				Release:   r.Name,
				Kind:      s.Kind,
				Component: e.Component,
				Text:      e.Text,
				Line:      e.Line,
			})
		}
	}
	return items
}

// HasComponent returns true if the entry carries a component tag.
func (e Entry) HasComponent() bool {
	return e.Component != ""
}

// String renders the entry the way it appears after the list marker.
func (e Entry) String() string {
	if e.Component == "" {
		return e.Text
	}
	return "(`" + e.Component + "`): " + e.Text
}
