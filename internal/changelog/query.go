package changelog

import (
	"fmt"
	"sort"
	"strings"
)

// ReleaseNotFoundError is returned when a requested release doesn't exist.
type ReleaseNotFoundError struct {
	Name      string
	Available []string
}

func (e *ReleaseNotFoundError) Error() string {
	return fmt.Sprintf("release %q not found (available: %s)",
		e.Name, strings.Join(e.Available, ", "))
}

// NormalizeRelease maps user input onto a release name.
// "unreleased" in any case becomes "Unreleased" and a "Release " prefix is dropped.
func NormalizeRelease(name string) string {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, UnreleasedName) {
		return UnreleasedName
	}
	if len(name) > len("release ") && strings.EqualFold(name[:len("release ")], "release ") {
		return strings.TrimSpace(name[len("release "):])
	}
	return name
}

// Release retrieves a release by name. Accepts "unreleased", "2021-01-12"
// and "Release 2021-01-12" forms.
// Returns ReleaseNotFoundError if the release doesn't exist.
func (c *Changelog) Release(name string) (*Release, error) {
	normalized := NormalizeRelease(name)
	for i := range c.Releases {
		if c.Releases[i].Name == normalized {
			return &c.Releases[i], nil
		}
	}
	return nil, &ReleaseNotFoundError{Name: name, Available: c.ReleaseNames()}
}

// Unreleased returns the unreleased section, or nil if there is none.
func (c *Changelog) Unreleased() *Release {
	for i := range c.Releases {
		if c.Releases[i].IsUnreleased() {
			return &c.Releases[i]
		}
	}
	return nil
}

// Latest returns the most recent dated release, or nil.
func (c *Changelog) Latest() *Release {
	for i := range c.Releases {
		if !c.Releases[i].IsUnreleased() {
			return &c.Releases[i]
		}
	}
	return nil
}

// ReleaseNames returns the names of all releases in document order.
func (c *Changelog) ReleaseNames() []string {
	names := make([]string, len(c.Releases))
	for i, r := range c.Releases {
		names[i] = r.Name
	}
	return names
}

// Items returns every entry of every release, newest release first.
func (c *Changelog) Items() []Item {
	var items []Item
	for _, r := range c.Releases {
		items = append(items, r.Items()...)
	}
	return items
}

// Count returns the total number of entries across all releases.
func (c *Changelog) Count() int {
	n := 0
	for _, r := range c.Releases {
		n += r.Count()
	}
	return n
}

// Query selects entries. Zero-valued fields match everything.
type Query struct {
	Release   string
	Kind      string
	Component string
	// Untagged selects only entries without a component tag.
	Untagged bool
	// Last limits the result to the first N matches (newest first).
	Last int
}

// Filter returns the items matching q in document order.
// Kind and component comparisons are case-insensitive.
func (c *Changelog) Filter(q Query) []Item {
	release := ""
	if q.Release != "" {
		release = NormalizeRelease(q.Release)
	}

	items := []Item{}
	for _, it := range c.Items() {
		if release != "" && it.Release != release {
			continue
		}
		if q.Kind != "" && !strings.EqualFold(it.Kind, q.Kind) {
			continue
		}
		if q.Component != "" && !strings.EqualFold(it.Component, q.Component) {
			continue
		}
		if q.Untagged && it.Component != "" {
			continue
		}
		items = append(items, it)
		if q.Last > 0 && len(items) == q.Last {
			break
		}
	}
	return items
}

// ComponentCount is the number of entries mentioning a component tag.
type ComponentCount struct {
	Component string `yaml:"component" json:"component"`
	Count     int    `yaml:"count" json:"count"`
}

// Components returns the component tags used in the changelog with their
// entry counts, sorted by name. Untagged entries are not included.
func (c *Changelog) Components() []ComponentCount {
	counts := make(map[string]int)
	for _, it := range c.Items() {
		if it.Component != "" {
			counts[it.Component]++
		}
	}

	result := make([]ComponentCount, 0, len(counts))
	for name, n := range counts {
		result = append(result, ComponentCount{Component: name, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Component < result[j].Component
	})
	return result
}

// KindCounts returns the number of entries per kind in section order.
func (r Release) KindCounts() map[string]int {
	counts := make(map[string]int, len(r.Sections))
	for _, s := range r.Sections {
		counts[s.Kind] += len(s.Entries)
	}
	return counts
}
