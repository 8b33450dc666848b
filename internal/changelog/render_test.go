package changelog

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stripLines clears source positions so parsed and in-memory models compare equal.
func stripLines(c *Changelog) *Changelog {
	for i := range c.Releases {
		c.Releases[i].Line = 0
		for j := range c.Releases[i].Sections {
			c.Releases[i].Sections[j].Line = 0
			for k := range c.Releases[i].Sections[j].Entries {
				c.Releases[i].Sections[j].Entries[k].Line = 0
			}
		}
	}
	return c
}

func TestRender_SampleIsCanonical(t *testing.T) {
	data, err := os.ReadFile(samplePath)
	require.NoError(t, err)

	c, err := LoadBytes(data)
	require.NoError(t, err)

	out, err := RenderString(c)
	require.NoError(t, err)
	assert.Equal(t, string(data), out)
}

func TestRender_RoundTrip(t *testing.T) {
	tests := map[string]*Changelog{
		"sample": stripLines(loadSample(t)),
		"no title": {
			Releases: []Release{
				{Name: "2020-01-01", Sections: []Section{
					{Kind: "Security", Entries: []Entry{{Component: "api", Text: "Rotate keys."}}},
				}},
			},
		},
		"empty entry text": {
			Title: "T",
			Releases: []Release{
				{Name: "Unreleased", Sections: []Section{
					{Kind: "Added", Entries: []Entry{{Text: ""}}},
				}},
			},
		},
		"release without sections": {
			Title:    "T",
			Releases: []Release{{Name: "2020-01-01", Sections: []Section{}}},
		},
	}

	for name, c := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := RenderString(c)
			require.NoError(t, err)

			parsed, err := LoadBytes([]byte(out))
			require.NoError(t, err)
			if diff := cmp.Diff(c, stripLines(parsed)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			again, err := RenderString(parsed)
			require.NoError(t, err)
			assert.Equal(t, out, again, "render should be idempotent")
		})
	}
}

func TestRender_Normalizes(t *testing.T) {
	input := "#   Title\n\n\n## unreleased\n### Added\n- (explorer):   New page.\n\n\n## Release 2021-01-01\n### Fixed\n* Bug.\n"
	c, err := LoadBytes([]byte(input))
	require.NoError(t, err)

	out, err := RenderString(c)
	require.NoError(t, err)

	expected := "# Title\n\n## Unreleased\n\n### Added\n\n- (`explorer`): New page.\n\n## Release 2021-01-01\n\n### Fixed\n\n- Bug.\n"
	assert.Equal(t, expected, out)
}

func TestRender_Empty(t *testing.T) {
	out, err := RenderString(&Changelog{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderRelease(t *testing.T) {
	c := loadSample(t)
	r, err := c.Release("2021-01-12")
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, RenderRelease(r, &b))

	out := b.String()
	assert.True(t, strings.HasPrefix(out, "### Added\n\n- (`tok_cli`)"))
	assert.Contains(t, out, "\n### Changed\n\n")
	assert.Contains(t, out, "- Dashboard links pointed at the staging explorer.\n")
	assert.NotContains(t, out, "## Release")
}

func TestRenderRelease_SkipsEmptySections(t *testing.T) {
	var b strings.Builder
	require.NoError(t, RenderRelease(loadSample(t).Unreleased(), &b))
	assert.Empty(t, b.String())
}

func TestReleaseHeading(t *testing.T) {
	assert.Equal(t, "Unreleased", ReleaseHeading(Release{Name: UnreleasedName}))
	assert.Equal(t, "Release 2021-01-12", ReleaseHeading(Release{Name: "2021-01-12"}))
}
