package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShow(t *testing.T) {
	tests := map[string]struct {
		args        []string
		wantCode    int
		contains    []string
		notContains []string
	}{
		"release by date": {
			args: []string{"show", "2021-01-12", "--plain"},
			contains: []string{
				"## Release 2021-01-12",
				"### Added",
				"  - (`tok_cli`): Command for deploying ERC20 tokens to the test network.",
				"  - Dashboard links pointed at the staging explorer.",
			},
		},
		"release with kind filter": {
			args:        []string{"show", "2021-01-12", "--kind", "fixed", "--plain"},
			contains:    []string{"### Fixed", "(`zk`)"},
			notContains: []string{"### Changed", "tok_cli"},
		},
		"empty unreleased": {
			args:     []string{"show", "unreleased", "--plain"},
			contains: []string{"## Unreleased", "(no entries)"},
		},
		"component filter across releases": {
			args:        []string{"show", "--component", "fee-seller", "--plain"},
			contains:    []string{"Sell accumulated fees", "Gas price estimation"},
			notContains: []string{"explorer`"},
		},
		"untagged only": {
			args:        []string{"show", "--untagged", "--plain"},
			contains:    []string{"Deployment scripts", "Dashboard links"},
			notContains: []string{"(`"},
		},
		"last limits and reports total": {
			args:     []string{"show", "--last", "2", "--plain"},
			contains: []string{"tok_cli", "fee-seller", "(2 of 8 entries shown. Use --last 0 to see all)"},
		},
		"no matches": {
			args:     []string{"show", "--component", "nobody"},
			contains: []string{"No changelog entries found."},
		},
		"unknown release": {
			args:     []string{"show", "2020-01-01"},
			wantCode: ExitInvalidArguments,
		},
		"oneline": {
			args:        []string{"show", "--oneline", "--plain", "--last", "0"},
			contains:    []string{"[added] (`tok_cli`): Command for deploying ERC20 tokens to the te...", "[fixed] Dashboard links pointed at the staging explorer."},
			notContains: []string{"## Release"},
		},
		"markdown release notes": {
			args: []string{"show", "2021-01-12", "--markdown"},
			contains: []string{
				"### Added\n\n- (`tok_cli`): Command for deploying ERC20 tokens to the test network.\n\n### Changed\n",
				"- Dashboard links pointed at the staging explorer.\n",
			},
			notContains: []string{"## Release"},
		},
		"markdown of empty release": {
			args:     []string{"show", "unreleased", "--markdown"},
			contains: []string{"No changelog entries found."},
		},
		"markdown without release": {
			args:     []string{"show", "--markdown"},
			wantCode: ExitInvalidArguments,
		},
		"oneline and markdown": {
			args:     []string{"show", "2021-01-12", "--markdown", "--oneline"},
			wantCode: ExitInvalidArguments,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			workspace(t)
			stdout, stderr, code := runCLI(t, tt.args...)
			assert.Equal(t, tt.wantCode, code, stderr)
			for _, s := range tt.contains {
				assert.Contains(t, stdout, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, stdout, s)
			}
		})
	}
}

func TestShow_UnknownReleaseListsAvailable(t *testing.T) {
	workspace(t)
	_, stderr, code := runCLI(t, "show", "2020-01-01")
	assert.Equal(t, ExitInvalidArguments, code)
	assert.Contains(t, stderr, "Available releases: Unreleased, 2021-01-12")
}
