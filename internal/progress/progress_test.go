package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	tests := map[string]struct {
		caps TerminalCapabilities
		want Symbols
	}{
		"unicode terminal": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: Symbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii fallback": {
			caps: TerminalCapabilities{IsTTY: true},
			want: Symbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestSpinner_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinner(&buf, TerminalCapabilities{})

	sp.Start("fetching")
	assert.Empty(t, buf.String(), "no animation without a terminal")

	sp.Succeed("fetched core.md")
	sp.Fail("timed out")
	assert.Equal(t, "[OK] fetched core.md\n[FAIL] timed out\n", buf.String())
}

func TestDetectTerminalCapabilities_ASCIIOverride(t *testing.T) {
	t.Setenv("CHANGELINT_ASCII", "1")
	caps := DetectTerminalCapabilities()
	assert.False(t, caps.SupportsUnicode)
}
