package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows an animated status line while work is in progress. On a
// non-TTY it prints nothing until Succeed or Fail, which print one line.
type Spinner struct {
	out     io.Writer
	symbols Symbols
	s       *spinner.Spinner
}

// NewSpinner creates a spinner that writes to out.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	symbols := SelectSymbols(caps)
	sp := &Spinner{out: out, symbols: symbols}
	if caps.IsTTY {
		sp.s = spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(out))
		if caps.SupportsColor {
			_ = sp.s.Color("cyan")
		}
	}
	return sp
}

// Start begins animating with msg as the suffix.
func (p *Spinner) Start(msg string) {
	if p.s == nil {
		return
	}
	p.s.Suffix = " " + msg
	p.s.Start()
}

// Succeed stops the spinner and prints msg with a checkmark.
func (p *Spinner) Succeed(msg string) {
	p.finish(p.symbols.Checkmark, msg)
}

// Fail stops the spinner and prints msg with a failure mark.
func (p *Spinner) Fail(msg string) {
	p.finish(p.symbols.Failure, msg)
}

func (p *Spinner) finish(mark, msg string) {
	if p.s != nil {
		p.s.Stop()
	}
	fmt.Fprintf(p.out, "%s %s\n", mark, msg)
}
