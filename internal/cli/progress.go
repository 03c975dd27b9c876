package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Progress shows a spinner while a long running step is in flight. A
// disabled Progress does nothing, so callers need no quiet checks.
type Progress struct {
	s *spinner.Spinner
}

// StartProgress starts a spinner writing to w with message as suffix.
func StartProgress(w io.Writer, message string, enabled bool) *Progress {
	if !enabled {
		return &Progress{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	s.Start()
	return &Progress{s: s}
}

// Stop stops the spinner and prints message in green or red.
func (p *Progress) Stop(ok bool, message string) {
	if p.s == nil {
		return
	}
	if message != "" {
		if ok {
			p.s.FinalMSG = text.FgGreen.Sprint(message) + "\n"
		} else {
			p.s.FinalMSG = text.FgRed.Sprint(message) + "\n"
		}
	}
	p.s.Stop()
}

// Active reports whether a spinner is running.
func (p *Progress) Active() bool {
	return p.s != nil && p.s.Active()
}
