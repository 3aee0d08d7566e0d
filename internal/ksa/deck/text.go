package deck

import (
	"strings"

	"github.com/unidoc/unioffice/schema/soo/dml"
)

// ReadText returns the visible text of the target, concatenating every
// run in its text body.
func (d *Deck) ReadText(t *Target) string {
	return bodyText(t.body)
}

// WriteText replaces the target's text with s, preserving formatting: the
// first run keeps its properties and receives the whole string, and every
// later run is cleared to empty text with its properties intact.
func (d *Deck) WriteText(t *Target, s string) {
	setBodyText(t.body, s)
}

func bodyText(tb *dml.CT_TextBody) string {
	var sb strings.Builder
	for _, p := range tb.P {
		for _, run := range p.EG_TextRun {
			if run.R != nil {
				sb.WriteString(run.R.T)
			}
		}
	}
	return sb.String()
}

// setBodyText performs the run-preserving write. A body with no runs at
// all gets a fresh unstyled run appended to its first paragraph.
func setBodyText(tb *dml.CT_TextBody, s string) {
	first := true
	for _, p := range tb.P {
		for _, run := range p.EG_TextRun {
			if run.R == nil {
				continue
			}
			if first {
				run.R.T = s
				first = false
			} else {
				run.R.T = ""
			}
		}
	}
	if !first {
		return
	}

	if len(tb.P) == 0 {
		tb.P = append(tb.P, dml.NewCT_TextParagraph())
	}
	run := dml.NewEG_TextRun()
	run.R = dml.NewCT_RegularTextRun()
	run.R.T = s
	tb.P[0].EG_TextRun = append(tb.P[0].EG_TextRun, run)
}
