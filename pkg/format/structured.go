package format

import (
	"fmt"
	"html"
	"strings"

	"github.com/relicta-tech/faultline/pkg/fault"
	"github.com/relicta-tech/faultline/pkg/highlight"
)

// DefaultReasonPrefix marks causes whose origin carries an embedded runtime
// trace and should be syntax highlighted.
const DefaultReasonPrefix = "RT_"

// Structured renders multi-cause device faults: one block per cause with a
// separator rule, highlighting origins whose reason code carries a
// recognized prefix.
type Structured struct {
	hl           highlight.Highlighter
	reasonPrefix string
}

// NewStructured is the Factory for the structured formatter with the default
// reason prefix.
func NewStructured(hl highlight.Highlighter) Formatter {
	return NewStructuredPrefix(DefaultReasonPrefix)(hl)
}

// NewStructuredPrefix returns a Factory whose formatters highlight causes
// with the given reason prefix.
func NewStructuredPrefix(prefix string) Factory {
	return func(hl highlight.Highlighter) Formatter {
		if hl == nil {
			hl = highlight.Plain{}
		}
		return &Structured{hl: hl, reasonPrefix: prefix}
	}
}

// Title implements Formatter.
func (s *Structured) Title(rep *fault.Report) string {
	if rep == nil {
		return "Unhandled Error"
	}
	return "Device Error"
}

// Summary implements Formatter. The first cause's description is the most
// user-relevant line; reports without causes fall back to the raw message.
func (s *Structured) Summary(rep *fault.Report) string {
	if rep == nil || !rep.HasValue() {
		return "Unhandled Error"
	}
	if causes := rep.Causes(); len(causes) > 0 {
		return causes[0].Description
	}
	return rep.Message()
}

// Detail implements Formatter.
func (s *Structured) Detail(rep *fault.Report) string {
	var b strings.Builder
	for _, c := range s.causes(rep) {
		origin := c.Origin
		if strings.HasPrefix(c.Reason, s.reasonPrefix) {
			origin = s.hl.Highlight(origin, traceLang)
		} else {
			origin = "<pre>" + html.EscapeString(origin) + "</pre>"
		}
		fmt.Fprintf(&b, "<pre>%s: %s</pre>%s<hr>",
			html.EscapeString(c.Reason), html.EscapeString(c.Description), origin)
	}
	if b.Len() == 0 {
		b.WriteString("<pre>" + html.EscapeString(s.Summary(rep)) + "</pre>")
	}
	return wrapMarkup(s.hl, b.String())
}

// Origin implements Formatter.
func (s *Structured) Origin(rep *fault.Report) string {
	text := "no trace captured"
	if rep != nil {
		if tr := rep.Trace(); tr != nil {
			text = tr.String()
		}
	}
	return wrapMarkup(s.hl, s.hl.Highlight(text, traceLang))
}

func (s *Structured) causes(rep *fault.Report) []fault.Cause {
	if rep == nil {
		return nil
	}
	return rep.Causes()
}
