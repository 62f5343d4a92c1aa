package format

import (
	"fmt"
	"html"

	"github.com/relicta-tech/faultline/pkg/fault"
	"github.com/relicta-tech/faultline/pkg/highlight"
)

// traceLang is the language hint handed to the highlighter for stack traces.
const traceLang = "go"

// Default renders any fault: one-line summary, preformatted detail, and the
// full captured trace as origin.
type Default struct {
	hl highlight.Highlighter
}

// NewDefault is the Factory for the default formatter.
func NewDefault(hl highlight.Highlighter) Formatter {
	if hl == nil {
		hl = highlight.Plain{}
	}
	return &Default{hl: hl}
}

// Title implements Formatter.
func (d *Default) Title(rep *fault.Report) string {
	if rep == nil {
		return "Unhandled Error"
	}
	return fmt.Sprintf("Unhandled Error (%s)", rep.Kind().Name())
}

// Summary implements Formatter.
func (d *Default) Summary(rep *fault.Report) string {
	if rep == nil || !rep.HasValue() {
		return "Unhandled Error"
	}
	return fmt.Sprintf("%s: %s", rep.Kind().Name(), rep.Message())
}

// Detail implements Formatter.
func (d *Default) Detail(rep *fault.Report) string {
	return fmt.Sprintf("<html><body><pre>%s</pre></body></html>",
		html.EscapeString(d.Summary(rep)))
}

// Origin implements Formatter.
func (d *Default) Origin(rep *fault.Report) string {
	text := "no trace captured"
	if rep != nil {
		if tr := rep.Trace(); tr != nil {
			text = tr.String()
		}
	}
	return wrapMarkup(d.hl, d.hl.Highlight(text, traceLang))
}

// wrapMarkup embeds rendered body markup in a document carrying the
// highlighter's stylesheet.
func wrapMarkup(hl highlight.Highlighter, body string) string {
	return fmt.Sprintf(
		`<html><head><style type="text/css">%s</style></head><body>%s</body></html>`,
		hl.Stylesheet(), body)
}
