// Package report assembles the delivery document for one fault occurrence:
// the rendered fields plus application metadata, with sensitive data redacted
// before the text leaves the process.
package report

import (
	"html"
	"regexp"
	"strings"
	"text/template"
	"time"

	ferrors "github.com/relicta-tech/faultline/internal/errors"
	"github.com/relicta-tech/faultline/pkg/fault"
	"github.com/relicta-tech/faultline/pkg/format"
)

// Document is the unit handed to delivery sinks.
type Document struct {
	// Title is the rendered title line.
	Title string
	// Summary is the one-line rendered summary.
	Summary string
	// Detail is the rendered detail markup.
	Detail string
	// Origin is the rendered origin/trace markup.
	Origin string

	// ID is the occurrence identifier.
	ID string
	// Kind is the fault kind name.
	Kind string
	// App and Version identify the reporting application.
	App     string
	Version string
	// Time is when the fault was captured.
	Time time.Time
}

// New builds a document from a translation and its source report.
func New(tr format.Translation, rep *fault.Report, app, version string) *Document {
	d := &Document{
		Title:   tr.Title,
		Summary: tr.Summary,
		Detail:  tr.Detail,
		Origin:  tr.Origin,
		App:     app,
		Version: version,
		Time:    time.Now(),
	}
	if rep != nil {
		d.ID = rep.ID()
		d.Kind = rep.Kind().Name()
		d.Time = rep.CapturedAt()
	}
	return d
}

var textTemplate = template.Must(template.New("report").Parse(`-- Description ----------------------------------------------------------------
An error occurred in '{{.App}} {{.Version}}' on {{.Time.Format "Mon Jan _2 15:04:05 2006"}}
{{.Summary}}

-- Details --------------------------------------------------------------------
{{.Detail}}

-- Origin ---------------------------------------------------------------------
{{.Origin}}
-------------------------------------------------------------------------------
`))

// textView is the data handed to the text template: the detail and origin
// fields carry display markup, so text delivery uses their plain conversions.
type textView struct {
	App     string
	Version string
	Time    time.Time
	Summary string
	Detail  string
	Origin  string
}

// Text renders the document as the plain-text report sent to mail, clipboard,
// and fallback sinks. Sensitive tokens are redacted.
func (d *Document) Text() string {
	view := textView{
		App:     d.App,
		Version: d.Version,
		Time:    d.Time,
		Summary: d.Summary,
		Detail:  plainText(d.Detail),
		Origin:  plainText(d.Origin),
	}
	var b strings.Builder
	if err := textTemplate.Execute(&b, view); err != nil {
		// Template data is the document itself; execution cannot
		// realistically fail, but a report must never be lost.
		return ferrors.RedactSensitive(d.Title + "\n" + d.Summary + "\n")
	}
	return ferrors.RedactSensitive(b.String())
}

var (
	styleBlockPattern = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	lineBreakPattern  = regexp.MustCompile(`(?i)</pre>|</p>|<br\s*/?>|<hr\s*/?>`)
	markupTagPattern  = regexp.MustCompile(`<[^>]*>`)
)

// plainText converts field markup to its plain-text form: embedded
// stylesheets are dropped, block ends become line breaks, remaining tags are
// removed, and entities are unescaped.
func plainText(markup string) string {
	s := styleBlockPattern.ReplaceAllString(markup, "")
	s = lineBreakPattern.ReplaceAllString(s, "\n")
	s = markupTagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}
