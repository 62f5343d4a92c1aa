// Package highlight defines the optional syntax-highlighting capability used
// when rendering fault origins. Implementations never fail: anything they
// cannot highlight is returned as escaped preformatted text.
package highlight

import "html"

// Highlighter renders text as display markup, optionally with syntax
// highlighting, and exposes the stylesheet required by its markup.
type Highlighter interface {
	// Highlight renders text for the given language as embeddable markup.
	Highlight(text, lang string) string
	// Stylesheet returns the CSS-like style definitions the markup relies
	// on, or "" when none are needed.
	Stylesheet() string
}

// Plain is the no-op implementation used when no highlighting capability is
// available. It wraps text in an escaped <pre> block.
type Plain struct{}

// Highlight implements Highlighter.
func (Plain) Highlight(text, _ string) string {
	return "<pre>" + html.EscapeString(text) + "</pre>"
}

// Stylesheet implements Highlighter.
func (Plain) Stylesheet() string { return "" }
