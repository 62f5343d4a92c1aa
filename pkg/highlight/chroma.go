package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	htmlformat "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HTML highlights text as HTML using chroma. Construct it only when the
// highlighting capability is enabled; callers otherwise fall back to Plain.
type HTML struct {
	style     *chroma.Style
	formatter *htmlformat.Formatter
}

// NewHTML creates an HTML highlighter with the named chroma style. An unknown
// or empty style name selects chroma's fallback style.
func NewHTML(styleName string) *HTML {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &HTML{
		style:     style,
		formatter: htmlformat.New(htmlformat.WithClasses(true)),
	}
}

// Highlight implements Highlighter. Tokenization or formatting failures
// degrade to the Plain rendering rather than surfacing an error.
func (h *HTML) Highlight(text, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return Plain{}.Highlight(text, lang)
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return Plain{}.Highlight(text, lang)
	}
	return b.String()
}

// Stylesheet implements Highlighter.
func (h *HTML) Stylesheet() string {
	var b strings.Builder
	if err := h.formatter.WriteCSS(&b, h.style); err != nil {
		return ""
	}
	return b.String()
}
