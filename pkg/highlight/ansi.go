package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ANSI highlights text for terminal sinks using lipgloss styles. On terminals
// without color support it behaves like unstyled preformatted text.
type ANSI struct {
	profile  termenv.Profile
	location lipgloss.Style
	function lipgloss.Style
}

// NewANSI creates a terminal highlighter using the color profile detected
// from the environment.
func NewANSI() *ANSI {
	return &ANSI{
		profile:  termenv.EnvColorProfile(),
		location: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		function: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	}
}

// Highlight implements Highlighter. Trace lines indented with a tab are
// treated as file locations, the rest as function names.
func (a *ANSI) Highlight(text, _ string) string {
	if a.profile == termenv.Ascii {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "\t") {
			lines[i] = a.location.Render(line)
		} else {
			lines[i] = a.function.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// Stylesheet implements Highlighter. ANSI markup is self-contained.
func (*ANSI) Stylesheet() string { return "" }
