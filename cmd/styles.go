package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles renders terminal output. Colors are dropped when w is not a
// terminal, when NO_COLOR is set, or when noColor is requested.
type styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Faint  lipgloss.Style

	profile termenv.Profile
}

func newStyles(w io.Writer, noColor bool) styles {
	out := termenv.NewOutput(w)
	profile := out.EnvColorProfile()
	if noColor {
		profile = termenv.Ascii
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return styles{
		Title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Header: r.NewStyle().Bold(true).Underline(true),
		Faint:  r.NewStyle().Faint(true),

		profile: profile,
	}
}

// failed renders s in red.
func (st styles) failed(s string) string {
	return st.profile.String(s).Foreground(st.profile.Color("196")).String()
}
