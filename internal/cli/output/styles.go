package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// palette holds the colours for one terminal profile.
type palette struct {
	red, yellow, blue, green, grey, purple string
}

var (
	truePalette = palette{
		red:    "#E06C75",
		yellow: "#E5C07B",
		blue:   "#61AFEF",
		green:  "#98C379",
		grey:   "#7F848E",
		purple: "#C678DD",
	}
	ansiPalette = palette{
		red:    "1",
		yellow: "3",
		blue:   "4",
		green:  "2",
		grey:   "8",
		purple: "5",
	}
)

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Result  lipgloss.Style
	Mode    lipgloss.Style
}

// NewStyles builds styles for w. Colour is only used when isTTY is set; the
// palette follows the terminal's colour profile.
func NewStyles(w io.Writer, isTTY bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	profile := termenv.Ascii
	if isTTY {
		profile = termenv.NewOutput(w).EnvColorProfile()
	}
	lr.SetColorProfile(profile)

	p := truePalette
	if profile == termenv.ANSI {
		p = ansiPalette
	}

	return &Styles{
		Error:   lr.NewStyle().Foreground(lipgloss.Color(p.red)).Bold(true),
		Warning: lr.NewStyle().Foreground(lipgloss.Color(p.yellow)),
		Info:    lr.NewStyle().Foreground(lipgloss.Color(p.blue)),
		Success: lr.NewStyle().Foreground(lipgloss.Color(p.green)),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color(p.grey)),
		Bold:    lr.NewStyle().Bold(true),
		Header1: lr.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(p.purple)),
		Header2: lr.NewStyle().Bold(true).Foreground(lipgloss.Color(p.blue)),
		Result:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color(p.green)),
		Mode:    lr.NewStyle().Foreground(lipgloss.Color(p.yellow)),
	}
}
