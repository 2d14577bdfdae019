package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors
var (
	colorOK    = lipgloss.Color("#10B981")
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
	colorTitle = lipgloss.Color("#7C3AED")
)

type styles struct {
	title lipgloss.Style
	file  lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
	muted lipgloss.Style
}

// newStyles returns styles rendered for w. Without color every style renders
// plain text.
func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		title: r.NewStyle().Bold(true).Foreground(colorTitle),
		file:  r.NewStyle().Bold(true),
		ok:    r.NewStyle().Foreground(colorOK),
		fail:  r.NewStyle().Foreground(colorError).Bold(true),
		muted: r.NewStyle().Foreground(colorMuted),
	}
}
