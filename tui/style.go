package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tomato-timer/tomato/internal/config"
	"github.com/tomato-timer/tomato/internal/engine"
)

const (
	padding  = 2
	maxWidth = 80
)

type styles struct {
	base      lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	notice    lipgloss.Style
	modes     map[engine.Mode]lipgloss.Style
}

func newStyles(cfg *config.Config) styles {
	text := lipgloss.Color("#333333")
	muted := lipgloss.Color("#777777")

	if cfg.Display.DarkTheme {
		text = lipgloss.Color("#FAFAFA")
		muted = lipgloss.Color("#888888")
	}

	s := styles{
		base:      lipgloss.NewStyle().Padding(1, padding),
		main:      lipgloss.NewStyle().Bold(true).Foreground(text),
		secondary: lipgloss.NewStyle().Foreground(text),
		hint:      lipgloss.NewStyle().Foreground(muted),
		notice:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#E5C07B")),
		modes:     make(map[engine.Mode]lipgloss.Style, len(engine.Modes)),
	}

	for _, m := range engine.Modes {
		s.modes[m] = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E1E")).
			Background(lipgloss.Color(cfg.Session(m).Color)).
			Padding(0, 1).
			MarginRight(1)
	}

	return s
}
