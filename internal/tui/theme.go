package tui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	name     string
	title    lipgloss.Style
	heading  lipgloss.Style
	faint    lipgloss.Style
	accent   lipgloss.Style
	selected lipgloss.Style
	errText  lipgloss.Style
	stars    lipgloss.Style
	chip     lipgloss.Style
	chipOn   lipgloss.Style
}

func newTheme(dark bool) theme {
	fg, muted, accent, hl := lipgloss.Color("252"), lipgloss.Color("244"), lipgloss.Color("212"), lipgloss.Color("57")
	name := "dark"
	if !dark {
		fg, muted, accent, hl = lipgloss.Color("235"), lipgloss.Color("242"), lipgloss.Color("161"), lipgloss.Color("153")
		name = "light"
	}

	return theme{
		name:     name,
		title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		heading:  lipgloss.NewStyle().Bold(true).Foreground(fg).MarginTop(1),
		faint:    lipgloss.NewStyle().Foreground(muted),
		accent:   lipgloss.NewStyle().Foreground(accent),
		selected: lipgloss.NewStyle().Bold(true).Foreground(fg).Background(hl),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		stars:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		chip:     lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		chipOn:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(fg).Background(hl),
	}
}
