package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cbegin/morsewave-go/internal/theme"
)

type styles struct {
	title  lipgloss.Style
	text   lipgloss.Style
	morse  lipgloss.Style
	active lipgloss.Style
	past   lipgloss.Style
	future lipgloss.Style
	faint  lipgloss.Style
	err    lipgloss.Style
}

func newStyles(th theme.Theme) styles {
	primary := lipgloss.Color(th.Primary)
	secondary := lipgloss.Color(th.Secondary)
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(primary),
		text:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		morse:  lipgloss.NewStyle().Foreground(secondary),
		active: lipgloss.NewStyle().Bold(true).Foreground(primary),
		past:   lipgloss.NewStyle().Faint(true).Foreground(secondary),
		future: lipgloss.NewStyle().Foreground(secondary),
		faint:  lipgloss.NewStyle().Faint(true),
		err:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}
