package summary

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	source   lipgloss.Style
	detail   lipgloss.Style
	warning  lipgloss.Style
	failure  lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	channel  lipgloss.Style
	orphan   lipgloss.Style
	exchange lipgloss.Style
	payload  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		source:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		failure:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		channel:  lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		orphan:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		exchange: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		payload:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
