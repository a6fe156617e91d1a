package agents

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	column  lipgloss.Style
	agent   lipgloss.Style
	granted lipgloss.Style
	denied  lipgloss.Style
	warning lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		column:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		agent:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		granted: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		denied:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}
