package agents

import (
	"fmt"
	"strings"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	markGranted = "✓"
	markDenied  = "·"
)

type RenderOptions struct {
	// Source is shown under the title, usually the agents file path.
	Source string
	// Fallback marks a table that came from the built-in defaults.
	Fallback bool
}

func renderView(grants []domain.AgentGrant, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Agent Authorization"),
		s.header.Render(fmt.Sprintf("agents: %d", len(grants))),
	}
	if opts.Source != "" {
		lines = append(lines, s.header.Render("source: "+opts.Source))
	}
	if opts.Fallback {
		lines = append(lines, s.warning.Render("no agents file found, showing built-in defaults"))
	}

	if len(grants) == 0 {
		lines = append(lines, s.empty.Render("No agents are authorized."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, "", renderGrid(grants, s))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderGrid(grants []domain.AgentGrant, s styles) string {
	actions := domain.Actions()

	agentWidth := len("agent")
	for _, grant := range grants {
		agentWidth = max(agentWidth, lipgloss.Width(string(grant.Agent)))
	}

	header := []string{s.column.Render(pad("agent", agentWidth))}
	for _, action := range actions {
		header = append(header, s.column.Render(string(action)))
	}

	rows := []string{strings.Join(header, "  ")}
	for _, grant := range grants {
		granted := make(map[domain.Action]bool, len(grant.Actions))
		for _, action := range grant.Actions {
			granted[action] = true
		}

		cells := []string{s.agent.Render(pad(string(grant.Agent), agentWidth))}
		for _, action := range actions {
			mark, style := markDenied, s.denied
			if granted[action] {
				mark, style = markGranted, s.granted
			}
			cells = append(cells, style.Render(center(mark, len(action))))
		}
		rows = append(rows, strings.Join(cells, "  "))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func pad(value string, width int) string {
	if gap := width - lipgloss.Width(value); gap > 0 {
		return value + strings.Repeat(" ", gap)
	}
	return value
}

func center(value string, width int) string {
	gap := width - lipgloss.Width(value)
	if gap <= 0 {
		return value
	}
	left := gap / 2
	return strings.Repeat(" ", left) + value + strings.Repeat(" ", gap-left)
}
