package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	tab       lipgloss.Style
	activeTab lipgloss.Style
	mode      lipgloss.Style
	label     lipgloss.Style
	result    lipgloss.Style
	err       lipgloss.Style
	muted     lipgloss.Style
	selected  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#7F848E")),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(lipgloss.Color("#C678DD")),
		mode:      lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF")),
		result:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379")),
		err:       lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#7F848E")),
		selected:  lipgloss.NewStyle().Bold(true),
	}
}
