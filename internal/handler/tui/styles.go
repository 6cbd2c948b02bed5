package tui

import "github.com/charmbracelet/lipgloss"

var (
	// ContainerStyle is the full-screen root region around the dashboard.
	ContainerStyle = lipgloss.NewStyle().
			Padding(1, 2)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Italic(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1)
)
