package main

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	redSuitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// chipsStyle colors a chip delta by sign.
func chipsStyle(delta int) lipgloss.Style {
	switch {
	case delta > 0:
		return winStyle
	case delta < 0:
		return lossStyle
	}
	return dimStyle
}
