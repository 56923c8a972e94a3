package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary  = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD700"}
	colorDim      = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorGreen    = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorRed      = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5C57"}
	colorAccent   = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorStatusBg = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	upStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	downStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	bulletStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	sourceStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	p1Style = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	p2Style = lipgloss.NewStyle().
		Foreground(colorPrimary)

	p3Style = lipgloss.NewStyle().
		Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorDim)
)
