package render

import "github.com/charmbracelet/lipgloss"

type rowStyler interface {
	Render(...string) string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	rowStyle    = lipgloss.NewStyle()

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000"))
)
