package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aipath/internal/ui/theme"
)

// CabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// Placeholder renders a centered dim message, used for loading and empty
// states.
func Placeholder(msg string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render("\n\n" + msg)
}

// ErrorBox renders a centered error with a hint to go back.
func ErrorBox(msg string, width int) string {
	title := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Something went wrong")
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-4, 60)).Render(msg)
	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to go back")
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("\n\n" + title + "\n\n" + body + "\n\n" + hint)
}
