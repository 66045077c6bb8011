package assessment

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aipath/internal/ui/components"
	"github.com/abhisek/aipath/internal/ui/theme"
)

const maxWidth = 72

func (s *AssessmentScreen) View(width, height int) string {
	cw := min(width-4, maxWidth)
	q := s.state.Current()

	var b strings.Builder

	// Question N of M ............ P% Complete
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Question %d of %d", s.state.Index()+1, s.state.Total()))
	right := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(components.PercentLabel(s.state.Progress()) + " Complete")
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	b.WriteString(left + strings.Repeat(" ", gap) + right)
	b.WriteString("\n")

	bar := components.NewProgressBar("", s.state.Progress(), cw)
	bar.Fill = theme.Primary
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(prompt)
	b.WriteString("\n\n")

	b.WriteString(components.Card(s.radio.View(cw-8), cw))
	b.WriteString("\n\n")

	b.WriteString(s.renderNav(cw))

	block := b.String()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// renderNav renders the Previous and Next buttons at opposite edges.
func (s *AssessmentScreen) renderNav(cw int) string {
	nextLabel := "Next →"
	if s.state.IsLast() {
		nextLabel = "Get My Results"
	}
	prev := components.NavButton{Label: "← Previous", Enabled: !s.state.IsFirst()}.View()
	next := components.NavButton{Label: nextLabel, Enabled: s.state.CanProceed()}.View()

	prevBlock := lipgloss.NewStyle().Width(cw / 2).Align(lipgloss.Left).Render(prev)
	nextBlock := lipgloss.NewStyle().Width(cw - cw/2).Align(lipgloss.Right).Render(next)
	return lipgloss.JoinHorizontal(lipgloss.Center, prevBlock, nextBlock)
}
