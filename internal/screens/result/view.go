package result

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/ui/components"
	"github.com/abhisek/aipath/internal/ui/theme"
)

const (
	heading  = "Your Perfect AI Career Path"
	maxWidth = 76
	nameCol  = 18
)

func (s *ResultScreen) View(width, height int) string {
	cw := max(min(width-4, maxWidth), 20)

	bottom := s.renderBottom(cw)
	vpHeight := height
	if bottom != "" {
		vpHeight -= lipgloss.Height(bottom) + 1
	}

	s.vp.SetWidth(cw)
	s.vp.SetHeight(max(vpHeight, 1))
	s.vp.SetContent(s.renderBody(cw))

	block := s.vp.View()
	if bottom != "" {
		block += "\n\n" + bottom
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func (s *ResultScreen) renderBody(cw int) string {
	p := s.res.Profile
	accent := theme.CareerColor(int(s.res.Career))
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var sections []string
	sections = append(sections, center.Render(theme.Title.Render(heading)))

	name := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("★ " + p.Title + " ★")
	desc := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 8).Align(lipgloss.Center).Render(p.Description)
	sections = append(sections, components.Card(name+"\n\n"+desc, cw))

	sections = append(sections, renderList("Key Skills to Develop", p.Skills, cw))
	sections = append(sections, renderList("Recommended Next Steps", p.NextSteps, cw))
	sections = append(sections, s.renderScores(cw))

	if panel := s.renderCoach(cw); panel != "" {
		sections = append(sections, panel)
	}
	return strings.Join(sections, "\n\n")
}

func renderList(title string, items []string, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render(title))
	num := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	text := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 5)
	for i, item := range items {
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			num.Render(fmt.Sprintf(" %d. ", i+1)), text.Render(item)))
	}
	return b.String()
}

// renderScores draws one bar per career, highest first, scaled to the
// best score.
func (s *ResultScreen) renderScores(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Match Scores"))

	maxScore := s.res.Scores.Max()
	for _, st := range s.res.Scores.Ranked() {
		label := careers.DisplayName(st.Career)
		style := lipgloss.NewStyle().Foreground(theme.Text).Width(nameCol)
		if st.Career == s.res.Career {
			style = style.Foreground(theme.CareerColor(int(st.Career))).Bold(true)
		}

		bar := components.NewProgressBar("", s.res.Scores.Fraction(st.Career), cw-nameCol-1)
		bar.Fill = theme.CareerColor(int(st.Career))
		bar.Suffix = fmt.Sprintf("%2d/%d", st.Score, maxScore)

		b.WriteString("\n")
		b.WriteString(style.Render(label) + " " + bar.View())
	}
	return b.String()
}

func (s *ResultScreen) renderCoach(cw int) string {
	switch {
	case s.coaching:
		return s.spin.View() + " " + theme.Hint.Render("Asking your AI coach...")
	case s.coachErr != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Width(cw).
			Render("AI coach unavailable: " + s.coachErr + " (press c to try again)")
	case s.advice == nil:
		return ""
	}

	a := s.advice
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 8)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("✦ AI Coach"))
	b.WriteString("\n\n")
	b.WriteString(body.Render(a.Summary))
	for _, act := range a.Actions {
		b.WriteString("\n")
		b.WriteString(body.Render("• " + act))
	}
	if len(a.Resources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Heading.Render("Resources"))
		for _, r := range a.Resources {
			b.WriteString("\n")
			b.WriteString(body.Render(fmt.Sprintf("• %s (%s)", r.Name, r.Kind)))
		}
	}
	if a.Watchout != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Width(cw - 8).Render("Watch out: " + a.Watchout))
	}
	return components.Card(b.String(), cw)
}

// renderBottom renders the save prompt or the last notice, pinned below
// the scrolling body.
func (s *ResultScreen) renderBottom(cw int) string {
	var parts []string
	if s.mode == modeSave {
		parts = append(parts, theme.Heading.Render("Save report as"), s.input.View())
	}
	if s.notice != "" {
		color := theme.Success
		if s.noticeErr {
			color = theme.Error
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(color).Width(cw).Render(s.notice))
	}
	return strings.Join(parts, "\n")
}
