package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aipath/internal/ui/theme"
)

const titleFull = `  █████╗ ██╗    ██████╗  █████╗ ████████╗██╗  ██╗
 ██╔══██╗██║    ██╔══██╗██╔══██╗╚══██╔══╝██║  ██║
 ███████║██║    ██████╔╝███████║   ██║   ███████║
 ██╔══██║██║    ██╔═══╝ ██╔══██║   ██║   ██╔══██║
 ██║  ██║██║    ██║     ██║  ██║   ██║   ██║  ██║
 ╚═╝  ╚═╝╚═╝    ╚═╝     ╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝`

const titleCompact = "A I · P A T H"

const (
	headline = "Discover Your Perfect AI Career Path"
	tagline  = "Answer four quick questions and get a personalised recommendation."
)

// feature is one of the cards under the headline.
type feature struct {
	icon, title, body string
}

var features = []feature{
	{"◎", "Smart Assessment", "Four questions about how you like to work"},
	{"◆", "Personalized Results", "A match score for every AI career"},
	{"➜", "Career Guidance", "Key skills and concrete next steps"},
}

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6 // frame border + padding
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact || cw < 52 {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

func renderHeadline(cw int) string {
	h := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(headline)
	t := lipgloss.NewStyle().Foreground(theme.TextDim).Render(tagline)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(h + "\n" + t)
}

// renderFeatures lays the cards side by side, or as one line each when
// compact.
func renderFeatures(cw int, compact bool) string {
	if compact {
		var lines []string
		for _, f := range features {
			lines = append(lines,
				lipgloss.NewStyle().Foreground(theme.Secondary).Render(f.icon+" "+f.title))
		}
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(strings.Join(lines, "   "))
	}

	cardWidth := (cw - 2*len(features)) / len(features)
	cards := make([]string, 0, len(features))
	for _, f := range features {
		title := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(f.icon + " " + f.title)
		body := lipgloss.NewStyle().Foreground(theme.TextDim).Render(f.body)
		cards = append(cards, lipgloss.NewStyle().
			Width(cardWidth).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Align(lipgloss.Center).
			Padding(0, 1).
			Render(title+"\n"+body))
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

// renderStatsBar shows how many assessments were taken and the latest
// recommendation.
func renderStatsBar(taken int, latest string, cw int) string {
	count := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	last := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var stats string
	switch {
	case taken == 0:
		stats = dim.Render("No assessments yet")
	case latest == "":
		stats = count.Render(fmt.Sprintf("%d TAKEN", taken))
	default:
		stats = count.Render(fmt.Sprintf("%d TAKEN", taken)) + dim.Render("  ·  LAST: ") + last.Render(strings.ToUpper(latest))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Frame).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Highlight).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := normalBtn.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderNote renders a dim one-line notice.
func renderNote(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}
