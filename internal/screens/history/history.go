package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/router"
	"github.com/abhisek/aipath/internal/screen"
	"github.com/abhisek/aipath/internal/store"
	"github.com/abhisek/aipath/internal/ui/components"
	"github.com/abhisek/aipath/internal/ui/layout"
	"github.com/abhisek/aipath/internal/ui/theme"
)

// Limit is the number of assessments loaded.
const Limit = 50

type historyLoadedMsg struct {
	Records []store.AssessmentRecord
	Err     error
}

// HistoryScreen lists past assessments, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	records   []store.AssessmentRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		records, err := repo.QueryAssessments(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Records: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if s.errMsg != "" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter", "space":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return components.ErrorBox(s.errMsg, width)
	}
	if !s.loaded {
		return components.Placeholder("Loading history...", width)
	}
	if len(s.records) == 0 {
		return components.Placeholder("No assessments yet. Take one from the home screen!", width)
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		top := rec.Scores[rec.Career]
		line := fmt.Sprintf("%s%s  %-16s  %2d pts  %d answered",
			prefix, rec.Timestamp.Local().Format("Jan 02, 2006 15:04"), careerName(rec.Career), top, rec.QuestionsAnswered)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderSheet(rec)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderSheet lists every career's score for one record, in enumeration
// order.
func renderSheet(rec store.AssessmentRecord) string {
	var lines []string
	for _, id := range careers.All() {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if id.String() == rec.Career {
			style = lipgloss.NewStyle().Foreground(theme.CareerColor(int(id))).Bold(true)
		}
		lines = append(lines, style.Render(fmt.Sprintf("    %-16s %2d", careers.DisplayName(id), rec.Scores[id.String()])))
	}
	if rec.DurationMs > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("    took %ds  ·  id %s", rec.DurationMs/1000, shortID(rec.AssessmentID))))
	}
	return strings.Join(lines, "\n")
}

func careerName(wire string) string {
	id, err := careers.Parse(wire)
	if err != nil {
		return wire
	}
	return careers.DisplayName(id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
