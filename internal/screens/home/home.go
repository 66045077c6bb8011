package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/router"
	"github.com/abhisek/aipath/internal/screen"
	"github.com/abhisek/aipath/internal/store"
	"github.com/abhisek/aipath/internal/ui/components"
	"github.com/abhisek/aipath/internal/ui/layout"
)

// Options wires the home screen to the rest of the app.
type Options struct {
	// Repo supplies the stats line and enables HISTORY. May be nil.
	Repo store.EventRepo

	// NewAssessment and NewHistory build the screens the menu opens.
	NewAssessment func() screen.Screen
	NewHistory    func() screen.Screen

	// CoachEnabled toggles the note about AI guidance.
	CoachEnabled bool
}

type statsLoadedMsg struct {
	taken  int
	latest string
}

// HomeScreen is the landing page.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	taken  int
	latest string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// Menu labels.
const (
	LabelStart   = "START ASSESSMENT"
	LabelHistory = "HISTORY"
	LabelExit    = "EXIT"
)

// New creates a HomeScreen.
func New(opts Options) *HomeScreen {
	items := []components.MenuItem{
		{Label: LabelStart, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: opts.NewAssessment()}
			}
		}, Disabled: opts.NewAssessment == nil},
		{Label: LabelHistory, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: opts.NewHistory()}
			}
		}, Disabled: opts.Repo == nil || opts.NewHistory == nil},
		{Label: LabelExit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		opts: opts,
		menu: components.NewMenu(items),
	}
}

// Init loads the stats line.
func (h *HomeScreen) Init() tea.Cmd {
	repo := h.opts.Repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		counts, err := repo.CareerCounts(ctx)
		if err != nil {
			return statsLoadedMsg{}
		}
		var msg statsLoadedMsg
		for _, c := range counts {
			msg.taken += c.Count
		}
		recent, err := repo.QueryAssessments(ctx, store.QueryOpts{Limit: 1})
		if err == nil && len(recent) > 0 {
			if id, err := careers.Parse(recent[0].Career); err == nil {
				msg.latest = careers.DisplayName(id)
			}
		}
		return msg
	}
}

// Resume reloads the stats after an assessment or the history screen
// closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.taken = msg.taken
		h.latest = msg.latest
		return h, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return h, tea.Quit
		case "s":
			if !h.menu.Items[0].Disabled {
				return h, h.menu.Items[0].Action()
			}
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to judge
	// the terminal size.
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := termHeight < 36 || layout.IsCompactWidth(width)
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderHeadline(cw))
	sections = append(sections, renderFeatures(cw, compact))

	if h.opts.Repo != nil {
		sections = append(sections, renderStatsBar(h.taken, h.latest, cw))
	}

	labels := h.menu.Labels()
	disabled := h.menu.DisabledSet()
	if layout.IsCompactHeight(termHeight) {
		sections = append(sections, renderMenuCompact(labels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(labels, h.menu.Selected, cw, disabled))
	}

	if h.opts.CoachEnabled {
		sections = append(sections, renderNote("AI coaching is on: press c on your results for personalised advice", cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "s", Description: "Start"},
		{Key: "q", Description: "Quit"},
	}
}
