package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/aipath/internal/coach"
	"github.com/abhisek/aipath/internal/router"
	"github.com/abhisek/aipath/internal/scoring"
	"github.com/abhisek/aipath/internal/screen"
	"github.com/abhisek/aipath/internal/screens/assessment"
	"github.com/abhisek/aipath/internal/screens/history"
	"github.com/abhisek/aipath/internal/screens/home"
	"github.com/abhisek/aipath/internal/screens/result"
	"github.com/abhisek/aipath/internal/screens/welcome"
	"github.com/abhisek/aipath/internal/store"
	"github.com/abhisek/aipath/internal/ui/layout"
)

// Options holds the dependencies the TUI needs. Everything except Engine is
// optional.
type Options struct {
	Engine *scoring.Engine
	Repo   store.EventRepo
	Coach  *coach.Service
	Log    *zap.Logger

	// CheckUpdate returns a newer release version, or "" when up to date.
	CheckUpdate func(context.Context) (string, error)

	// ReportDir is where saved reports go when given a relative name.
	ReportDir   string
	SkipWelcome bool
}

type updateAvailableMsg struct {
	version string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	update string
	width  int
	height int
}

// newAppModel creates an AppModel starting on the welcome screen, or on
// home when SkipWelcome is set.
func newAppModel(opts Options) AppModel {
	if opts.Engine == nil {
		opts.Engine = scoring.NewEngine(nil)
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	f := &factory{opts: opts}
	var initial screen.Screen
	if opts.SkipWelcome {
		initial = f.home()
	} else {
		initial = welcome.New(f.home)
	}
	return AppModel{
		router: router.New(initial),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.checkUpdate())
}

// checkUpdate looks for a newer release in the background. Failures are
// logged at debug level and otherwise ignored.
func (m AppModel) checkUpdate() tea.Cmd {
	check, log := m.opts.CheckUpdate, m.opts.Log
	if check == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		v, err := check(ctx)
		if err != nil {
			log.Debug("update check failed", zap.Error(err))
			return nil
		}
		if v == "" {
			return nil
		}
		return updateAvailableMsg{version: v}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case updateAvailableMsg:
		m.update = msg.version
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	// The splash screen draws the whole window.
	if _, ok := active.(*welcome.WelcomeScreen); ok {
		v.SetContent(active.View(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// status is the right-hand side of the header.
func (m AppModel) status() string {
	if m.update != "" {
		return fmt.Sprintf("%s available · aipath update  ", m.update)
	}
	if m.opts.Coach != nil {
		return "AI coach on  "
	}
	return ""
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

// factory builds screens on demand so that screen packages never import
// each other.
type factory struct {
	opts Options
}

func (f *factory) home() screen.Screen {
	opts := home.Options{
		Repo:          f.opts.Repo,
		NewAssessment: f.assessment,
		CoachEnabled:  f.opts.Coach != nil,
	}
	if f.opts.Repo != nil {
		opts.NewHistory = f.history
	}
	return home.New(opts)
}

func (f *factory) assessment() screen.Screen {
	return assessment.New(assessment.Options{
		Engine:     f.opts.Engine,
		Repo:       f.opts.Repo,
		Log:        f.opts.Log,
		OnComplete: f.result,
	})
}

func (f *factory) result(c assessment.Completion) screen.Screen {
	f.opts.Log.Info("assessment complete",
		zap.String("assessment_id", c.ID),
		zap.String("career", c.Result.Career.String()),
		zap.Int("answered", c.Answered),
		zap.Duration("duration", c.Duration))
	return result.New(c.Result, result.Options{
		Coach:  f.opts.Coach,
		Log:    f.opts.Log,
		Retake: f.assessment,
		Dir:    f.opts.ReportDir,
	})
}

func (f *factory) history() screen.Screen {
	return history.New(f.opts.Repo)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
