// Package result shows the recommended career once an assessment is done.
package result

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/coach"
	"github.com/abhisek/aipath/internal/report"
	"github.com/abhisek/aipath/internal/router"
	"github.com/abhisek/aipath/internal/scoring"
	"github.com/abhisek/aipath/internal/screen"
	"github.com/abhisek/aipath/internal/ui/components"
	"github.com/abhisek/aipath/internal/ui/layout"
	"github.com/abhisek/aipath/internal/ui/theme"
)

// Options wires optional features into the result screen.
type Options struct {
	Coach  *coach.Service // nil disables the c key
	Log    *zap.Logger
	Retake func() screen.Screen // nil disables the r key

	// Dir is where relative report paths are written. Empty means the
	// working directory.
	Dir string
	Now func() time.Time
}

type mode int

const (
	modeBrowse mode = iota
	modeSave
)

type adviceMsg struct {
	advice *coach.Advice
	err    error
}

type savedMsg struct {
	path string
	err  error
}

// ResultScreen displays a scoring.Result.
type ResultScreen struct {
	opts Options
	res  scoring.Result

	vp    viewport.Model
	spin  spinner.Model
	mode  mode
	input components.TextInput

	notice    string
	noticeErr bool

	coaching bool
	advice   *coach.Advice
	coachErr string
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen for res.
func New(res scoring.Result, opts Options) *ResultScreen {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	spin.Style = spin.Style.Foreground(theme.Accent)
	return &ResultScreen{
		opts: opts,
		res:  res,
		vp:   viewport.New(),
		spin: spin,
	}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Results"
}

// Result returns the displayed result.
func (s *ResultScreen) Result() scoring.Result {
	return s.res
}

// Advice returns the coach advice, if any has arrived.
func (s *ResultScreen) Advice() *coach.Advice {
	return s.advice
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	if s.mode == modeSave {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.opts.Retake != nil {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Retake"})
	}
	hints = append(hints, layout.KeyHint{Key: "s", Description: "Save"})
	if s.canCoach() {
		hints = append(hints, layout.KeyHint{Key: "c", Description: "AI Coach"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *ResultScreen) canCoach() bool {
	return s.opts.Coach != nil && !s.coaching && s.advice == nil
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case adviceMsg:
		s.coaching = false
		if msg.err != nil {
			s.coachErr = msg.err.Error()
			s.opts.Log.Warn("coach request failed",
				zap.String("career", s.res.Career.String()), zap.Error(msg.err))
			return s, nil
		}
		s.advice = msg.advice
		s.coachErr = ""
		return s, nil

	case savedMsg:
		if msg.err != nil {
			s.notice, s.noticeErr = msg.err.Error(), true
			s.opts.Log.Warn("save report failed", zap.Error(msg.err))
		} else {
			s.notice, s.noticeErr = "Saved to "+msg.path, false
			s.opts.Log.Info("report saved", zap.String("path", msg.path))
		}
		return s, nil

	case spinner.TickMsg:
		if !s.coaching {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.mode == modeSave {
			return s.updateSave(msg)
		}
		return s.updateBrowse(msg)
	}
	return s, nil
}

func (s *ResultScreen) updateBrowse(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "r":
		if s.opts.Retake == nil {
			return s, nil
		}
		next := s.opts.Retake()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "s":
		s.mode = modeSave
		s.notice = ""
		s.input = components.NewTextInput("report.md", DefaultFilename(s.res.Career, s.opts.Now()), 40)
		return s, s.input.Init()
	case "c":
		if !s.canCoach() {
			return s, nil
		}
		s.coaching = true
		s.coachErr = ""
		return s, tea.Batch(s.spin.Tick, s.adviseCmd())
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *ResultScreen) updateSave(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeBrowse
		return s, nil
	case "enter":
		name := s.input.Value()
		if name == "" {
			s.notice, s.noticeErr = "Enter a file name", true
			return s, nil
		}
		s.mode = modeBrowse
		return s, s.saveCmd(name)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ResultScreen) adviseCmd() tea.Cmd {
	svc, res := s.opts.Coach, s.res
	return func() tea.Msg {
		advice, err := svc.Advise(context.Background(), res)
		return adviceMsg{advice: advice, err: err}
	}
}

func (s *ResultScreen) saveCmd(name string) tea.Cmd {
	path := name
	if !filepath.IsAbs(path) && s.opts.Dir != "" {
		path = filepath.Join(s.opts.Dir, path)
	}
	r := report.Build(s.res, s.opts.Now())
	return func() tea.Msg {
		return savedMsg{path: path, err: writeReport(path, r)}
	}
}

func writeReport(path string, r report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.Write(f, report.FormatFromPath(path), r); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

// DefaultFilename suggests a markdown report name for career on day at.
func DefaultFilename(career careers.ID, at time.Time) string {
	slug := strings.ReplaceAll(career.String(), "_", "-")
	return fmt.Sprintf("aipath-%s-%s.md", slug, at.Format("2006-01-02"))
}
