// Package assessment is the question-by-question wizard screen.
package assessment

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/aipath/internal/router"
	"github.com/abhisek/aipath/internal/scoring"
	"github.com/abhisek/aipath/internal/screen"
	"github.com/abhisek/aipath/internal/store"
	"github.com/abhisek/aipath/internal/ui/components"
	"github.com/abhisek/aipath/internal/ui/layout"
	"github.com/abhisek/aipath/internal/wizard"
)

// Completion describes a finished assessment.
type Completion struct {
	ID       string
	Result   scoring.Result
	Answered int
	Duration time.Duration
}

// Options wires the screen to the engine, the store and the result screen.
type Options struct {
	Engine *scoring.Engine
	Repo   store.EventRepo // optional
	Log    *zap.Logger

	// OnComplete builds the screen that replaces this one.
	OnComplete func(Completion) screen.Screen

	Now func() time.Time
}

// AssessmentScreen walks the user through the questionnaire.
type AssessmentScreen struct {
	opts     Options
	state    wizard.State
	radio    components.RadioGroup
	started  time.Time
	finished bool
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)

// New creates an AssessmentScreen on the first question.
func New(opts Options) *AssessmentScreen {
	if opts.Engine == nil {
		opts.Engine = scoring.NewEngine(nil)
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &AssessmentScreen{
		opts:  opts,
		state: wizard.New(opts.Engine.Questionnaire()),
	}
	s.syncRadio()
	return s
}

// Init records the start time used for the stored duration.
func (s *AssessmentScreen) Init() tea.Cmd {
	s.started = s.opts.Now()
	return nil
}

func (s *AssessmentScreen) Title() string {
	return "Assessment"
}

// State returns the wizard state.
func (s *AssessmentScreen) State() wizard.State {
	return s.state
}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	next := "Next"
	if s.state.IsLast() {
		next = "Results"
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Choose"},
		{Key: "1-" + string(rune('0'+len(s.radio.Options))), Description: "Pick"},
	}
	if s.state.CanProceed() {
		hints = append(hints, layout.KeyHint{Key: "→", Description: next})
	}
	if !s.state.IsFirst() {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

// syncRadio rebuilds the option list for the current question.
func (s *AssessmentScreen) syncRadio() {
	q := s.state.Current()
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
	}
	chosen := -1
	if v, ok := s.state.Selected(); ok {
		chosen = q.OptionIndex(v)
	}
	s.radio = components.NewRadioGroup(labels, chosen)
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.finished {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "right", "n", "tab":
		return s.advance()
	case "left", "p", "shift+tab":
		s.state = s.state.Prev()
		s.syncRadio()
		return s, nil
	}

	before := s.radio.Chosen
	var changed bool
	s.radio, changed = s.radio.Update(msg)
	if changed {
		opt := s.state.Current().Options[s.radio.Chosen]
		s.state, _ = s.state.Select(opt.Value)
		return s, nil
	}

	// Enter on the option that is already chosen moves on.
	if k := kmsg.String(); k == "enter" && before >= 0 && before == s.radio.Cursor {
		return s.advance()
	}
	return s, nil
}

func (s *AssessmentScreen) advance() (screen.Screen, tea.Cmd) {
	next, done := s.state.Next()
	if done {
		return s, s.finish()
	}
	s.state = next
	s.syncRadio()
	return s, nil
}

// finish scores the answers once, stores the outcome and hands over to
// the result screen.
func (s *AssessmentScreen) finish() tea.Cmd {
	if s.finished || s.opts.OnComplete == nil {
		return nil
	}
	s.finished = true

	answers := s.state.Answers()
	c := Completion{
		ID:       uuid.NewString(),
		Result:   s.opts.Engine.Score(answers),
		Answered: len(answers),
	}
	if !s.started.IsZero() {
		c.Duration = s.opts.Now().Sub(s.started)
	}
	next := s.opts.OnComplete(c)

	repo, log := s.opts.Repo, s.opts.Log
	return func() tea.Msg {
		if repo != nil {
			err := repo.AppendAssessment(context.Background(), store.AssessmentEventData{
				AssessmentID:      c.ID,
				Career:            c.Result.Career.String(),
				Scores:            c.Result.Scores.Map(),
				QuestionsAnswered: c.Answered,
				DurationMs:        c.Duration.Milliseconds(),
			})
			if err != nil {
				log.Warn("failed to record assessment", zap.String("assessment_id", c.ID), zap.Error(err))
			}
		}
		return router.ReplaceScreenMsg{Screen: next}
	}
}
