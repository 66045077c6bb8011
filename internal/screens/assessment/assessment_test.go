package assessment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/router"
	"github.com/abhisek/aipath/internal/screen"
	"github.com/abhisek/aipath/internal/store"
)

// recordingRepo captures appended assessments; other methods are unused.
type recordingRepo struct {
	store.EventRepo
	saved []store.AssessmentEventData
	err   error
}

func (r *recordingRepo) AppendAssessment(_ context.Context, data store.AssessmentEventData) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, data)
	return nil
}

type stubScreen struct{ c Completion }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "result" }
func (s *stubScreen) Title() string                           { return "Result" }

func press(s screen.Screen, keys ...string) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		s, cmd = s.Update(keyMsg(k))
	}
	return s, cmd
}

func keyMsg(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	return tea.KeyPressMsg{Code: []rune(k)[0], Text: k}
}

func newTestScreen(repo store.EventRepo) (*AssessmentScreen, *[]Completion) {
	var done []Completion
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := New(Options{
		Repo: repo,
		OnComplete: func(c Completion) screen.Screen {
			done = append(done, c)
			return &stubScreen{c: c}
		},
		Now: func() time.Time {
			clock = clock.Add(30 * time.Second)
			return clock
		},
	})
	s.Init()
	return s, &done
}

func TestStartsOnFirstQuestion(t *testing.T) {
	s, _ := newTestScreen(nil)
	st := s.State()
	if st.Index() != 0 || st.CanProceed() {
		t.Fatalf("index %d canProceed %v", st.Index(), st.CanProceed())
	}
	view := s.View(100, 30)
	for _, want := range []string{"Question 1 of 4", "25% Complete", "What aspects of AI interest you most?"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestNextRequiresAnswer(t *testing.T) {
	s, _ := newTestScreen(nil)
	press(s, "right")
	if s.State().Index() != 0 {
		t.Error("advanced without an answer")
	}
}

func TestNumberKeySelectsAndRightAdvances(t *testing.T) {
	s, _ := newTestScreen(nil)

	press(s, "2")
	if v, ok := s.State().Selected(); !ok || v != "data" {
		t.Fatalf("selected = %q %v, want data", v, ok)
	}
	press(s, "right")
	if s.State().Index() != 1 {
		t.Errorf("index = %d, want 1", s.State().Index())
	}
	if !strings.Contains(s.View(100, 30), "50% Complete") {
		t.Error("expected 50% Complete on question 2")
	}
}

func TestArrowThenEnterChooses(t *testing.T) {
	s, _ := newTestScreen(nil)

	press(s, "down", "down", "enter")
	if v, _ := s.State().Selected(); v != "language" {
		t.Errorf("selected = %q, want language", v)
	}
	if s.State().Index() != 0 {
		t.Error("first enter should only choose")
	}
	press(s, "enter")
	if s.State().Index() != 1 {
		t.Error("second enter on the chosen option should advance")
	}
}

func TestPreviousKeepsAnswers(t *testing.T) {
	s, _ := newTestScreen(nil)

	press(s, "1", "right", "3", "left")
	if s.State().Index() != 0 {
		t.Fatalf("index = %d, want 0", s.State().Index())
	}
	if s.radio.Chosen != 0 {
		t.Errorf("radio chosen = %d, want restored 0", s.radio.Chosen)
	}
	press(s, "right")
	if s.radio.Chosen != 2 {
		t.Errorf("radio chosen on q2 = %d, want restored 2", s.radio.Chosen)
	}
	press(s, "left", "left")
	if s.State().Index() != 0 {
		t.Error("previous on first question must be a no-op")
	}
}

func TestChangingAnswer(t *testing.T) {
	s, _ := newTestScreen(nil)
	press(s, "1", "4")
	if v, _ := s.State().Selected(); v != "applications" {
		t.Errorf("selected = %q, want applications", v)
	}
}

func TestCompletion(t *testing.T) {
	repo := &recordingRepo{}
	s, done := newTestScreen(repo)

	// research, expert, theoretical, understand
	press(s, "1", "right", "4", "right", "1", "right")
	if !strings.Contains(s.View(100, 30), "Get My Results") {
		t.Error("last question should offer Get My Results")
	}
	_, cmd := press(s, "1", "right")
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	if len(*done) != 1 {
		t.Fatalf("OnComplete calls = %d, want 1", len(*done))
	}

	c := (*done)[0]
	if c.Result.Career != careers.Researcher {
		t.Errorf("career = %v, want researcher", c.Result.Career)
	}
	if c.Answered != 4 || c.ID == "" {
		t.Errorf("completion = %+v", c)
	}
	if c.Duration != 30*time.Second {
		t.Errorf("duration = %v, want 30s", c.Duration)
	}

	msg := cmd()
	replace, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if replace.Screen.Title() != "Result" {
		t.Errorf("replacement = %q", replace.Screen.Title())
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved = %d, want 1", len(repo.saved))
	}
	saved := repo.saved[0]
	if saved.Career != "researcher" || saved.AssessmentID != c.ID || saved.Scores["researcher"] != 12 {
		t.Errorf("saved = %+v", saved)
	}
	if saved.DurationMs != 30000 {
		t.Errorf("duration ms = %d", saved.DurationMs)
	}

	// Further input is ignored once finished.
	if _, cmd := press(s, "right"); cmd != nil {
		t.Error("finished screen should ignore input")
	}
	if len(*done) != 1 {
		t.Error("completion must run once")
	}
}

func TestCompletionRepoErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &recordingRepo{err: errors.New("disk full")}

	s := New(Options{
		Repo:       repo,
		Log:        zap.New(core),
		OnComplete: func(c Completion) screen.Screen { return &stubScreen{c: c} },
	})
	s.Init()
	_, cmd := press(s, "1", "right", "1", "right", "1", "right", "1", "right")
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("repo failure must not block the result screen")
	}
	if logs.FilterMessage("failed to record assessment").Len() != 1 {
		t.Error("expected a warning about the failed write")
	}
}

func TestEscPops(t *testing.T) {
	s, _ := newTestScreen(nil)
	_, cmd := press(s, "esc")
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestKeyHints(t *testing.T) {
	s, _ := newTestScreen(nil)
	hasKey := func(key string) bool {
		for _, h := range s.KeyHints() {
			if h.Key == key {
				return true
			}
		}
		return false
	}
	if hasKey("→") || hasKey("←") {
		t.Error("no next/back hints on an unanswered first question")
	}
	press(s, "1", "right")
	if !hasKey("←") {
		t.Error("expected back hint on question 2")
	}
}
