package result

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/coach"
	"github.com/abhisek/aipath/internal/llm"
	"github.com/abhisek/aipath/internal/router"
	"github.com/abhisek/aipath/internal/scoring"
	"github.com/abhisek/aipath/internal/screen"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func researcher() scoring.Result {
	return scoring.Score(scoring.AnswerSet{
		"interests":   "research",
		"programming": "expert",
		"thinking":    "theoretical",
		"curiosity":   "understand",
	})
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func newScreen(opts Options) *ResultScreen {
	opts.Now = func() time.Time { return fixedNow }
	s := New(researcher(), opts)
	s.Init()
	return s
}

func hintKeys(s *ResultScreen) []string {
	var out []string
	for _, h := range s.KeyHints() {
		out = append(out, h.Key)
	}
	return out
}

func TestViewShowsProfileAndScores(t *testing.T) {
	s := newScreen(Options{})
	view := s.View(100, 80)

	for _, want := range []string{
		"Your Perfect AI Career Path",
		"AI Researcher",
		"Key Skills to Develop",
		"Recommended Next Steps",
		"Match Scores",
		"12/12",
		"Prompt Engineer",
	} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "AI Coach")
}

func TestEscPops(t *testing.T) {
	s := newScreen(Options{})
	_, cmd := s.Update(key("esc"))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

type stub struct{}

func (stub) Init() tea.Cmd                           { return nil }
func (stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return stub{}, nil }
func (stub) View(int, int) string                    { return "" }
func (stub) Title() string                           { return "Assessment" }

func TestRetake(t *testing.T) {
	s := newScreen(Options{})
	_, cmd := s.Update(key("r"))
	assert.Nil(t, cmd, "retake disabled without a factory")
	assert.NotContains(t, hintKeys(s), "r")

	s = newScreen(Options{Retake: func() screen.Screen { return stub{} }})
	assert.Contains(t, hintKeys(s), "r")
	_, cmd = s.Update(key("r"))
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Assessment", replace.Screen.Title())
}

func TestSaveReport(t *testing.T) {
	dir := t.TempDir()
	s := newScreen(Options{Dir: dir})

	s.Update(key("s"))
	assert.Equal(t, "aipath-researcher-2026-03-01.md", s.input.Value())
	assert.Contains(t, s.View(100, 40), "Save report as")

	_, cmd := s.Update(key("enter"))
	require.NotNil(t, cmd)
	msg := cmd()
	s.Update(msg)

	path := filepath.Join(dir, "aipath-researcher-2026-03-01.md")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Your Perfect AI Career Path"))
	assert.Contains(t, string(data), "AI Researcher")

	assert.False(t, s.noticeErr)
	assert.Contains(t, s.View(100, 40), "Saved to")
}

func TestSaveAsJSON(t *testing.T) {
	dir := t.TempDir()
	s := newScreen(Options{Dir: dir})

	s.Update(key("s"))
	s.input.Model.SetValue("out.json")
	_, cmd := s.Update(key("enter"))
	require.NotNil(t, cmd)
	s.Update(cmd())

	data, err := os.ReadFile(filepath.Join(dir, "out.json"))
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "researcher", got["career"])
}

func TestSaveErrors(t *testing.T) {
	s := newScreen(Options{Dir: filepath.Join(t.TempDir(), "missing")})

	s.Update(key("s"))
	s.input.Model.SetValue("   ")
	_, cmd := s.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.True(t, s.noticeErr)
	assert.Equal(t, modeSave, s.mode)

	s.input.Model.SetValue("report.md")
	_, cmd = s.Update(key("enter"))
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.True(t, s.noticeErr)
	assert.Contains(t, s.notice, "create report")
}

func TestSaveCancel(t *testing.T) {
	s := newScreen(Options{})
	s.Update(key("s"))

	_, cmd := s.Update(key("esc"))
	assert.Nil(t, cmd, "esc while saving only closes the prompt")
	assert.Equal(t, modeBrowse, s.mode)

	_, cmd = s.Update(key("esc"))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func adviceJSON() json.RawMessage {
	return json.RawMessage(`{
		"summary": "You think in first principles.",
		"actions": ["Reproduce a classic paper", "Read one paper a week", "Join a reading group"],
		"resources": [{"name": "Distill.pub", "kind": "paper"}],
		"watchout": "Endless reading."
	}`)
}

func TestCoach(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: adviceJSON()})
	s := newScreen(Options{Coach: coach.NewService(mock, coach.DefaultConfig())})
	assert.Contains(t, hintKeys(s), "c")

	_, cmd := s.Update(key("c"))
	require.NotNil(t, cmd)
	assert.True(t, s.coaching)
	assert.Contains(t, s.View(100, 80), "Asking your AI coach")

	// a second press while waiting does nothing
	_, again := s.Update(key("c"))
	assert.Nil(t, again)

	s.Update(s.adviseCmd()())
	assert.False(t, s.coaching)
	require.NotNil(t, s.Advice())
	assert.Equal(t, 1, mock.CallCount())

	view := s.View(100, 80)
	assert.Contains(t, view, "AI Coach")
	assert.Contains(t, view, "You think in first principles.")
	assert.Contains(t, view, "Distill.pub (paper)")
	assert.NotContains(t, hintKeys(s), "c")
}

func TestCoachFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("offline")})
	s := newScreen(Options{Coach: coach.NewService(mock, coach.DefaultConfig())})

	s.Update(key("c"))
	s.Update(s.adviseCmd()())

	assert.Nil(t, s.Advice())
	assert.Contains(t, s.View(100, 80), "AI coach unavailable")
	assert.Contains(t, hintKeys(s), "c", "retry allowed after a failure")
}

func TestCoachDisabled(t *testing.T) {
	s := newScreen(Options{})
	_, cmd := s.Update(key("c"))
	assert.Nil(t, cmd)
	assert.NotContains(t, hintKeys(s), "c")
}

func TestDefaultFilename(t *testing.T) {
	assert.Equal(t, "aipath-nlp-engineer-2026-03-01.md", DefaultFilename(careers.NLPEngineer, fixedNow))
}
