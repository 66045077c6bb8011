package home

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aipath/internal/router"
	"github.com/abhisek/aipath/internal/screen"
	"github.com/abhisek/aipath/internal/store"
)

type fakeRepo struct {
	store.EventRepo
	counts []store.CareerCount
	recent []store.AssessmentRecord
	err    error
}

func (f *fakeRepo) CareerCounts(context.Context) ([]store.CareerCount, error) {
	return f.counts, f.err
}

func (f *fakeRepo) QueryAssessments(context.Context, store.QueryOpts) ([]store.AssessmentRecord, error) {
	return f.recent, f.err
}

type named string

func (n named) Init() tea.Cmd                           { return nil }
func (n named) Update(tea.Msg) (screen.Screen, tea.Cmd) { return n, nil }
func (n named) View(int, int) string                    { return string(n) }
func (n named) Title() string                           { return string(n) }

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func fullOptions(repo store.EventRepo) Options {
	return Options{
		Repo:          repo,
		NewAssessment: func() screen.Screen { return named("Assessment") },
		NewHistory:    func() screen.Screen { return named("History") },
	}
}

func TestMenuLabels(t *testing.T) {
	h := New(fullOptions(&fakeRepo{}))
	assert.Equal(t, []string{LabelStart, LabelHistory, LabelExit}, h.menu.Labels())
	assert.Empty(t, h.menu.DisabledSet())
}

func TestHistoryDisabledWithoutRepo(t *testing.T) {
	h := New(fullOptions(nil))
	assert.True(t, h.menu.DisabledSet()[1])
	assert.Nil(t, h.Init())

	// down skips the disabled entry
	h.Update(keyPress("down"))
	assert.Equal(t, 2, h.menu.Selected)
}

func TestEnterPushesAssessment(t *testing.T) {
	h := New(fullOptions(nil))
	_, cmd := h.Update(keyPress("enter"))
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Assessment", push.Screen.Title())
}

func TestStartShortcut(t *testing.T) {
	h := New(fullOptions(nil))
	h.Update(keyPress("down"))
	_, cmd := h.Update(keyPress("s"))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PushScreenMsg)
	assert.True(t, ok)
}

func TestHistoryPushed(t *testing.T) {
	h := New(fullOptions(&fakeRepo{}))
	h.Update(keyPress("down"))
	_, cmd := h.Update(keyPress("enter"))
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "History", push.Screen.Title())
}

func TestStatsLoaded(t *testing.T) {
	repo := &fakeRepo{
		counts: []store.CareerCount{{Career: "researcher", Count: 2}, {Career: "nlp_engineer", Count: 1}},
		recent: []store.AssessmentRecord{{AssessmentEventData: store.AssessmentEventData{Career: "nlp_engineer"}}},
	}
	h := New(fullOptions(repo))
	cmd := h.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, statsLoadedMsg{taken: 3, latest: "NLP Engineer"}, msg)

	h.Update(msg)
	view := h.View(120, 40)
	assert.Contains(t, view, "3 TAKEN")
	assert.Contains(t, view, "NLP ENGINEER")
}

func TestStatsErrorShowsEmpty(t *testing.T) {
	h := New(fullOptions(&fakeRepo{err: errors.New("boom")}))
	h.Update(h.Init()())
	assert.Contains(t, h.View(120, 40), "No assessments yet")
}

func TestViewNotes(t *testing.T) {
	opts := fullOptions(nil)
	opts.CoachEnabled = true
	view := New(opts).View(120, 40)

	assert.Contains(t, view, "Discover Your Perfect AI Career Path")
	assert.Contains(t, view, "AI coaching is on")
	assert.False(t, strings.Contains(view, "TAKEN"), "no stats bar without a repo")
}
