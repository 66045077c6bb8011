package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestRadioGroup_Navigation(t *testing.T) {
	r := NewRadioGroup([]string{"a", "b", "c"}, -1)
	if r.Cursor != 0 || r.Chosen != -1 {
		t.Fatalf("initial = cursor %d chosen %d", r.Cursor, r.Chosen)
	}

	r, _ = r.Update(key("up"))
	if r.Cursor != 0 {
		t.Errorf("cursor moved above top: %d", r.Cursor)
	}
	r, _ = r.Update(key("down"))
	r, _ = r.Update(key("j"))
	r, _ = r.Update(key("down"))
	if r.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", r.Cursor)
	}
	r, _ = r.Update(key("k"))
	if r.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", r.Cursor)
	}
	if r.Chosen != -1 {
		t.Error("moving must not choose")
	}
}

func TestRadioGroup_Choose(t *testing.T) {
	r := NewRadioGroup([]string{"a", "b", "c"}, -1)

	r, changed := r.Update(key("down"))
	if changed {
		t.Error("navigation reported a change")
	}
	r, changed = r.Update(key("enter"))
	if !changed || r.Chosen != 1 {
		t.Errorf("enter: chosen %d changed %v", r.Chosen, changed)
	}
	r, changed = r.Update(key("space"))
	if changed {
		t.Error("re-choosing the same option is not a change")
	}

	r, changed = r.Update(key("3"))
	if !changed || r.Chosen != 2 || r.Cursor != 2 {
		t.Errorf("digit: chosen %d cursor %d changed %v", r.Chosen, r.Cursor, changed)
	}

	r, changed = r.Update(key("9"))
	if changed || r.Chosen != 2 {
		t.Error("out of range digit must be ignored")
	}
}

func TestRadioGroup_Preselected(t *testing.T) {
	r := NewRadioGroup([]string{"a", "b"}, 1)
	if r.Cursor != 1 || r.Chosen != 1 {
		t.Errorf("preselected = cursor %d chosen %d", r.Cursor, r.Chosen)
	}
	if bad := NewRadioGroup([]string{"a"}, 5); bad.Chosen != -1 {
		t.Errorf("invalid preselection kept: %d", bad.Chosen)
	}
}

func TestRadioGroup_View(t *testing.T) {
	r := NewRadioGroup([]string{"Alpha", "Beta"}, 1)
	v := r.View(40)
	if !strings.Contains(v, "(●) 2. Beta") {
		t.Errorf("chosen marker missing:\n%s", v)
	}
	if !strings.Contains(v, "( ) 1. Alpha") {
		t.Errorf("unchosen marker missing:\n%s", v)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	fired := ""
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Action: func() tea.Cmd { fired = "B"; return nil }},
		{Label: "C", Disabled: true},
		{Label: "D", Action: func() tea.Cmd { fired = "D"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want first enabled (1)", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("enter"))
	if fired != "D" {
		t.Errorf("fired = %q, want D", fired)
	}
	if got := m.DisabledSet(); !got[0] || !got[2] || got[1] {
		t.Errorf("disabled set = %v", got)
	}
	if strings.Join(m.Labels(), "") != "ABCD" {
		t.Errorf("labels = %v", m.Labels())
	}
}

func TestPercentLabel(t *testing.T) {
	tests := map[float64]string{0: "0%", 0.25: "25%", 1.0 / 3: "33%", 2.0 / 3: "67%", 1: "100%"}
	for in, want := range tests {
		if got := PercentLabel(in); got != want {
			t.Errorf("PercentLabel(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestProgressBar_Width(t *testing.T) {
	bar := NewProgressBar("", 0.5, 20)
	bar.Suffix = "6/12"
	v := bar.View()
	if !strings.Contains(v, "6/12") {
		t.Errorf("suffix missing: %q", v)
	}
}
