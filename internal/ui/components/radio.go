package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aipath/internal/ui/theme"
)

// RadioGroup is a single-choice list. Cursor is the highlighted row and
// Chosen the committed choice, -1 when nothing is chosen.
type RadioGroup struct {
	Options []string
	Cursor  int
	Chosen  int
}

// NewRadioGroup creates a group with chosen preselected (-1 for none).
// The cursor starts on the chosen option, or the first one.
func NewRadioGroup(options []string, chosen int) RadioGroup {
	if chosen < -1 || chosen >= len(options) {
		chosen = -1
	}
	cursor := 0
	if chosen >= 0 {
		cursor = chosen
	}
	return RadioGroup{Options: options, Cursor: cursor, Chosen: chosen}
}

// Update moves the cursor and commits choices. It reports whether the
// chosen option changed.
func (r RadioGroup) Update(msg tea.Msg) (RadioGroup, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Options) == 0 {
		return r, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if r.Cursor > 0 {
			r.Cursor--
		}
		return r, false
	case "down", "j":
		if r.Cursor < len(r.Options)-1 {
			r.Cursor++
		}
		return r, false
	case "enter", "space", " ":
		return r.choose(r.Cursor)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		if i := int(key[0] - '1'); i < len(r.Options) {
			r.Cursor = i
			return r.choose(i)
		}
	}
	return r, false
}

func (r RadioGroup) choose(i int) (RadioGroup, bool) {
	changed := r.Chosen != i
	r.Chosen = i
	return r, changed
}

// View renders one row per option with a radio marker and its number key.
func (r RadioGroup) View(width int) string {
	var b strings.Builder
	for i, opt := range r.Options {
		marker := "( )"
		if i == r.Chosen {
			marker = "(●)"
		}
		cursor := "  "
		if i == r.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s %d. %s", cursor, marker, i+1, opt)

		style := theme.Unselected
		switch {
		case i == r.Chosen:
			style = theme.Chosen
		case i == r.Cursor:
			style = theme.Selected
		}
		b.WriteString(lipgloss.NewStyle().Width(width).Render(style.Render(line)))
		if i < len(r.Options)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
