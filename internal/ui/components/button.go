package components

import (
	"github.com/abhisek/aipath/internal/ui/theme"
)

// NavButton is a labelled navigation control that can be disabled.
type NavButton struct {
	Label   string
	Enabled bool
}

// View renders the button, dimmed when disabled.
func (b NavButton) View() string {
	if b.Enabled {
		return theme.ButtonActive.Render(b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
