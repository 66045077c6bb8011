package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aipath/internal/ui/theme"
)

const bannerArt = `
  █████╗ ██╗    ██████╗  █████╗ ████████╗██╗  ██╗
 ██╔══██╗██║    ██╔══██╗██╔══██╗╚══██╔══╝██║  ██║
 ███████║██║    ██████╔╝███████║   ██║   ███████║
 ██╔══██║██║    ██╔═══╝ ██╔══██║   ██║   ██╔══██║
 ██║  ██║██║    ██║     ██║  ██║   ██║   ██║  ██║
 ╚═╝  ╚═╝╚═╝    ╚═╝     ╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝`

const bannerCompact = "A I · P A T H"

// RenderBanner returns the banner styled in the primary color, falling back
// to a single line below 52 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
