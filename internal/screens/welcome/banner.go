package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/ui/theme"
)

const bannerArt = `
  ██████   ██████   █████  ██      ██ ███████ ██    ██
 ██       ██    ██ ██   ██ ██      ██ ██       ██  ██
 ██   ███ ██    ██ ███████ ██      ██ █████     ████
 ██    ██ ██    ██ ██   ██ ██      ██ ██         ██
  ██████   ██████  ██   ██ ███████ ██ ██         ██`

const bannerCompact = "G O A L I F Y"

// RenderBanner returns the banner, or a one-line version below 56 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < 56 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
