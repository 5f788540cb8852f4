package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/ui/theme"
)

// ContentWidth is the width every dashboard card is rendered at, so the
// cards line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// Card wraps content in a rounded border at content width cw.
func Card(title, content string, cw int) string {
	if title != "" {
		content = theme.Title.Render(title) + "\n" + content
	}
	return theme.Card.Width(cw).Render(content)
}

// Centered places block in the middle of a width x height area.
func Centered(block string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
