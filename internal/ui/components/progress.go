package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/ui/theme"
)

// ProgressBar renders a challenge's percent complete.
type ProgressBar struct {
	Label   string
	Percent int
	Width   int
}

func NewProgressBar(label string, percent, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	const percentWidth = 6 // "  100%"
	barWidth := max(p.Width-lipgloss.Width(out)-percentWidth, 4)

	percent := min(max(p.Percent, 0), 100)
	filled := barWidth * percent / 100

	fill := theme.Secondary
	if percent == 100 {
		fill = theme.Success
	}

	out += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %3d%%", percent))
	return out
}
