package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/ui/theme"
)

// ChallengeSummary renders a challenge's title, difficulty, progress and
// daily tasks at the given inner width.
func ChallengeSummary(c challenge.Challenge, width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Title))
	b.WriteString("  ")
	b.WriteString(theme.DifficultyBadge(c.Difficulty))
	b.WriteString("\n")
	if c.Description != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(width).Render(c.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(NewProgressBar("", c.Progress, width).View())
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d days · %d left", c.Duration, c.DaysRemaining)))

	if len(c.DailyTasks) > 0 {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Daily tasks"))
		for _, task := range c.DailyTasks {
			b.WriteString("\n  • ")
			b.WriteString(task)
		}
	}
	return b.String()
}
