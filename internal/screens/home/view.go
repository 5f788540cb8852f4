package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/ui/components"
	"github.com/abhisek/goalify/internal/ui/theme"
)

// Greeting returns the salutation for an hour of the day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good Morning"
	case hour < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

func (h *HomeScreen) render(cw int) string {
	name := strings.TrimSpace(h.state.Profile.Name)
	if name == "" {
		name = "Champion"
	}

	sections := []string{
		theme.Title.Render(fmt.Sprintf("%s, %s! 👋", Greeting(h.now.Hour()), name)) + "\n" +
			theme.Subtitle.Render("Ready to tackle today's challenge?"),
		h.renderStreak(cw),
		h.renderActive(cw),
	}

	if len(h.notices) > 0 {
		var lines []string
		for _, n := range h.notices {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Render("• "+n))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(h.errMsg))
	}

	sections = append(sections, h.menu.View())
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) renderStreak(cw int) string {
	st := h.state.Streak
	value := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("%d days 🔥", st.Current))

	sub := "Keep it going!"
	switch {
	case st.Current == 0:
		sub = "Complete a challenge to start your streak."
	case st.ActiveToday(h.now):
		sub = "Done for today. See you tomorrow!"
	}

	body := value + "\n" +
		theme.Subtitle.Render(fmt.Sprintf("Longest: %d days", st.Longest)) + "\n" +
		theme.Hint.Render(sub)
	return components.Card("Current Streak", body, cw)
}

func (h *HomeScreen) renderActive(cw int) string {
	c, ok := h.state.Active()
	if !ok {
		body := theme.Subtitle.Render("No active challenge. Pick “New challenge” to get one.")
		return components.Card("Today's Challenge", body, cw)
	}
	return components.Card("Today's Challenge", components.ChallengeSummary(c, cw-6), cw)
}
