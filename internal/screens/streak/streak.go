// Package streak shows the streak counters and milestone progress.
package streak

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/router"
	"github.com/abhisek/goalify/internal/screen"
	"github.com/abhisek/goalify/internal/streak"
	"github.com/abhisek/goalify/internal/ui/components"
	"github.com/abhisek/goalify/internal/ui/theme"
)

type StreakScreen struct {
	env screen.Env
}

var _ screen.Screen = (*StreakScreen)(nil)

func New(env screen.Env) *StreakScreen {
	return &StreakScreen{env: env}
}

func (s *StreakScreen) Init() tea.Cmd {
	return nil
}

func (s *StreakScreen) Title() string {
	return "Streak"
}

func (s *StreakScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *StreakScreen) View(width, height int) string {
	st := s.env.Tracker.State().Streak
	cw := components.ContentWidth(width)

	icon := "💪"
	if st.Current > 0 {
		icon = "🔥"
	}
	last := "Never"
	if st.LastActivity != nil {
		last = st.LastActivity.Format("Mon, Jan 02 2006")
	}

	head := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("%s  %d day streak", icon, st.Current)) + "\n" +
		theme.Subtitle.Render(fmt.Sprintf("Longest: %s · Last activity: %s", days(st.Longest), last))

	var ms strings.Builder
	for _, m := range streak.Milestones {
		if st.Current >= m {
			ms.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d Days", m)))
		} else {
			ms.WriteString(theme.Subtitle.Render(fmt.Sprintf("○ %d Days", m)))
		}
		ms.WriteString("\n")
	}
	if next, ok := streak.NextMilestone(st.Current); ok {
		ms.WriteString("\n")
		ms.WriteString(components.NewProgressBar(fmt.Sprintf("Next: %d", next), st.Current*100/next, cw-6).View())
	} else {
		ms.WriteString("\n" + theme.Hint.Render("Every milestone reached. Legendary!"))
	}

	body := components.Card("", head, cw) + "\n\n" + components.Card("Milestones", ms.String(), cw)
	return components.Centered(body, width, height)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
