// Package challenges lists the open challenges and lets the user switch
// the active one or mark one done.
package challenges

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/router"
	"github.com/abhisek/goalify/internal/screen"
	"github.com/abhisek/goalify/internal/tracker"
	"github.com/abhisek/goalify/internal/ui/components"
	"github.com/abhisek/goalify/internal/ui/layout"
	"github.com/abhisek/goalify/internal/ui/theme"
)

type dispatchedMsg struct {
	state   tracker.State
	effects []tracker.Effect
	err     error
}

type ChallengesScreen struct {
	env      screen.Env
	state    tracker.State
	selected int
	notice   string
	errMsg   string
}

var (
	_ screen.Screen          = (*ChallengesScreen)(nil)
	_ screen.KeyHintProvider = (*ChallengesScreen)(nil)
)

func New(env screen.Env) *ChallengesScreen {
	return &ChallengesScreen{env: env, state: env.Tracker.State()}
}

func (s *ChallengesScreen) Init() tea.Cmd {
	return nil
}

func (s *ChallengesScreen) Title() string {
	return "My Challenges"
}

func (s *ChallengesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Make active"},
		{Key: "d", Description: "Mark done"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChallengesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchedMsg:
		s.state = msg.state
		s.errMsg, s.notice = "", ""
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		}
		var notes []string
		for _, e := range msg.effects {
			notes = append(notes, e.Message())
		}
		s.notice = strings.Join(notes, "\n")
		s.selected = min(s.selected, max(len(s.state.Open)-1, 0))
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.state.Open)-1 {
				s.selected++
			}
		case "enter":
			return s, s.dispatch(func(t *tracker.Tracker, id string) tea.Msg {
				st, err := t.Activate(id)
				return dispatchedMsg{state: st, err: err}
			})
		case "d":
			return s, s.dispatch(func(t *tracker.Tracker, id string) tea.Msg {
				st, effects, err := t.Complete(id)
				return dispatchedMsg{state: st, effects: effects, err: err}
			})
		}
	}
	return s, nil
}

func (s *ChallengesScreen) dispatch(fn func(t *tracker.Tracker, id string) tea.Msg) tea.Cmd {
	if s.selected >= len(s.state.Open) {
		return nil
	}
	t, id := s.env.Tracker, s.state.Open[s.selected].ID
	return func() tea.Msg { return fn(t, id) }
}

func (s *ChallengesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if len(s.state.Open) == 0 {
		empty := theme.Hint.Render("No open challenges. Create one from the dashboard.")
		if s.notice != "" {
			empty = lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice) + "\n\n" + empty
		}
		return components.Centered(empty, width, height)
	}

	var b strings.Builder
	for i, c := range s.state.Open {
		marker := "  "
		if c.ID == s.state.ActiveID {
			marker = "★ "
		}
		line := fmt.Sprintf("%s%-28s %3d%%  %2d days left", marker, truncate(c.Title, 28), c.Progress, c.DaysRemaining)
		style := theme.Normal
		if i == s.selected {
			style = theme.Selected
		}
		b.WriteString(style.Render(line) + "  " + theme.DifficultyBadge(c.Difficulty) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(components.Card("", components.ChallengeSummary(s.state.Open[s.selected], cw-6), cw))
	if s.notice != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
	}
	if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	return components.Centered(b.String(), width, height)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
