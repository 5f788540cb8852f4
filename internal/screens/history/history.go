// Package history shows completed challenges, newest first, and the recent
// activity log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/router"
	"github.com/abhisek/goalify/internal/screen"
	"github.com/abhisek/goalify/internal/store"
	"github.com/abhisek/goalify/internal/tracker"
	"github.com/abhisek/goalify/internal/ui/layout"
	"github.com/abhisek/goalify/internal/ui/theme"
)

const activityLimit = 10

type activityLoadedMsg struct {
	events []store.ActivityEventRecord
	err    error
}

type HistoryScreen struct {
	events   store.EventRepo
	archive  []challenge.Challenge
	activity []store.ActivityEventRecord
	selected int
	expanded map[int]bool
	errMsg   string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(env screen.Env) *HistoryScreen {
	return &HistoryScreen{
		events:   env.Events,
		archive:  env.Tracker.State().ArchiveNewestFirst(),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.events == nil {
		return nil
	}
	repo := s.events
	return func() tea.Msg {
		events, err := repo.QueryActivityEvents(context.Background(), store.QueryOpts{Limit: activityLimit})
		return activityLoadedMsg{events: events, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case activityLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.activity = msg.events
		}
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
			if s.selected < len(s.archive)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Completed challenges (%d)", len(s.archive))))
	b.WriteString("\n\n")

	if len(s.archive) == 0 {
		b.WriteString(theme.Hint.Render("Nothing completed yet. Your finished challenges will show up here."))
		b.WriteString("\n")
	}

	for i, c := range s.archive {
		prefix := "  "
		style := theme.Normal
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		done := ""
		if c.CompletedAt != nil {
			done = c.CompletedAt.Format("Jan 02, 2006")
		}
		b.WriteString(style.Render(fmt.Sprintf("%s✓ %s  %s  %d days", prefix, done, c.Title, c.Duration)))
		b.WriteString("  " + theme.DifficultyBadge(c.Difficulty) + "\n")

		if s.expanded[i] {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim)
			if c.Description != "" {
				b.WriteString(dim.Render("    "+c.Description) + "\n")
			}
			b.WriteString(dim.Render(fmt.Sprintf("    Goal: %s · started %s", c.Goal, c.CreatedAt.Format("Jan 02"))) + "\n")
		}
	}

	if len(s.activity) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Title.Render("Recent activity"))
		b.WriteString("\n\n")
		for _, e := range s.activity {
			b.WriteString(theme.Subtitle.Render(e.OccurredAt.Format("Jan 02 15:04")))
			b.WriteString("  ")
			b.WriteString(theme.Body.Render(tracker.EffectFromActivity(e.ActivityEventData).Message()))
			b.WriteString("\n")
		}
	}
	if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg))
	}

	return lipgloss.NewStyle().Width(width).Padding(1, 2).Render(b.String())
}
