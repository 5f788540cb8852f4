// Package home is the dashboard: greeting, streak, the active challenge and
// the main menu. Opening it runs a check-in.
package home

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/goalify/internal/router"
	"github.com/abhisek/goalify/internal/screen"
	"github.com/abhisek/goalify/internal/screens/challenges"
	"github.com/abhisek/goalify/internal/screens/create"
	"github.com/abhisek/goalify/internal/screens/history"
	streakscreen "github.com/abhisek/goalify/internal/screens/streak"
	"github.com/abhisek/goalify/internal/tracker"
	"github.com/abhisek/goalify/internal/ui/components"
	"github.com/abhisek/goalify/internal/ui/layout"
)

type checkedInMsg struct {
	state   tracker.State
	effects []tracker.Effect
}

type completedMsg struct {
	state   tracker.State
	effects []tracker.Effect
	err     error
}

// HomeScreen is the dashboard.
type HomeScreen struct {
	env     screen.Env
	state   tracker.State
	now     time.Time
	notices []string
	errMsg  string
	menu    components.Menu
	loaded  bool
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

func New(env screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "New challenge", Action: h.push(func() screen.Screen { return create.New(env) })},
		{Label: "My challenges", Action: h.push(func() screen.Screen { return challenges.New(env) })},
		{Label: "Streak", Action: h.push(func() screen.Screen { return streakscreen.New(env) })},
		{Label: "History", Action: h.push(func() screen.Screen { return history.New(env) })},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	t := h.env.Tracker
	return func() tea.Msg {
		s, effects := t.CheckIn()
		return checkedInMsg{state: s, effects: effects}
	}
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if _, ok := h.state.Active(); ok {
		hints = append(hints, layout.KeyHint{Key: "d", Description: "Mark done"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkedInMsg:
		h.loaded = true
		h.apply(msg.state, msg.effects)
		return h, nil

	case completedMsg:
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.apply(msg.state, msg.effects)
		return h, nil

	case router.RevealedMsg:
		h.apply(h.env.Tracker.State(), nil)
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "d" {
			return h, h.completeActive()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) completeActive() tea.Cmd {
	active, ok := h.state.Active()
	if !ok {
		return nil
	}
	t := h.env.Tracker
	return func() tea.Msg {
		s, effects, err := t.Complete(active.ID)
		return completedMsg{state: s, effects: effects, err: err}
	}
}

func (h *HomeScreen) apply(s tracker.State, effects []tracker.Effect) {
	h.state = s
	h.now = h.env.Tracker.Now()
	h.errMsg = ""
	h.notices = h.notices[:0]
	for _, e := range effects {
		if e.Kind == tracker.EffectChallengeCreated {
			continue
		}
		h.notices = append(h.notices, e.Message())
	}
}

func (h *HomeScreen) View(width, height int) string {
	if !h.loaded {
		return components.Centered("Checking in...", width, height)
	}
	return components.Centered(h.render(components.ContentWidth(width)), width, height)
}
