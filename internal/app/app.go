// Package app hosts the Bubble Tea program behind the goalify dashboard.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/router"
	"github.com/abhisek/goalify/internal/screen"
	"github.com/abhisek/goalify/internal/screens/home"
	"github.com/abhisek/goalify/internal/screens/onboard"
	"github.com/abhisek/goalify/internal/screens/welcome"
	"github.com/abhisek/goalify/internal/ui/layout"
	"github.com/abhisek/goalify/internal/ui/theme"
)

// Options configures the dashboard.
type Options struct {
	Env screen.Env

	// SkipSplash starts on the dashboard (or onboarding) directly.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    screen.Env
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	env := opts.Env
	theme.Apply(string(env.Tracker.State().Settings.Theme))

	first := startScreen(env)
	if !opts.SkipSplash {
		first = welcome.New(func() screen.Screen { return startScreen(env) })
	}
	return AppModel{env: env, router: router.New(first)}
}

// startScreen is the dashboard, preceded by onboarding until the profile is
// complete.
func startScreen(env screen.Env) screen.Screen {
	dashboard := func() screen.Screen { return home.New(env) }
	if !env.Tracker.State().Profile.OnboardingCompleted {
		return onboard.New(env, dashboard)
	}
	return dashboard()
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.env.Tracker.State().Streak.Current, m.width)

	hints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the dashboard and blocks until the user quits.
func Run(opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
