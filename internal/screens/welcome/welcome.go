// Package welcome is the splash screen shown when the dashboard starts.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/router"
	"github.com/abhisek/goalify/internal/screen"
	"github.com/abhisek/goalify/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 500 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

const Tagline = "Achieve Your Goals, One Challenge at a Time"

// target frames cycle while the splash plays.
var targetFrames = []string{"◎", "◉", "●", "◉"}

type tickMsg time.Time

// WelcomeScreen animates the logo, then hands over to the screen built by
// next on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (w *WelcomeScreen) View(width, height int) string {
	target := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(targetFrames[w.tickCount%len(targetFrames)])

	sections := []string{target}

	if w.elapsed >= bannerAt {
		sections = append(sections, RenderBanner(width), "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline))
	}
	if w.elapsed >= totalDur {
		sections = append(sections, "", theme.Hint.Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, strings.Join(sections, "\n")))
}
