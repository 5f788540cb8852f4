package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/goalify/internal/router"
	"github.com/abhisek/goalify/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "dashboard" }
func (s *stubScreen) Title() string                           { return "Dashboard" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func TestBannerAppearsAfterDelay(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), Tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != bannerAt {
		t.Errorf("expected elapsed %v, got %v", bannerAt, w.elapsed)
	}
	if !strings.Contains(w.View(100, 30), Tagline) {
		t.Error("tagline should be visible after the banner delay")
	}
}

func TestElapsedIsCapped(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 40)

	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
	if *calls != 0 {
		t.Errorf("next screen must not be built without a key press, got %d calls", *calls)
	}
	if !strings.Contains(w.View(100, 30), "press any key") {
		t.Error("expected the continue hint once the animation finished")
	}
}

func TestKeypressEmitsReplaceOnce(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected a command from the key press")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen == nil {
		t.Fatalf("expected ReplaceScreenMsg with a screen, got %#v", msg)
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'a'}); cmd != nil {
		t.Error("second key press should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("next screen should be built exactly once, got %d", *calls)
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), bannerCompact) {
		t.Error("expected compact banner on narrow terminals")
	}
}
