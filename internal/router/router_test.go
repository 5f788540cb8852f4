package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/goalify/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	seen    []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "dashboard"})
	s2 := &stubScreen{title: "new challenge"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "new challenge" {
		t.Errorf("expected active 'new challenge', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPopRevealsScreenBelow(t *testing.T) {
	base := &stubScreen{title: "dashboard"}
	r := New(base)
	r.Push(&stubScreen{title: "history"})

	cmd := r.Pop()
	if r.Depth() != 1 || r.Active().Title() != "dashboard" {
		t.Fatalf("expected dashboard on top, got %q (depth %d)", r.Active().Title(), r.Depth())
	}
	if cmd == nil {
		t.Fatal("expected a reveal command")
	}
	r.Update(cmd())
	if len(base.seen) != 1 {
		t.Fatalf("expected the revealed screen to receive one message, got %d", len(base.seen))
	}
	if _, ok := base.seen[0].(RevealedMsg); !ok {
		t.Errorf("expected RevealedMsg, got %T", base.seen[0])
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "dashboard"})
	if cmd := r.Pop(); cmd != nil {
		t.Error("pop at bottom should not produce a command")
	}
	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "welcome"})
	r.Push(&stubScreen{title: "onboarding"})

	dash := &stubScreen{title: "dashboard"}
	r.Update(ReplaceScreenMsg{Screen: dash})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "dashboard" {
		t.Errorf("expected active 'dashboard', got %q", r.Active().Title())
	}
	if !dash.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	base := &stubScreen{title: "dashboard"}
	top := &stubScreen{title: "history"}
	r := New(base)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'j'})

	if len(top.seen) != 1 || len(base.seen) != 0 {
		t.Errorf("expected only the active screen to see the key, got top=%d base=%d", len(top.seen), len(base.seen))
	}
}
