// Package screen defines the contract every dashboard screen implements.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/goalify/internal/challengegen"
	"github.com/abhisek/goalify/internal/store"
	"github.com/abhisek/goalify/internal/tracker"
	"github.com/abhisek/goalify/internal/ui/layout"
)

// Screen is one page of the dashboard.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Env bundles the services the screens work against.
type Env struct {
	Tracker   *tracker.Tracker
	Generator challengegen.Generator

	// Events is optional; history shows the activity log when it is set.
	Events store.EventRepo
}
