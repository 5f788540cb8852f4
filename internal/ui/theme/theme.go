// Package theme holds the dashboard palette and shared styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/challenge"
)

// Palette is one color scheme.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
}

var palettes = map[string]Palette{
	"dark": {
		Primary:   lipgloss.Color("#6366F1"), // Indigo
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#F97316"), // Orange
		Success:   lipgloss.Color("#22C55E"),
		Warning:   lipgloss.Color("#F59E0B"),
		Error:     lipgloss.Color("#EF4444"),
		Text:      lipgloss.Color("#F8FAFC"),
		TextDim:   lipgloss.Color("#94A3B8"),
		Bg:        lipgloss.Color("#0F172A"),
		BgCard:    lipgloss.Color("#1E293B"),
		Border:    lipgloss.Color("#334155"),
	},
	"light": {
		Primary:   lipgloss.Color("#4F46E5"),
		Secondary: lipgloss.Color("#0D9488"),
		Accent:    lipgloss.Color("#EA580C"),
		Success:   lipgloss.Color("#16A34A"),
		Warning:   lipgloss.Color("#D97706"),
		Error:     lipgloss.Color("#DC2626"),
		Text:      lipgloss.Color("#0F172A"),
		TextDim:   lipgloss.Color("#64748B"),
		Bg:        lipgloss.Color("#F8FAFC"),
		BgCard:    lipgloss.Color("#E2E8F0"),
		Border:    lipgloss.Color("#CBD5E1"),
	},
}

// Current palette colors. Apply swaps them.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
)

// Shared styles, rebuilt by Apply.
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
)

func init() {
	Apply("dark")
}

// Apply switches to the named palette. Unknown names select the dark one.
func Apply(name string) {
	p, ok := palettes[name]
	if !ok {
		p = palettes["dark"]
	}
	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Warning, Error = p.Success, p.Warning, p.Error
	Text, TextDim = p.Text, p.TextDim
	Bg, BgCard, Border = p.Bg, p.BgCard, p.Border

	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim)
	Body = lipgloss.NewStyle().Foreground(Text)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Normal = lipgloss.NewStyle().Foreground(Text)
}

// DifficultyColor maps easy, medium and hard to success, warning and error.
func DifficultyColor(d challenge.Difficulty) color.Color {
	switch d {
	case challenge.Easy:
		return Success
	case challenge.Hard:
		return Error
	default:
		return Warning
	}
}

// DifficultyBadge renders the difficulty label in its color.
func DifficultyBadge(d challenge.Difficulty) string {
	return lipgloss.NewStyle().Foreground(DifficultyColor(d)).Bold(true).Render(d.Label())
}
