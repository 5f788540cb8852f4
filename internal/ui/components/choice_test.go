package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func press(c Choice, keys ...tea.KeyPressMsg) Choice {
	for _, k := range keys {
		c, _ = c.Update(k)
	}
	return c
}

var (
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keySpace = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
)

func TestChoice_Single(t *testing.T) {
	c := press(NewChoice("Difficulty", []string{"easy", "medium", "hard"}, false), keyDown, keyEnter)

	assert.True(t, c.Submitted)
	assert.Equal(t, "medium", c.Value())
}

func TestChoice_MultiNeedsOneChecked(t *testing.T) {
	c := NewChoice("Goals", []string{"Health", "Career", "Travel"}, true)

	c = press(c, keyEnter)
	assert.False(t, c.Submitted, "enter with nothing checked keeps the list open")

	c = press(c, keySpace, keyDown, keyDown, keySpace, keyEnter)
	assert.True(t, c.Submitted)
	assert.Equal(t, []string{"Health", "Travel"}, c.Values())
}

func TestChoice_SelectValue(t *testing.T) {
	c := NewChoice("Duration", []string{"7 days", "14 days", "30 days"}, false)
	c.SelectValue("30 days")
	assert.Equal(t, 2, c.Cursor)

	c.SelectValue("missing")
	assert.Equal(t, 2, c.Cursor)
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var hit string
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Action: func() tea.Cmd { hit = "B"; return nil }},
		{Label: "C", Disabled: true},
		{Label: "D", Action: func() tea.Cmd { hit = "D"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(keyDown)
	assert.Equal(t, 3, m.Selected)

	m.Update(keyEnter)
	assert.Equal(t, "D", hit)
}

func TestProgressBar_Clamps(t *testing.T) {
	assert.Contains(t, NewProgressBar("", 140, 30).View(), "100%")
	assert.Contains(t, NewProgressBar("", -5, 30).View(), "  0%")
}
