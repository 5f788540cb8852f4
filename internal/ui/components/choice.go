package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/ui/theme"
)

// Choice is a list of options. In single mode Enter submits the option
// under the cursor; in multi mode Space toggles options and Enter submits
// once at least one is checked.
type Choice struct {
	Prompt    string
	Options   []string
	Multi     bool
	Cursor    int
	Checked   map[int]bool
	Submitted bool
}

func NewChoice(prompt string, options []string, multi bool) Choice {
	return Choice{Prompt: prompt, Options: options, Multi: multi, Checked: map[int]bool{}}
}

// SelectValue moves the cursor to the option equal to v, if present.
func (c *Choice) SelectValue(v string) {
	for i, o := range c.Options {
		if o == v {
			c.Cursor = i
			return
		}
	}
}

func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Multi {
			c.Checked[c.Cursor] = !c.Checked[c.Cursor]
		}
	case "enter":
		if !c.Multi {
			c.Checked = map[int]bool{c.Cursor: true}
		}
		if len(c.Values()) > 0 {
			c.Submitted = true
		}
	}
	return c, nil
}

// Values returns the checked options in display order.
func (c Choice) Values() []string {
	var out []string
	for i, o := range c.Options {
		if c.Checked[i] {
			out = append(out, o)
		}
	}
	return out
}

// Value returns the first checked option.
func (c Choice) Value() string {
	if v := c.Values(); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c Choice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
	b.WriteString("\n\n")

	for i, o := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		if c.Multi {
			box := "[ ] "
			if c.Checked[i] {
				box = "[x] "
			}
			prefix += box
		}
		style := theme.Normal
		if i == c.Cursor {
			style = theme.Selected
		}
		b.WriteString(style.Render(prefix + o))
		b.WriteString("\n")
	}
	if c.Multi {
		b.WriteString(theme.Hint.Render("space to toggle, enter to continue"))
	}
	return b.String()
}
