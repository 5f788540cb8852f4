// Package create walks the user through generating a new challenge: goal,
// difficulty, duration, then a preview to accept or discard.
package create

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/challengegen"
	"github.com/abhisek/goalify/internal/router"
	"github.com/abhisek/goalify/internal/screen"
	"github.com/abhisek/goalify/internal/ui/components"
	"github.com/abhisek/goalify/internal/ui/layout"
	"github.com/abhisek/goalify/internal/ui/theme"
)

type step int

const (
	stepGoal step = iota
	stepDifficulty
	stepDuration
	stepGenerating
	stepPreview
)

type generatedMsg struct {
	attempt   int
	challenge challenge.Challenge
}

type createdMsg struct {
	err error
}

// CreateScreen is the challenge creation flow.
type CreateScreen struct {
	env    screen.Env
	step   step
	cancel context.CancelFunc

	// attempt tags generation results so a cancelled run cannot land
	// after a newer one started.
	attempt int

	goal       components.TextInput
	difficulty components.Choice
	duration   components.Choice
	spinner    spinner.Model

	input  challengegen.Input
	result challenge.Challenge
	errMsg string
}

var (
	_ screen.Screen          = (*CreateScreen)(nil)
	_ screen.KeyHintProvider = (*CreateScreen)(nil)
)

func New(env screen.Env) *CreateScreen {
	s := env.Tracker.State()

	goal := components.NewTextInput("e.g. Run a 5k, read more, sleep earlier", false, challenge.MaxGoalLen)
	if suggested, err := s.SuggestedGoal(); err == nil {
		goal.Model.SetValue(suggested)
	}

	labels := make([]string, len(challenge.Difficulties))
	for i, d := range challenge.Difficulties {
		labels[i] = d.Label()
	}
	difficulty := components.NewChoice("How hard should it be?", labels, false)
	preferred := s.Settings.DefaultDifficulty
	if s.Profile.DifficultyPreference.Valid() {
		preferred = s.Profile.DifficultyPreference
	}
	difficulty.SelectValue(preferred.Label())

	durations := make([]string, len(challenge.Durations))
	for i, d := range challenge.Durations {
		durations[i] = durationLabel(d)
	}
	duration := components.NewChoice("How long?", durations, false)
	duration.SelectValue(durationLabel(s.Settings.DefaultDuration))

	return &CreateScreen{
		env:        env,
		goal:       goal,
		difficulty: difficulty,
		duration:   duration,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		input:      challengegen.Input{UserContext: s.Profile.Summary()},
	}
}

func durationLabel(days int) string {
	return fmt.Sprintf("%d days", days)
}

func (c *CreateScreen) Init() tea.Cmd {
	return c.goal.Init()
}

func (c *CreateScreen) Title() string {
	return "New Challenge"
}

func (c *CreateScreen) KeyHints() []layout.KeyHint {
	switch c.step {
	case stepPreview:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start challenge"},
			{Key: "r", Description: "Regenerate"},
			{Key: "Esc", Description: "Discard"},
		}
	case stepGenerating:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CreateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		if c.step != stepGenerating || msg.attempt != c.attempt {
			return c, nil
		}
		c.cancel = nil
		c.result = msg.challenge
		c.step = stepPreview
		return c, nil

	case createdMsg:
		if msg.err != nil {
			c.errMsg = msg.err.Error()
			return c, nil
		}
		return c, func() tea.Msg { return router.PopScreenMsg{} }

	case spinner.TickMsg:
		if c.step != stepGenerating {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return c, c.back()
		}
	}

	switch c.step {
	case stepGoal:
		return c, c.updateGoal(msg)
	case stepDifficulty:
		var cmd tea.Cmd
		c.difficulty, cmd = c.difficulty.Update(msg)
		if c.difficulty.Submitted {
			c.input.Difficulty = challenge.Difficulty(strings.ToLower(c.difficulty.Value()))
			c.step = stepDuration
		}
		return c, cmd
	case stepDuration:
		var cmd tea.Cmd
		c.duration, cmd = c.duration.Update(msg)
		if c.duration.Submitted {
			c.input.Duration = challenge.Durations[c.duration.Cursor]
			return c, c.generate()
		}
		return c, cmd
	case stepPreview:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "enter":
				return c, c.accept()
			case "r":
				return c, c.generate()
			}
		}
	}
	return c, nil
}

func (c *CreateScreen) updateGoal(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		goal, err := challenge.NormalizeGoal(c.goal.Value())
		if err != nil {
			c.goal.SetError(err.Error())
			return nil
		}
		c.input.Goal = goal
		c.step = stepDifficulty
		return nil
	}
	var cmd tea.Cmd
	c.goal, cmd = c.goal.Update(msg)
	return cmd
}

// back steps out of the flow one stage at a time; from the first stage it
// leaves the screen.
func (c *CreateScreen) back() tea.Cmd {
	switch c.step {
	case stepGoal, stepPreview:
		return func() tea.Msg { return router.PopScreenMsg{} }
	case stepGenerating:
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		c.duration.Submitted = false
		c.step = stepDuration
	case stepDuration:
		c.difficulty.Submitted = false
		c.step = stepDifficulty
	case stepDifficulty:
		c.step = stepGoal
	}
	return nil
}

func (c *CreateScreen) generate() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.step = stepGenerating
	c.errMsg = ""
	c.attempt++

	gen, in, attempt := c.env.Generator, c.input, c.attempt
	return tea.Batch(c.spinner.Tick, func() tea.Msg {
		defer cancel()
		return generatedMsg{attempt: attempt, challenge: gen.Generate(ctx, in)}
	})
}

func (c *CreateScreen) accept() tea.Cmd {
	t, result := c.env.Tracker, c.result
	return func() tea.Msg {
		_, _, err := t.Create(result)
		return createdMsg{err: err}
	}
}

func (c *CreateScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch c.step {
	case stepGoal:
		body = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("What goal do you want to work on?") +
			"\n\n" + c.goal.View()
	case stepDifficulty:
		body = c.difficulty.View()
	case stepDuration:
		body = c.duration.View()
	case stepGenerating:
		body = c.spinner.View() + " Creating your challenge for " +
			theme.Selected.Render(c.input.Goal) + "..."
	case stepPreview:
		body = components.ChallengeSummary(c.result, cw-6)
		if len(c.result.Milestones) > 0 {
			body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Milestones")
			for _, m := range c.result.Milestones {
				body += "\n  ◆ " + m
			}
		}
		if len(c.result.Tips) > 0 {
			body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Tips")
			for _, tip := range c.result.Tips {
				body += "\n  ✦ " + tip
			}
		}
		if c.result.Fallback {
			body += "\n\n" + theme.Hint.Render("The AI coach is unavailable, so this is a starter plan.")
		}
	}

	if c.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(c.errMsg)
	}
	return components.Centered(components.Card("", body, cw), width, height)
}
