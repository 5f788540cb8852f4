// Package onboard collects the user's profile on first launch: about you,
// life situation, goal areas and preferred difficulty.
package onboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/router"
	"github.com/abhisek/goalify/internal/screen"
	"github.com/abhisek/goalify/internal/tracker"
	"github.com/abhisek/goalify/internal/ui/components"
	"github.com/abhisek/goalify/internal/ui/layout"
	"github.com/abhisek/goalify/internal/ui/theme"
)

type step int

const (
	stepName step = iota
	stepAge
	stepGender
	stepSituation
	stepGoals
	stepDifficulty
	stepCount
)

type savedMsg struct {
	err error
}

// OnboardScreen is the onboarding wizard. On success it replaces itself
// with the screen built by next.
type OnboardScreen struct {
	env  screen.Env
	next func() screen.Screen
	step step

	name       components.TextInput
	age        components.TextInput
	gender     components.Choice
	situation  components.Choice
	goals      components.Choice
	difficulty components.Choice

	errMsg string
}

var (
	_ screen.Screen          = (*OnboardScreen)(nil)
	_ screen.KeyHintProvider = (*OnboardScreen)(nil)
)

func New(env screen.Env, next func() screen.Screen) *OnboardScreen {
	labels := make([]string, len(challenge.Difficulties))
	for i, d := range challenge.Difficulties {
		labels[i] = d.Label()
	}
	difficulty := components.NewChoice("Choose your challenge level", labels, false)
	difficulty.SelectValue(challenge.Medium.Label())

	return &OnboardScreen{
		env:        env,
		next:       next,
		name:       components.NewTextInput("Your name (optional)", false, 50),
		age:        components.NewTextInput("Enter your age (1-120)", true, 3),
		gender:     components.NewChoice("Gender", tracker.Genders, false),
		situation:  components.NewChoice("What's your life situation?", tracker.LifeSituations, false),
		goals:      components.NewChoice("What are your main goals?", tracker.GoalAreas, true),
		difficulty: difficulty,
	}
}

func (o *OnboardScreen) Init() tea.Cmd {
	return o.name.Init()
}

func (o *OnboardScreen) Title() string {
	return "Welcome"
}

func (o *OnboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	if o.step > stepName {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (o *OnboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			o.errMsg = msg.err.Error()
			return o, nil
		}
		next := o.next()
		return o, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		if msg.String() == "esc" {
			o.back()
			return o, nil
		}
	}

	var cmd tea.Cmd
	switch o.step {
	case stepName:
		if isEnter(msg) {
			name := strings.TrimSpace(o.name.Value())
			if n := len([]rune(name)); name != "" && (n < 2 || n > 50) {
				o.name.SetError("name must be between 2 and 50 characters")
				return o, nil
			}
			o.step = stepAge
			return o, nil
		}
		o.name, cmd = o.name.Update(msg)
	case stepAge:
		if isEnter(msg) {
			if n, err := o.age.NumericValue(); err != nil || n < 1 || n > 120 {
				o.age.SetError("age must be between 1 and 120")
				return o, nil
			}
			o.step = stepGender
			return o, nil
		}
		o.age, cmd = o.age.Update(msg)
	case stepGender:
		o.gender, cmd = o.gender.Update(msg)
		o.advanceIf(o.gender.Submitted)
	case stepSituation:
		o.situation, cmd = o.situation.Update(msg)
		o.advanceIf(o.situation.Submitted)
	case stepGoals:
		o.goals, cmd = o.goals.Update(msg)
		o.advanceIf(o.goals.Submitted)
	case stepDifficulty:
		o.difficulty, cmd = o.difficulty.Update(msg)
		if o.difficulty.Submitted {
			return o, o.save()
		}
	}
	return o, cmd
}

func isEnter(msg tea.Msg) bool {
	k, ok := msg.(tea.KeyMsg)
	return ok && k.String() == "enter"
}

func (o *OnboardScreen) advanceIf(ok bool) {
	if ok {
		o.step++
	}
}

func (o *OnboardScreen) back() {
	if o.step == stepName {
		return
	}
	o.step--
	o.errMsg = ""
	switch o.step {
	case stepGender:
		o.gender.Submitted = false
	case stepSituation:
		o.situation.Submitted = false
	case stepGoals:
		o.goals.Submitted = false
	}
	o.difficulty.Submitted = false
}

// Profile assembles the answers given so far.
func (o *OnboardScreen) Profile() tracker.Profile {
	age, _ := o.age.NumericValue()
	return tracker.Profile{
		Name:                 strings.TrimSpace(o.name.Value()),
		Age:                  age,
		Gender:               o.gender.Value(),
		LifeSituation:        o.situation.Value(),
		MainGoals:            o.goals.Values(),
		DifficultyPreference: challenge.Difficulty(strings.ToLower(o.difficulty.Value())),
		OnboardingCompleted:  true,
	}
}

func (o *OnboardScreen) save() tea.Cmd {
	t, p := o.env.Tracker, o.Profile()
	now := t.Now()
	p.CreatedAt = &now
	return func() tea.Msg {
		_, _, err := t.Dispatch(tracker.UpdateProfile{Profile: p})
		return savedMsg{err: err}
	}
}

func (o *OnboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	header := theme.Subtitle.Render(fmt.Sprintf("Step %d of %d", o.step+1, stepCount))

	var body string
	switch o.step {
	case stepName:
		body = prompt("Tell us about yourself", "This helps us personalize your experience") + o.name.View()
	case stepAge:
		body = prompt("How old are you?", "") + o.age.View()
	case stepGender:
		body = o.gender.View()
	case stepSituation:
		body = o.situation.View() + "\n" + theme.Hint.Render("This helps us tailor challenges to your lifestyle")
	case stepGoals:
		body = o.goals.View()
	case stepDifficulty:
		body = o.difficulty.View() + "\n" + theme.Hint.Render("We'll tailor challenges to your preference")
	}
	if o.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(o.errMsg)
	}

	return components.Centered(header+"\n\n"+components.Card("", body, cw), width, height)
}

func prompt(title, sub string) string {
	out := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title) + "\n"
	if sub != "" {
		out += theme.Hint.Render(sub) + "\n"
	}
	return out + "\n"
}
