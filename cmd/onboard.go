package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/tracker"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Set up your profile without the dashboard",
	Long: "Set up your profile without the dashboard.\n\n" +
		"Genders: " + strings.Join(tracker.Genders, ", ") + "\n" +
		"Life situations: " + strings.Join(tracker.LifeSituations, ", ") + "\n" +
		"Goal areas: " + strings.Join(tracker.GoalAreas, ", "),
	Example: `  goalify onboard --age 29 --gender "Prefer not to say" \
    --situation "Working Professional" --goal "Health & Fitness" --difficulty easy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profileFromFlags(cmd)
		if err != nil {
			return err
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		now := s.tracker.Now()
		p.CreatedAt = &now
		if _, _, err := s.tracker.Dispatch(tracker.UpdateProfile{Profile: p}); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		out := cmd.OutOrStdout()
		name := p.Name
		if name == "" {
			name = "Champion"
		}
		fmt.Fprintf(out, "Welcome aboard, %s!\n", name)
		fmt.Fprintln(out, "Create your first challenge with: goalify challenge new")
		return nil
	},
}

func init() {
	f := onboardCmd.Flags()
	f.String("name", "", "Your name (optional)")
	f.Int("age", 0, "Your age")
	f.String("gender", "", "Your gender")
	f.String("situation", "", "Your life situation")
	f.StringArray("goal", nil, "A goal area to focus on (repeatable)")
	f.String("difficulty", string(challenge.Medium), "Preferred difficulty: easy, medium or hard")
}

func profileFromFlags(cmd *cobra.Command) (tracker.Profile, error) {
	f := cmd.Flags()
	name, _ := f.GetString("name")
	age, _ := f.GetInt("age")
	gender, _ := f.GetString("gender")
	situation, _ := f.GetString("situation")
	goals, _ := f.GetStringArray("goal")
	difficulty, _ := f.GetString("difficulty")

	p := tracker.Profile{
		Name:                strings.TrimSpace(name),
		Age:                 age,
		OnboardingCompleted: true,
	}

	var err error
	if p.Gender, err = matchFlag("gender", gender, tracker.Genders); err != nil {
		return p, err
	}
	if p.LifeSituation, err = matchFlag("situation", situation, tracker.LifeSituations); err != nil {
		return p, err
	}
	if len(goals) == 0 {
		return p, fmt.Errorf("at least one --goal is required")
	}
	for _, g := range goals {
		area, err := matchFlag("goal", g, tracker.GoalAreas)
		if err != nil {
			return p, err
		}
		p.MainGoals = append(p.MainGoals, area)
	}
	if p.DifficultyPreference, err = challenge.ParseDifficulty(difficulty); err != nil {
		return p, err
	}
	return p, p.Validate()
}

// matchFlag wraps tracker.MatchChoice with the flag name.
func matchFlag(flag, value string, choices []string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("--%s is required", flag)
	}
	v, err := tracker.MatchChoice(value, choices)
	if err != nil {
		return "", fmt.Errorf("--%s: %w", flag, err)
	}
	return v, nil
}
