package tracker

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/goalify/internal/challenge"
)

// Onboarding choices offered by the dashboard and accepted by the CLI.
var (
	Genders = []string{"Male", "Female", "Non-binary", "Prefer not to say"}

	LifeSituations = []string{
		"Student",
		"Working Professional",
		"Entrepreneur",
		"Stay-at-home Parent",
		"Retired",
		"Freelancer",
		"Other",
	}

	GoalAreas = []string{
		"Health & Fitness",
		"Career & Professional",
		"Financial",
		"Education & Learning",
		"Relationships",
		"Personal Development",
		"Creative & Hobbies",
		"Travel & Adventure",
	}
)

// Validate checks a profile submitted for onboarding. Name is optional;
// everything else is required.
func (p Profile) Validate() error {
	var errs []error

	if name := strings.TrimSpace(p.Name); name != "" {
		if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
			errs = append(errs, &challenge.FieldError{Field: "name", Message: "name must be between 2 and 50 characters"})
		}
	}
	if p.Age < 1 || p.Age > 120 {
		errs = append(errs, &challenge.FieldError{Field: "age", Message: "age must be between 1 and 120"})
	}
	if strings.TrimSpace(p.Gender) == "" {
		errs = append(errs, &challenge.FieldError{Field: "gender", Message: "gender selection is required"})
	}
	if strings.TrimSpace(p.LifeSituation) == "" {
		errs = append(errs, &challenge.FieldError{Field: "life situation", Message: "life situation selection is required"})
	}
	if len(p.MainGoals) == 0 {
		errs = append(errs, &challenge.FieldError{Field: "goals", Message: "please select at least one goal"})
	}
	if !p.DifficultyPreference.Valid() {
		errs = append(errs, &challenge.FieldError{Field: "difficulty", Message: "please select a difficulty level"})
	}

	return errors.Join(errs...)
}

// MatchChoice resolves s against a fixed list of choices, case-insensitively.
func MatchChoice(s string, choices []string) (string, error) {
	s = strings.TrimSpace(s)
	for _, c := range choices {
		if strings.EqualFold(c, s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%q is not one of: %s", s, strings.Join(choices, ", "))
}

// SuggestedGoal returns the first goal area picked during onboarding, for
// creating a challenge when the user names no goal.
func (s State) SuggestedGoal() (string, error) {
	if !s.Profile.OnboardingCompleted || len(s.Profile.MainGoals) == 0 {
		return "", ErrNotOnboarded
	}
	return s.Profile.MainGoals[0], nil
}

// Summary describes the user in a few lines for challenge generation. It is
// empty before onboarding.
func (p Profile) Summary() string {
	if !p.OnboardingCompleted {
		return ""
	}
	var lines []string
	if p.Age > 0 {
		lines = append(lines, fmt.Sprintf("Age: %d", p.Age))
	}
	if p.LifeSituation != "" {
		lines = append(lines, "Life situation: "+p.LifeSituation)
	}
	if len(p.MainGoals) > 0 {
		lines = append(lines, "Focus areas: "+strings.Join(p.MainGoals, ", "))
	}
	return strings.Join(lines, "\n")
}
