// Package tracker holds the single source of truth for a user's goals: the
// profile, the streak, open and archived challenges, and settings. State
// changes only through Reduce, and the Tracker container applies reductions
// atomically and mirrors each new state to the store in the background.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/streak"
)

// Theme is the dashboard color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses a theme name.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

// Profile is what the user told us during onboarding.
type Profile struct {
	Name                 string
	Age                  int
	Gender               string
	LifeSituation        string
	MainGoals            []string
	DifficultyPreference challenge.Difficulty
	OnboardingCompleted  bool
	CreatedAt            *time.Time
}

// Settings are user preferences.
type Settings struct {
	Theme             Theme
	Notifications     bool
	Language          string
	DefaultDifficulty challenge.Difficulty
	DefaultDuration   int
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Theme:             ThemeLight,
		Notifications:     true,
		Language:          "en",
		DefaultDifficulty: challenge.Medium,
		DefaultDuration:   7,
	}
}

// State is a complete, self-consistent view of the tracker.
type State struct {
	// Revision increases by one with every successful dispatch.
	Revision int64

	Profile  Profile
	Streak   streak.State
	Open     []challenge.Challenge
	ActiveID string
	Archive  []challenge.Challenge
	Settings Settings
}

// DefaultState returns the state of a fresh install.
func DefaultState() State {
	return State{Settings: DefaultSettings()}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Profile = s.Profile.clone()
	out.Streak = s.Streak.Clone()
	out.Open = cloneChallenges(s.Open)
	out.Archive = cloneChallenges(s.Archive)
	return out
}

func (p Profile) clone() Profile {
	if p.MainGoals != nil {
		p.MainGoals = append([]string(nil), p.MainGoals...)
	}
	if p.CreatedAt != nil {
		t := *p.CreatedAt
		p.CreatedAt = &t
	}
	return p
}

func cloneChallenges(in []challenge.Challenge) []challenge.Challenge {
	if in == nil {
		return nil
	}
	out := make([]challenge.Challenge, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// Active returns the challenge currently surfaced to the user.
func (s State) Active() (challenge.Challenge, bool) {
	if s.ActiveID == "" {
		return challenge.Challenge{}, false
	}
	return s.FindOpen(s.ActiveID)
}

// FindOpen looks up an open challenge by ID.
func (s State) FindOpen(id string) (challenge.Challenge, bool) {
	if i := indexOf(s.Open, id); i >= 0 {
		return s.Open[i], true
	}
	return challenge.Challenge{}, false
}

// Find looks up a challenge by ID in either collection. Prefix matches are
// accepted when they are unambiguous.
func (s State) Find(id string) (challenge.Challenge, bool) {
	var (
		match challenge.Challenge
		n     int
	)
	for _, set := range [][]challenge.Challenge{s.Open, s.Archive} {
		for _, c := range set {
			if c.ID == id {
				return c, true
			}
			if len(id) >= 4 && strings.HasPrefix(c.ID, id) {
				match = c
				n++
			}
		}
	}
	return match, n == 1
}

// ArchiveNewestFirst returns archived challenges, most recently archived first.
func (s State) ArchiveNewestFirst() []challenge.Challenge {
	out := make([]challenge.Challenge, len(s.Archive))
	for i := range s.Archive {
		out[len(s.Archive)-1-i] = s.Archive[i]
	}
	return out
}

// Validate checks the cross-collection invariants.
func (s State) Validate() error {
	seen := make(map[string]bool, len(s.Open)+len(s.Archive))
	for _, c := range s.Open {
		if seen[c.ID] {
			return fmt.Errorf("duplicate open challenge %q", c.ID)
		}
		seen[c.ID] = true
		if c.Status == challenge.Completed {
			return fmt.Errorf("open challenge %q is completed", c.ID)
		}
	}
	for _, c := range s.Archive {
		if seen[c.ID] {
			return fmt.Errorf("challenge %q is both open and archived", c.ID)
		}
		seen[c.ID] = true
		if c.Status != challenge.Completed || c.CompletedAt == nil {
			return fmt.Errorf("archived challenge %q is not completed", c.ID)
		}
	}
	if s.ActiveID != "" && indexOf(s.Open, s.ActiveID) < 0 {
		return fmt.Errorf("active challenge %q is not open", s.ActiveID)
	}
	if s.Streak.Current < 0 || s.Streak.Longest < s.Streak.Current {
		return fmt.Errorf("streak %d/%d violates longest >= current >= 0", s.Streak.Current, s.Streak.Longest)
	}
	return nil
}

func indexOf(set []challenge.Challenge, id string) int {
	for i, c := range set {
		if c.ID == id {
			return i
		}
	}
	return -1
}
