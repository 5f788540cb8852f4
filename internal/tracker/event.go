package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/streak"
)

var (
	// ErrChallengeNotFound is returned when an event names a challenge that
	// is not in the open set.
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrDuplicateChallenge is returned when a created challenge reuses an ID.
	ErrDuplicateChallenge = errors.New("challenge already exists")

	// ErrNotOnboarded is returned when a goal is needed but the user has
	// neither supplied one nor completed onboarding.
	ErrNotOnboarded = errors.New("onboarding not completed")
)

// Event is a request to change the tracker state.
type Event interface {
	event()
}

// CheckIn recomputes the streak and every open challenge at Now.
type CheckIn struct {
	Now time.Time
}

// Complete marks an open challenge as done regardless of elapsed time.
type Complete struct {
	ID  string
	Now time.Time
}

// Create adds a challenge to the open set and makes it active.
type Create struct {
	Challenge challenge.Challenge
	Now       time.Time
}

// Activate surfaces an open challenge as the active one.
type Activate struct {
	ID string
}

// UpdateProfile replaces the onboarding profile.
type UpdateProfile struct {
	Profile Profile
}

// UpdateSettings replaces the settings.
type UpdateSettings struct {
	Settings Settings
}

// Reset returns the tracker to a fresh install.
type Reset struct{}

func (CheckIn) event()        {}
func (Complete) event()       {}
func (Create) event()         {}
func (Activate) event()       {}
func (UpdateProfile) event()  {}
func (UpdateSettings) event() {}
func (Reset) event()          {}

// EffectKind names a transition worth telling the user about.
type EffectKind string

const (
	EffectStreakReset        EffectKind = "streak_reset"
	EffectStreakExtended     EffectKind = "streak_extended"
	EffectChallengeCreated   EffectKind = "challenge_created"
	EffectChallengeCompleted EffectKind = "challenge_completed"
	EffectMilestoneReached   EffectKind = "milestone_reached"
)

// Effect is a side note produced by a reduction. The state itself is the
// source of truth; effects exist for display and the activity log.
type Effect struct {
	Kind        EffectKind
	ChallengeID string
	Title       string
	Streak      streak.State
	Milestone   int
	At          time.Time
}

// Message renders the effect as a one-line notice.
func (e Effect) Message() string {
	switch e.Kind {
	case EffectStreakReset:
		return fmt.Sprintf("Your streak of %s ended. Start a new one today!", days(e.Streak.Current))
	case EffectStreakExtended:
		return fmt.Sprintf("Streak extended to %s 🔥", days(e.Streak.Current))
	case EffectChallengeCreated:
		return fmt.Sprintf("New challenge: %s", e.Title)
	case EffectChallengeCompleted:
		return fmt.Sprintf("Challenge completed: %s 🎉", e.Title)
	case EffectMilestoneReached:
		return fmt.Sprintf("Milestone reached: %s!", days(e.Milestone))
	}
	return string(e.Kind)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
