package tracker

import (
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/streak"
)

// Reduce computes the state that follows s after e, along with the effects
// of the transition. s is never modified. On error the returned state is s
// and no effects are reported.
func Reduce(s State, e Event) (State, []Effect, error) {
	next := s.Clone()

	var (
		effects []Effect
		err     error
	)
	switch e := e.(type) {
	case CheckIn:
		effects = checkIn(&next, e.Now)
	case Complete:
		effects, err = complete(&next, e.ID, e.Now)
	case Create:
		effects, err = create(&next, e.Challenge, e.Now)
	case Activate:
		err = activate(&next, e.ID)
	case UpdateProfile:
		err = updateProfile(&next, e.Profile)
	case UpdateSettings:
		err = e.Settings.Validate()
		next.Settings = e.Settings
	case Reset:
		next = DefaultState()
	default:
		err = fmt.Errorf("unsupported event %T", e)
	}
	if err != nil {
		return s, nil, err
	}

	next.Revision = s.Revision + 1
	return next, effects, nil
}

// checkIn runs the passive streak check, then recomputes every open
// challenge and archives the ones that finished.
func checkIn(s *State, now time.Time) []Effect {
	var effects []Effect

	before := s.Streak
	s.Streak = streak.Check(s.Streak, now)
	if before.LastActivity != nil && s.Streak.LastActivity == nil {
		// Streak carries the run that was lost.
		effects = append(effects, Effect{Kind: EffectStreakReset, Streak: before, At: now})
	}

	var open []challenge.Challenge
	for _, c := range s.Open {
		c = challenge.Apply(c, now)
		if !c.IsCompleted() {
			open = append(open, c)
			continue
		}
		effects = append(effects, archive(s, c, now)...)
	}
	s.Open = open

	return effects
}

func complete(s *State, id string, now time.Time) ([]Effect, error) {
	i := indexOf(s.Open, id)
	if i < 0 {
		return nil, fmt.Errorf("complete %q: %w", id, ErrChallengeNotFound)
	}

	c := challenge.MarkCompleted(s.Open[i], now)
	s.Open = slices.Delete(s.Open, i, i+1)
	if len(s.Open) == 0 {
		s.Open = nil
	}
	return archive(s, c, now), nil
}

// archive moves a completed challenge into the archive and credits the
// streak. c must already be removed from the open set.
func archive(s *State, c challenge.Challenge, now time.Time) []Effect {
	s.Archive = append(s.Archive, c)
	if s.ActiveID == c.ID {
		s.ActiveID = ""
	}

	effects := []Effect{{
		Kind:        EffectChallengeCompleted,
		ChallengeID: c.ID,
		Title:       c.Title,
		At:          now,
	}}
	return append(effects, recordActivity(s, now)...)
}

func recordActivity(s *State, now time.Time) []Effect {
	before := s.Streak
	s.Streak = streak.RecordActivity(s.Streak, now)
	if before.LastActivity != nil && s.Streak.LastActivity.Equal(*before.LastActivity) {
		return nil // already credited today
	}

	effects := []Effect{{Kind: EffectStreakExtended, Streak: s.Streak.Clone(), At: now}}
	for _, m := range streak.Crossed(before.Current, s.Streak.Current) {
		effects = append(effects, Effect{Kind: EffectMilestoneReached, Milestone: m, Streak: s.Streak.Clone(), At: now})
	}
	return effects
}

func create(s *State, c challenge.Challenge, now time.Time) ([]Effect, error) {
	if c.ID == "" {
		return nil, fmt.Errorf("create challenge: missing id")
	}
	if indexOf(s.Open, c.ID) >= 0 || indexOf(s.Archive, c.ID) >= 0 {
		return nil, fmt.Errorf("create %q: %w", c.ID, ErrDuplicateChallenge)
	}

	c = c.Clone()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.Difficulty == "" {
		c.Difficulty = s.Settings.DefaultDifficulty
	}
	c.Progress = 0
	c.DaysRemaining = max(c.Duration, 1)
	c.Status = challenge.Active
	c.CompletedAt = nil

	s.Open = append(s.Open, c)
	s.ActiveID = c.ID

	return []Effect{{
		Kind:        EffectChallengeCreated,
		ChallengeID: c.ID,
		Title:       c.Title,
		At:          c.CreatedAt,
	}}, nil
}

func activate(s *State, id string) error {
	if indexOf(s.Open, id) < 0 {
		return fmt.Errorf("activate %q: %w", id, ErrChallengeNotFound)
	}
	s.ActiveID = id
	return nil
}

func updateProfile(s *State, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p = p.clone()
	if p.CreatedAt == nil {
		p.CreatedAt = s.Profile.CreatedAt
	}
	s.Profile = p
	return nil
}

// Validate checks settings submitted by the user.
func (s Settings) Validate() error {
	if _, err := ParseTheme(string(s.Theme)); err != nil {
		return err
	}
	if !s.DefaultDifficulty.Valid() {
		return fmt.Errorf("unknown default difficulty %q", s.DefaultDifficulty)
	}
	if !challenge.ValidDuration(s.DefaultDuration) {
		return fmt.Errorf("default duration must be one of %v days", challenge.Durations)
	}
	if s.Language == "" {
		return fmt.Errorf("language is required")
	}
	return nil
}
