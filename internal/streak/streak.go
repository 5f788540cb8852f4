// Package streak implements the daily-activity streak rules.
//
// A streak counts consecutive calendar days with at least one qualifying
// activity. Days are compared by calendar date in the location of the "now"
// passed in, never by elapsed hours.
package streak

import (
	"time"

	"github.com/abhisek/goalify/internal/clock"
)

// State is the persisted streak counter.
type State struct {
	Current      int
	Longest      int
	LastActivity *time.Time
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	if s.LastActivity != nil {
		t := *s.LastActivity
		s.LastActivity = &t
	}
	return s
}

// gap returns the calendar days since the last activity. A last activity
// dated after now counts as today.
func (s State) gap(now time.Time) int {
	return max(clock.DaysBetween(*s.LastActivity, now), 0)
}

// DaysSince reports how many calendar days have passed since the last
// activity, or false if there has never been one.
func (s State) DaysSince(now time.Time) (int, bool) {
	if s.LastActivity == nil {
		return 0, false
	}
	return s.gap(now), true
}

// ActiveToday reports whether activity was already recorded on now's date.
func (s State) ActiveToday(now time.Time) bool {
	d, ok := s.DaysSince(now)
	return ok && d == 0
}

// Check is the passive check run on every check-in. It never increments:
// a streak with no prior activity, or whose last activity was today or
// yesterday, is returned unchanged. A longer gap resets the streak to zero
// and forgets the last activity date.
func Check(s State, now time.Time) State {
	s = s.Clone()
	if s.LastActivity == nil {
		return s
	}
	if s.gap(now) <= 1 {
		return s
	}
	return State{
		Current: 0,
		Longest: max(s.Longest, s.Current),
	}
}

// RecordActivity registers a qualifying activity at now. Repeated calls on
// the same calendar day are no-ops. Activity the day after the last one
// extends the streak; after a longer gap the streak restarts at 1 with the
// longest streak preserved.
func RecordActivity(s State, now time.Time) State {
	s = s.Clone()

	var current int
	switch {
	case s.LastActivity == nil:
		current = s.Current + 1
	case s.gap(now) == 0:
		return s
	case s.gap(now) == 1:
		current = s.Current + 1
	default:
		current = 1
	}

	at := now
	return State{
		Current:      current,
		Longest:      max(s.Longest, s.Current, current),
		LastActivity: &at,
	}
}
