// Package clock supplies the current time to the tracker and the calendar
// arithmetic the streak and progress engines share.
package clock

import (
	"sync"
	"time"
)

// Clock is the source of "now". Engines never read the wall clock directly;
// the caller injects a Clock at the edges.
type Clock interface {
	Now() time.Time
}

// System reads the local wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed is a settable clock for tests and the --now debug flag.
type Fixed struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixed returns a Fixed clock pinned to t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = t
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

// AddDays moves the clock forward by n calendar days, keeping the wall time.
func (f *Fixed) AddDays(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.AddDate(0, 0, n)
}

// Date truncates t to midnight of its calendar date in t's own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from "from" to "to", with
// both instants read in to's location. Time of day is ignored, so 23:59 and
// 00:01 the next morning are one day apart. The result is negative when from
// falls on a later date than to.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.In(to.Location()).Date()
	ty, tm, td := to.Date()
	// Compare UTC midnights so DST transitions never yield a 23 or 25 hour day.
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar date in b's location.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// ParseDay parses a "2006-01-02" date or an RFC3339 timestamp in loc. It is
// used by the CLI to pin the clock for a single invocation.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, err
	}
	// Midday keeps the pinned instant away from midnight edges.
	return t.Add(12 * time.Hour), nil
}
