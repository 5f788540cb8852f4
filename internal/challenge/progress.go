package challenge

import (
	"math"
	"time"

	"github.com/abhisek/goalify/internal/clock"
)

// Progress is the derived part of a challenge at a point in time.
type Progress struct {
	Percent       int
	DaysRemaining int
	Status        Status
	CompletedAt   *time.Time
}

// DaysElapsed counts calendar days since creation, with the creation day as
// day 1. A creation date after now yields 0.
func DaysElapsed(c Challenge, now time.Time) int {
	if c.CreatedAt.IsZero() {
		return 0
	}
	return max(clock.DaysBetween(c.CreatedAt, now)+1, 0)
}

// ComputeProgress derives progress from elapsed calendar days. A duration
// below 1 is treated as 1. Completion is sticky: a completed challenge stays
// completed and keeps its original CompletedAt.
func ComputeProgress(c Challenge, now time.Time) Progress {
	duration := max(c.Duration, 1)
	elapsed := DaysElapsed(c, now)

	percent := int(math.Round(float64(elapsed) / float64(duration) * 100))
	percent = min(max(percent, 0), 100)

	p := Progress{
		Percent:       percent,
		DaysRemaining: max(duration-elapsed, 0),
		Status:        c.Status,
	}
	if c.CompletedAt != nil {
		at := *c.CompletedAt
		p.CompletedAt = &at
	}
	if p.Status == "" {
		p.Status = Active
	}

	if p.Status == Completed {
		// Already done: progress never drops back below 100.
		p.Percent = 100
		p.DaysRemaining = 0
		if p.CompletedAt == nil {
			at := now
			p.CompletedAt = &at
		}
		return p
	}

	if percent >= 100 {
		at := now
		p.Status = Completed
		p.CompletedAt = &at
	}
	return p
}

// Apply returns a copy of c with its derived fields recomputed at now.
func Apply(c Challenge, now time.Time) Challenge {
	p := ComputeProgress(c, now)
	out := c.Clone()
	out.Progress = p.Percent
	out.DaysRemaining = p.DaysRemaining
	out.Status = p.Status
	out.CompletedAt = p.CompletedAt
	return out
}

// MarkCompleted forces c to completed regardless of elapsed time. An
// existing CompletedAt is kept.
func MarkCompleted(c Challenge, now time.Time) Challenge {
	out := c.Clone()
	out.Status = Completed
	out.Progress = 100
	out.DaysRemaining = 0
	if out.CompletedAt == nil {
		at := now
		out.CompletedAt = &at
	}
	return out
}
