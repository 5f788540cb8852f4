// Package challenge defines the challenge model and the progress engine that
// derives a challenge's completion from elapsed calendar days.
package challenge

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is how demanding a challenge is.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists every difficulty, easiest first.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty parses a difficulty name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	_, err := ParseDifficulty(string(d))
	return err == nil
}

// Label returns the capitalized display name.
func (d Difficulty) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Status is the lifecycle state of a challenge. The only transition is
// Active to Completed.
type Status string

const (
	Active    Status = "active"
	Completed Status = "completed"
)

// Durations are the challenge lengths offered when creating a challenge.
var Durations = []int{7, 14, 30}

// Challenge is a time-boxed goal. Progress, DaysRemaining, Status and
// CompletedAt are derived by the progress engine; everything else is set
// when the challenge is created.
type Challenge struct {
	ID          string
	Title       string
	Description string
	Goal        string
	Difficulty  Difficulty
	Duration    int
	CreatedAt   time.Time

	Progress      int
	DaysRemaining int
	Status        Status
	CompletedAt   *time.Time

	DailyTasks []string
	Milestones []string
	Tips       []string

	// Fallback is set when the content was synthesized locally because the
	// generator could not produce it.
	Fallback bool
}

// IsCompleted reports whether the challenge has reached its terminal state.
func (c Challenge) IsCompleted() bool {
	return c.Status == Completed
}

// Clone returns a deep copy of c.
func (c Challenge) Clone() Challenge {
	if c.CompletedAt != nil {
		t := *c.CompletedAt
		c.CompletedAt = &t
	}
	c.DailyTasks = cloneStrings(c.DailyTasks)
	c.Milestones = cloneStrings(c.Milestones)
	c.Tips = cloneStrings(c.Tips)
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
