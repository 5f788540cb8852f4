package challenge

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinGoalLen = 3
	MaxGoalLen = 100
)

// FieldError describes a user-supplied value that was rejected.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NormalizeGoal trims goal and checks its length.
func NormalizeGoal(goal string) (string, error) {
	goal = strings.TrimSpace(goal)
	n := utf8.RuneCountInString(goal)
	switch {
	case n == 0:
		return "", &FieldError{Field: "goal", Message: "please enter a goal"}
	case n < MinGoalLen:
		return "", &FieldError{Field: "goal", Message: fmt.Sprintf("goal must be at least %d characters", MinGoalLen)}
	case n > MaxGoalLen:
		return "", &FieldError{Field: "goal", Message: fmt.Sprintf("goal must be at most %d characters", MaxGoalLen)}
	}
	return goal, nil
}

// ValidDuration reports whether days is one of the offered durations.
func ValidDuration(days int) bool {
	for _, d := range Durations {
		if d == days {
			return true
		}
	}
	return false
}
