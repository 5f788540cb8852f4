package challengegen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError describes why a generated plan was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("plan %s: %s", e.Field, e.Message)
}

const (
	maxTitleLen       = 120
	maxDescriptionLen = 1000
	maxListItems      = 10
	maxItemLen        = 300
)

// validatePlan checks the parts of a plan that the schema cannot express.
// It also trims whitespace and drops blank list entries.
func validatePlan(p *planOutput) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)

	switch {
	case p.Title == "":
		return &ValidationError{Field: "title", Message: "is empty"}
	case utf8.RuneCountInString(p.Title) > maxTitleLen:
		return &ValidationError{Field: "title", Message: fmt.Sprintf("exceeds %d characters", maxTitleLen)}
	case p.Description == "":
		return &ValidationError{Field: "description", Message: "is empty"}
	case utf8.RuneCountInString(p.Description) > maxDescriptionLen:
		return &ValidationError{Field: "description", Message: fmt.Sprintf("exceeds %d characters", maxDescriptionLen)}
	}

	lists := []struct {
		field string
		items *[]string
		min   int
	}{
		{"dailyTasks", &p.DailyTasks, 1},
		{"milestones", &p.Milestones, 1},
		{"tips", &p.Tips, 0},
	}
	for _, l := range lists {
		cleaned, err := cleanList(l.field, *l.items, l.min)
		if err != nil {
			return err
		}
		*l.items = cleaned
	}
	return nil
}

func cleanList(field string, items []string, minItems int) ([]string, error) {
	var out []string
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if utf8.RuneCountInString(s) > maxItemLen {
			return nil, &ValidationError{Field: field, Message: fmt.Sprintf("item exceeds %d characters", maxItemLen)}
		}
		out = append(out, s)
	}
	if len(out) < minItems {
		return nil, &ValidationError{Field: field, Message: fmt.Sprintf("needs at least %d item(s)", minItems)}
	}
	if len(out) > maxListItems {
		out = out[:maxListItems]
	}
	return out, nil
}
