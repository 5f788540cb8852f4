package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/streak"
	"github.com/abhisek/goalify/internal/tracker"
)

const rule = "\u2500"

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printEffects(w io.Writer, effects []tracker.Effect) {
	for _, e := range effects {
		fmt.Fprintln(w, "•", e.Message())
	}
}

func printStreak(w io.Writer, st streak.State) {
	last := "never"
	if st.LastActivity != nil {
		last = st.LastActivity.Format("2006-01-02")
	}
	fmt.Fprintf(w, "Streak: %s (longest %s, last activity %s)\n", dayCount(st.Current), dayCount(st.Longest), last)
}

func dayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func printOpenTable(w io.Writer, s tracker.State) {
	if len(s.Open) == 0 {
		fmt.Fprintln(w, "No open challenges. Create one with: goalify challenge new")
		return
	}
	fmt.Fprintf(w, "%-1s %-8s  %-32s  %-6s  %8s  %4s  %s\n", "", "ID", "Title", "Level", "Duration", "Done", "Left")
	fmt.Fprintln(w, strings.Repeat(rule, 80))
	for _, c := range s.Open {
		marker := " "
		if c.ID == s.ActiveID {
			marker = "*"
		}
		fmt.Fprintf(w, "%-1s %-8s  %-32s  %-6s  %7dd  %3d%%  %dd\n",
			marker, shortID(c.ID), truncate(c.Title, 32), c.Difficulty, c.Duration, c.Progress, c.DaysRemaining)
	}
}

func printChallenge(w io.Writer, c challenge.Challenge) {
	fmt.Fprintf(w, "%s  [%s]\n", c.Title, c.Difficulty.Label())
	fmt.Fprintf(w, "ID:        %s\n", c.ID)
	fmt.Fprintf(w, "Goal:      %s\n", c.Goal)
	fmt.Fprintf(w, "Started:   %s\n", c.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(w, "Duration:  %d days\n", c.Duration)
	fmt.Fprintf(w, "Progress:  %d%% (%d days left)\n", c.Progress, c.DaysRemaining)
	if c.CompletedAt != nil {
		fmt.Fprintf(w, "Completed: %s\n", c.CompletedAt.Format("2006-01-02"))
	}
	if c.Description != "" {
		fmt.Fprintf(w, "\n%s\n", c.Description)
	}
	printList(w, "Daily tasks", c.DailyTasks)
	printList(w, "Milestones", c.Milestones)
	printList(w, "Tips", c.Tips)
	if c.Fallback {
		fmt.Fprintln(w, "\n(offline plan: no AI provider was available)")
	}
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}
