package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/goalify/internal/streak"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current streak and milestones",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		st := s.tracker.State().Streak
		out := cmd.OutOrStdout()
		printStreak(out, st)

		fmt.Fprintln(out, "\nMilestones:")
		for _, m := range streak.Milestones {
			mark := "○"
			if st.Current >= m {
				mark = "✓"
			}
			fmt.Fprintf(out, "  %s %d days\n", mark, m)
		}
		if next, ok := streak.NextMilestone(st.Current); ok {
			fmt.Fprintf(out, "\nNext milestone: %d days (%s to go)\n", next, dayCount(next-st.Current))
		} else {
			fmt.Fprintln(out, "\nEvery milestone reached!")
		}
		return nil
	},
}
