package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Update the streak and challenge progress for today",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		state := s.tracker.State()
		out := cmd.OutOrStdout()
		printStreak(out, state.Streak)
		fmt.Fprintln(out)
		printOpenTable(out, state)
		return nil
	},
}
