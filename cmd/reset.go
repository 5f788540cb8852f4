package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/goalify/internal/tracker"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the profile, streak, challenges and settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this erases all your progress; re-run with --yes to confirm")
		}

		s, err := loadSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		if _, _, err := s.tracker.Dispatch(tracker.Reset{}); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All progress has been reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
