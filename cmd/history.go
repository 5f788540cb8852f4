package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/goalify/internal/store"
	"github.com/abhisek/goalify/internal/tracker"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed challenges, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		out := cmd.OutOrStdout()

		if events, _ := cmd.Flags().GetBool("events"); events {
			limit, _ := cmd.Flags().GetInt("limit")
			records, err := s.store.EventRepo().QueryActivityEvents(cmd.Context(), store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query activity: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No activity recorded yet.")
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(out, "%s  %s\n",
					r.OccurredAt.Local().Format("2006-01-02 15:04"),
					tracker.EffectFromActivity(r.ActivityEventData).Message())
			}
			return nil
		}

		archive := s.tracker.State().ArchiveNewestFirst()
		if len(archive) == 0 {
			fmt.Fprintln(out, "No completed challenges yet.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-10s  %-32s  %-6s  %s\n", "ID", "Completed", "Title", "Level", "Duration")
		fmt.Fprintln(out, strings.Repeat(rule, 72))
		for _, c := range archive {
			done := ""
			if c.CompletedAt != nil {
				done = c.CompletedAt.Format("2006-01-02")
			}
			fmt.Fprintf(out, "%-8s  %-10s  %-32s  %-6s  %dd\n",
				shortID(c.ID), done, truncate(c.Title, 32), c.Difficulty, c.Duration)
		}
		fmt.Fprintf(out, "\n%d completed\n", len(archive))
		return nil
	},
}

func init() {
	historyCmd.Flags().Bool("events", false, "Show the activity log instead")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of activity events to show")
}
