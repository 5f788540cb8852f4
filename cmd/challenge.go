package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/challengegen"
	"github.com/abhisek/goalify/internal/tracker"
)

var challengeCmd = &cobra.Command{
	Use:     "challenge",
	Aliases: []string{"c"},
	Short:   "Create and manage challenges",
}

var challengeNewCmd = &cobra.Command{
	Use:   "new [goal]",
	Short: "Generate a challenge for a goal and make it active",
	Long: "Generate a challenge for a goal and make it active.\n\n" +
		"Without a goal, the first focus area picked during onboarding is used.\n" +
		"Plans come from the configured AI provider, or an offline template.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		in, err := generationInput(cmd, s.tracker.State(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		var c challenge.Challenge
		if options, _ := cmd.Flags().GetBool("options"); options {
			variants := challengegen.GenerateOptions(cmd.Context(), s.generator(cmd, true), in)
			fmt.Fprintln(out, "Options:")
			for _, v := range variants {
				fmt.Fprintf(out, "  %-6s  %s\n", v.Difficulty, v.Title)
			}
			fmt.Fprintln(out)
			picked, ok := challengegen.Pick(variants, in.Difficulty)
			if !ok {
				return fmt.Errorf("no challenge options were generated")
			}
			c = picked
		} else {
			c = s.generator(cmd, false).Generate(cmd.Context(), in)
		}

		_, effects, err := s.tracker.Create(c)
		if err != nil {
			return fmt.Errorf("create challenge: %w", err)
		}
		printChallenge(out, c)
		fmt.Fprintln(out)
		printEffects(out, effects)
		return nil
	},
}

var challengeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List open challenges",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		printOpenTable(cmd.OutOrStdout(), s.tracker.State())
		return nil
	},
}

var challengeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a challenge in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		c, err := lookupChallenge(s.tracker.State(), args[0])
		if err != nil {
			return err
		}
		printChallenge(cmd.OutOrStdout(), c)
		return nil
	},
}

var challengeDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a challenge as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		c, err := lookupChallenge(s.tracker.State(), args[0])
		if err != nil {
			return err
		}
		_, effects, err := s.tracker.Complete(c.ID)
		if errors.Is(err, tracker.ErrChallengeNotFound) {
			return fmt.Errorf("challenge %s is already completed", shortID(c.ID))
		}
		if err != nil {
			return fmt.Errorf("complete challenge: %w", err)
		}
		printEffects(cmd.OutOrStdout(), effects)
		return nil
	},
}

var challengeActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Make an open challenge the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		c, err := lookupChallenge(s.tracker.State(), args[0])
		if err != nil {
			return err
		}
		if _, err := s.tracker.Activate(c.ID); err != nil {
			if errors.Is(err, tracker.ErrChallengeNotFound) {
				return fmt.Errorf("challenge %s is completed and cannot be activated", shortID(c.ID))
			}
			return fmt.Errorf("activate challenge: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Active challenge: %s\n", c.Title)
		return nil
	},
}

func init() {
	f := challengeNewCmd.Flags()
	f.StringP("difficulty", "d", "", "easy, medium or hard (defaults to your preference)")
	f.Int("duration", 0, fmt.Sprintf("Length in days, one of %v (defaults to your setting)", challenge.Durations))
	f.String("context", "", "Extra details about you or the goal for the AI coach")
	f.Bool("options", false, "Generate a variant per difficulty and keep the requested one")

	challengeCmd.AddCommand(challengeNewCmd)
	challengeCmd.AddCommand(challengeListCmd)
	challengeCmd.AddCommand(challengeShowCmd)
	challengeCmd.AddCommand(challengeDoneCmd)
	challengeCmd.AddCommand(challengeActivateCmd)
}

// generationInput resolves the goal, difficulty and duration for a new
// challenge from flags, falling back to the profile and settings.
func generationInput(cmd *cobra.Command, s tracker.State, goal string) (challengegen.Input, error) {
	var in challengegen.Input

	if strings.TrimSpace(goal) == "" {
		suggested, err := s.SuggestedGoal()
		if errors.Is(err, tracker.ErrNotOnboarded) {
			return in, fmt.Errorf("name a goal or run 'goalify onboard' first")
		}
		if err != nil {
			return in, err
		}
		goal = suggested
	}
	goal, err := challenge.NormalizeGoal(goal)
	if err != nil {
		return in, err
	}
	in.Goal = goal

	in.Difficulty = s.Settings.DefaultDifficulty
	if s.Profile.DifficultyPreference.Valid() {
		in.Difficulty = s.Profile.DifficultyPreference
	}
	if v, _ := cmd.Flags().GetString("difficulty"); v != "" {
		if in.Difficulty, err = challenge.ParseDifficulty(v); err != nil {
			return in, err
		}
	}

	in.Duration = s.Settings.DefaultDuration
	if cmd.Flags().Changed("duration") {
		in.Duration, _ = cmd.Flags().GetInt("duration")
	}
	if !challenge.ValidDuration(in.Duration) {
		return in, fmt.Errorf("duration must be one of %v days", challenge.Durations)
	}

	extra, _ := cmd.Flags().GetString("context")
	in.UserContext = strings.TrimSpace(strings.Join([]string{s.Profile.Summary(), strings.TrimSpace(extra)}, "\n"))
	return in, nil
}

func lookupChallenge(s tracker.State, id string) (challenge.Challenge, error) {
	c, ok := s.Find(strings.TrimSpace(id))
	if !ok {
		return c, fmt.Errorf("no challenge matches %q (use at least 4 characters of the ID)", id)
	}
	return c, nil
}
