package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/tracker"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change your preferences",
	Example: `  goalify settings
  goalify settings --theme dark --duration 14`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		current := s.tracker.State().Settings
		next, changed, err := settingsFromFlags(cmd, current)
		if err != nil {
			return err
		}
		if changed {
			state, _, err := s.tracker.Dispatch(tracker.UpdateSettings{Settings: next})
			if err != nil {
				return fmt.Errorf("update settings: %w", err)
			}
			current = state.Settings
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Theme:              %s\n", current.Theme)
		fmt.Fprintf(out, "Notifications:      %s\n", onOff(current.Notifications))
		fmt.Fprintf(out, "Language:           %s\n", current.Language)
		fmt.Fprintf(out, "Default difficulty: %s\n", current.DefaultDifficulty.Label())
		fmt.Fprintf(out, "Default duration:   %d days\n", current.DefaultDuration)
		return nil
	},
}

func init() {
	f := settingsCmd.Flags()
	f.String("theme", "", "Color scheme: light or dark")
	f.Bool("notifications", true, "Enable notifications")
	f.String("language", "", "Interface language code")
	f.String("difficulty", "", "Default difficulty: easy, medium or hard")
	f.Int("duration", 0, fmt.Sprintf("Default challenge length in days, one of %v", challenge.Durations))
}

// settingsFromFlags applies the flags the user actually passed to s.
func settingsFromFlags(cmd *cobra.Command, s tracker.Settings) (tracker.Settings, bool, error) {
	f := cmd.Flags()
	changed := false

	if f.Changed("theme") {
		v, _ := f.GetString("theme")
		t, err := tracker.ParseTheme(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return s, false, err
		}
		s.Theme, changed = t, true
	}
	if f.Changed("notifications") {
		s.Notifications, _ = f.GetBool("notifications")
		changed = true
	}
	if f.Changed("language") {
		v, _ := f.GetString("language")
		s.Language, changed = strings.TrimSpace(v), true
	}
	if f.Changed("difficulty") {
		v, _ := f.GetString("difficulty")
		d, err := challenge.ParseDifficulty(v)
		if err != nil {
			return s, false, err
		}
		s.DefaultDifficulty, changed = d, true
	}
	if f.Changed("duration") {
		s.DefaultDuration, _ = f.GetInt("duration")
		changed = true
	}
	return s, changed, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
