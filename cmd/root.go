package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/goalify/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "goalify",
	Short: "Turn goals into daily challenges and keep your streak alive",
	Long: "Goalify is a terminal habit tracker. Tell it your goals, get a time-boxed\n" +
		"challenge for each, check in daily and build a streak.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return setupLogging(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GOALIFY_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("now", "", "Pretend today is this date (YYYY-MM-DD)")
	_ = rootCmd.PersistentFlags().MarkHidden("now")

	rootCmd.Flags().Bool("no-splash", false, "Skip the splash screen")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging installs a text handler on stderr at the --log-level level.
func setupLogging(cmd *cobra.Command) error {
	name, _ := cmd.Flags().GetString("log-level")

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", name, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then GOALIFY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
