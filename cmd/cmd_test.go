package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day0 = "2025-03-03"

// offline clears every variable that could select an AI provider.
func offline(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GOALIFY_LLM_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "GOALIFY_DB",
	} {
		t.Setenv(k, "")
	}
}

// resetCommands restores every flag in the tree to its default and hands
// every command ctx. Cobra keeps parsed values between Execute calls and
// only fills in a subcommand's context while it is unset, so a context from
// an earlier test would otherwise stick.
func resetCommands(ctx context.Context, c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	c.SetContext(ctx)
	for _, sub := range c.Commands() {
		resetCommands(ctx, sub)
	}
}

type cli struct {
	t  *testing.T
	db string
}

func newCLI(t *testing.T) *cli {
	offline(t)
	return &cli{t: t, db: filepath.Join(t.TempDir(), "goalify.db")}
}

func (c *cli) run(day string, args ...string) (string, error) {
	c.t.Helper()
	ctx := c.t.Context()
	resetCommands(ctx, rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--db", c.db, "--now", day))
	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func (c *cli) mustRun(day string, args ...string) string {
	c.t.Helper()
	out, err := c.run(day, args...)
	require.NoError(c.t, err, "goalify %v", args)
	return out
}

func (c *cli) onboard() {
	c.t.Helper()
	c.mustRun(day0, "onboard",
		"--name", "Sam", "--age", "29", "--gender", "prefer not to say",
		"--situation", "working professional", "--goal", "health & fitness",
		"--goal", "Financial", "--difficulty", "easy")
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun(day0, "version"), "goalify")
}

func TestOnboard(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun(day0, "onboard",
		"--age", "34", "--gender", "Female", "--situation", "Freelancer",
		"--goal", "Creative & Hobbies")
	assert.Contains(t, out, "Welcome aboard, Champion!")

	_, err := c.run(day0, "onboard", "--age", "34", "--gender", "robot",
		"--situation", "Freelancer", "--goal", "Financial")
	assert.ErrorContains(t, err, "--gender")

	_, err = c.run(day0, "onboard", "--age", "34", "--gender", "Female", "--situation", "Freelancer")
	assert.ErrorContains(t, err, "--goal")

	_, err = c.run(day0, "onboard", "--age", "0", "--gender", "Female",
		"--situation", "Freelancer", "--goal", "Financial")
	assert.ErrorContains(t, err, "age must be between 1 and 120")
}

func TestChallengeNew_RequiresGoalOrOnboarding(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(day0, "challenge", "new")
	assert.ErrorContains(t, err, "goalify onboard")

	_, err = c.run(day0, "challenge", "new", "ab")
	assert.ErrorContains(t, err, "at least 3 characters")

	_, err = c.run(day0, "challenge", "new", "Read more", "--duration", "10")
	assert.ErrorContains(t, err, "duration must be one of")
}

func TestChallengeLifecycle(t *testing.T) {
	c := newCLI(t)
	c.onboard()

	out := c.mustRun(day0, "challenge", "new")
	assert.Contains(t, out, "Health & Fitness Challenge  [Easy]")
	assert.Contains(t, out, "offline plan")
	assert.Contains(t, out, "New challenge: Health & Fitness Challenge")

	out = c.mustRun(day0, "challenge", "list")
	assert.Contains(t, out, "Health & Fitness Challenge")
	assert.Contains(t, out, "7d")

	// Seven calendar days later the challenge finishes on its own.
	out = c.mustRun("2025-03-10", "checkin")
	assert.Contains(t, out, "Challenge completed: Health & Fitness Challenge 🎉")
	assert.Contains(t, out, "Streak extended to 1 day 🔥")
	assert.Contains(t, out, "Streak: 1 day (longest 1")
	assert.Contains(t, out, "No open challenges")

	out = c.mustRun("2025-03-10", "history")
	assert.Contains(t, out, "Health & Fitness Challenge")
	assert.Contains(t, out, "1 completed")

	out = c.mustRun("2025-03-10", "history", "--events")
	assert.Contains(t, out, "Challenge completed: Health & Fitness Challenge")

	out = c.mustRun("2025-03-10", "streak")
	assert.Contains(t, out, "○ 7 days")
	assert.Contains(t, out, "Next milestone: 7 days (6 days to go)")
}

var idLine = regexp.MustCompile(`(?m)^ID:\s+(\S+)$`)

func createdID(t *testing.T, out string) string {
	t.Helper()
	m := idLine.FindStringSubmatch(out)
	require.NotNil(t, m, "no ID in output:\n%s", out)
	return m[1]
}

func TestChallengeDoneAndActivate(t *testing.T) {
	c := newCLI(t)

	first := createdID(t, c.mustRun(day0, "challenge", "new", "Read more", "--difficulty", "hard", "--duration", "30"))
	second := createdID(t, c.mustRun(day0, "challenge", "new", "Sleep better"))

	out := c.mustRun(day0, "challenge", "list")
	assert.Contains(t, out, "* "+shortID(second), "the newest challenge is active")

	out = c.mustRun(day0, "challenge", "activate", first[:8])
	assert.Contains(t, out, "Active challenge: Read more Challenge")
	assert.Contains(t, c.mustRun(day0, "challenge", "list"), "* "+shortID(first))

	out = c.mustRun(day0, "challenge", "show", first[:6])
	assert.Contains(t, out, "Read more Challenge  [Hard]")
	assert.Contains(t, out, "Duration:  30 days")

	out = c.mustRun(day0, "challenge", "done", first)
	assert.Contains(t, out, "Challenge completed: Read more Challenge 🎉")

	_, err := c.run(day0, "challenge", "done", first)
	assert.ErrorContains(t, err, "already completed")
	_, err = c.run(day0, "challenge", "activate", first)
	assert.ErrorContains(t, err, "cannot be activated")
	_, err = c.run(day0, "challenge", "done", "zzzz")
	assert.ErrorContains(t, err, "no challenge matches")

	c.mustRun(day0, "reset", "--yes")
	assert.Contains(t, c.mustRun(day0, "challenge", "list"), "No open challenges")
}

func TestCommandsShowTodaysState(t *testing.T) {
	c := newCLI(t)
	id := createdID(t, c.mustRun(day0, "challenge", "new", "Run daily", "--duration", "7"))

	out := c.mustRun("2025-03-05", "challenge", "list")
	assert.Contains(t, out, " 43%  4d")
	assert.NotContains(t, out, "Challenge completed")

	out = c.mustRun("2025-03-05", "challenge", "show", id)
	assert.Contains(t, out, "Progress:  43% (4 days left)")

	out = c.mustRun("2025-03-13", "challenge", "list")
	assert.Contains(t, out, "Challenge completed: Run daily Challenge 🎉")
	assert.Contains(t, out, "Streak extended to 1 day 🔥")
	assert.Contains(t, out, "No open challenges")

	out = c.mustRun("2025-03-13", "history")
	assert.Contains(t, out, "1 completed")
	assert.NotContains(t, out, "Challenge completed", "transitions are reported once")

	out = c.mustRun("2025-03-20", "streak")
	assert.Contains(t, out, "Your streak of 1 day ended.")
	assert.Contains(t, out, "Streak: 0 days (longest 1 day, last activity never)")
}

func TestSettings(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun(day0, "settings")
	assert.Contains(t, out, "Theme:              light")
	assert.Contains(t, out, "Default duration:   7 days")

	out = c.mustRun(day0, "settings", "--theme", "Dark", "--duration", "14", "--notifications=false")
	assert.Contains(t, out, "Theme:              dark")
	assert.Contains(t, out, "Notifications:      off")
	assert.Contains(t, out, "Default duration:   14 days")

	out = c.mustRun(day0, "settings")
	assert.Contains(t, out, "Theme:              dark", "settings must persist")

	_, err := c.run(day0, "settings", "--duration", "10")
	assert.ErrorContains(t, err, "default duration")

	_, err = c.run(day0, "settings", "--theme", "neon")
	assert.ErrorContains(t, err, "unknown theme")
}

func TestReset_RequiresConfirmation(t *testing.T) {
	c := newCLI(t)
	_, err := c.run(day0, "reset")
	assert.ErrorContains(t, err, "--yes")
}

func TestLLMCommands_EmptyLog(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun(day0, "llm", "list"), "No AI requests recorded yet.")
	assert.Contains(t, c.mustRun(day0, "llm", "stats"), "No AI usage recorded yet.")

	_, err := c.run(day0, "llm", "view", "42")
	assert.ErrorContains(t, err, "event 42 not found")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Morni…", truncate("Morning walk", 6))
	assert.Equal(t, "🔥🔥…", truncate("🔥🔥🔥🔥", 3))
}
