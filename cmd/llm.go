package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/goalify/internal/llm"
	"github.com/abhisek/goalify/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect AI coach requests, token usage and cost",
}

// withEvents opens the database just for reading the event log.
func withEvents(cmd *cobra.Command, fn func(repo store.EventRepo) error) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.OpenContext(cmd.Context(), dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(st.EventRepo())
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		out := cmd.OutOrStdout()

		return withEvents(cmd, func(repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}

			shown := 0
			for _, e := range events {
				if purpose != "" && e.Purpose != purpose {
					continue
				}
				if shown == 0 {
					fmt.Fprintf(out, "%-5s  %-16s  %-17s  %-28s  %6s  %6s  %7s  %s\n",
						"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
					fmt.Fprintln(out, strings.Repeat(rule, 100))
				}
				ok := "✓"
				if !e.Success {
					ok = "✗"
				}
				fmt.Fprintf(out, "%-5d  %-16s  %-17s  %-28s  %6d  %6d  %7d  %s\n",
					e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"), e.Purpose,
					truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, "No AI requests recorded yet.")
			}
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and response of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}
		out := cmd.OutOrStdout()

		return withEvents(cmd, func(repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			fmt.Fprintf(out, "ID:        %d\n", e.ID)
			fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Provider:  %s (%s)\n", e.Provider, e.Model)
			fmt.Fprintf(out, "Purpose:   %s\n", e.Purpose)
			fmt.Fprintf(out, "Tokens:    %d in / %d out in %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
			if e.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
			}
			printBody(out, "REQUEST", e.RequestBody)
			printBody(out, "RESPONSE", e.ResponseBody)
			return nil
		})
	},
}

func printBody(w io.Writer, title, body string) {
	sep := strings.Repeat(rule, 60)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", sep, title, sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintln(w, body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage by purpose and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		return withEvents(cmd, func(repo store.EventRepo) error {
			stats, err := repo.LLMUsageByPurpose(cmd.Context())
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(stats) == 0 {
				fmt.Fprintln(out, "No AI usage recorded yet.")
				return nil
			}

			line := strings.Repeat(rule, 72)
			fmt.Fprintf(out, "%-18s  %6s  %10s  %10s  %8s\n%s\n", "Purpose", "Calls", "Input", "Output", "Avg Ms", line)
			var calls, in, outTok int
			for _, st := range stats {
				fmt.Fprintf(out, "%-18s  %6d  %10d  %10d  %8d\n",
					st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.AvgLatencyMs)
				calls += st.Calls
				in += st.InputTokens
				outTok += st.OutputTokens
			}
			fmt.Fprintf(out, "%s\n%-18s  %6d  %10d  %10d\n", line, "TOTAL", calls, in, outTok)

			models, err := repo.LLMUsageByModel(cmd.Context())
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			if len(models) == 0 {
				return nil
			}

			fmt.Fprintf(out, "\nEstimated cost (USD)\n%-32s  %6s  %10s\n%s\n", "Model", "Calls", "Cost", line)
			var total float64
			var unpriced []string
			for _, mu := range models {
				cost := "?"
				if p := llm.LookupCost(mu.Model); p != nil {
					c := p.Cost(mu.InputTokens, mu.OutputTokens)
					total += c
					cost = formatCost(c)
				} else {
					unpriced = append(unpriced, mu.Model)
				}
				fmt.Fprintf(out, "%-32s  %6d  %10s\n", truncate(mu.Model, 32), mu.Calls, cost)
			}
			label := "TOTAL"
			if len(unpriced) > 0 {
				label = "TOTAL (partial)"
			}
			fmt.Fprintf(out, "%s\n%-32s  %6s  %10s\n", line, label, "", formatCost(total))
			if len(unpriced) > 0 {
				fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose ("+llm.PurposeChallengeGen+" or "+llm.PurposeChallengeOptions+")")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
