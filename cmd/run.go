package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/goalify/internal/app"
	"github.com/abhisek/goalify/internal/challengegen"
	"github.com/abhisek/goalify/internal/clock"
	"github.com/abhisek/goalify/internal/llm"
	"github.com/abhisek/goalify/internal/screen"
	"github.com/abhisek/goalify/internal/store"
	"github.com/abhisek/goalify/internal/tracker"
)

// closeTimeout bounds how long a command waits for pending writes on exit.
const closeTimeout = 5 * time.Second

// session is what a command needs to work on the user's data.
type session struct {
	store   *store.Store
	tracker *tracker.Tracker
	clock   clock.Clock
}

// openSession loads the tracker and checks in for today, so every command
// sees current progress and streak. Transitions are printed before the
// command's own output. The caller must call close.
func openSession(cmd *cobra.Command) (*session, error) {
	s, err := loadSession(cmd)
	if err != nil {
		return nil, err
	}
	if _, effects := s.tracker.CheckIn(); len(effects) > 0 {
		out := cmd.OutOrStdout()
		printEffects(out, effects)
		fmt.Fprintln(out)
	}
	return s, nil
}

// loadSession opens the database and loads the tracker from its latest
// snapshot without checking in. The caller must call close.
func loadSession(cmd *cobra.Command) (*session, error) {
	clk, err := resolveClock(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.OpenContext(cmd.Context(), dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	errOut := cmd.ErrOrStderr()
	tr := tracker.New(cmd.Context(), tracker.Options{
		Clock:     clk,
		Snapshots: st.SnapshotRepo(),
		Events:    st.EventRepo(),
		Logger:    slog.Default(),
		Reporter: tracker.ReporterFunc(func(err error) {
			fmt.Fprintln(errOut, "warning: could not save your progress:", err)
		}),
	})
	return &session{store: st, tracker: tr, clock: clk}, nil
}

// close writes pending state and closes the database.
func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := s.tracker.Close(ctx); err != nil {
		slog.Error("flushing tracker state failed", "error", err)
	}
	if err := s.store.Close(); err != nil {
		slog.Error("closing store failed", "error", err)
	}
}

// generator builds the challenge generator. Without a configured provider
// it still works, producing the offline plan.
func (s *session) generator(cmd *cobra.Command, forOptions bool) challengegen.Generator {
	provider, _, err := llm.NewProviderFromEnv(cmd.Context(), s.store.EventRepo())
	switch {
	case errors.Is(err, llm.ErrNoProvider):
		slog.Info("no LLM provider configured, using offline challenge plans")
	case err != nil:
		fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Using offline challenge plans.")
		provider = nil
	}

	gen := challengegen.New(provider, challengegen.DefaultConfig(), s.clock)
	if forOptions {
		return gen.ForOptions()
	}
	return gen
}

// resolveClock honours the hidden --now flag.
func resolveClock(cmd *cobra.Command) (clock.Clock, error) {
	v, _ := cmd.Flags().GetString("now")
	if v == "" {
		return clock.System{}, nil
	}
	t, err := clock.ParseDay(v, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --now %q: %w", v, err)
	}
	return clock.NewFixed(t), nil
}

// runApp opens the store, builds dependencies, and launches the dashboard.
func runApp(cmd *cobra.Command) error {
	// The dashboard checks in itself so it can show the transitions.
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	err = app.Run(app.Options{
		Env: screen.Env{
			Tracker:   s.tracker,
			Generator: s.generator(cmd, false),
			Events:    s.store.EventRepo(),
		},
		SkipSplash: noSplash,
	})
	if n := s.tracker.PersistFailures(); n > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d state writes failed this session\n", n)
	}
	return err
}
