package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/clock"
	"github.com/abhisek/goalify/internal/store"
)

// DefaultKeepSnapshots is how many snapshots survive pruning.
const DefaultKeepSnapshots = 20

// Options configures a Tracker. Every field is optional: without
// Snapshots the tracker is in-memory only.
type Options struct {
	Clock     clock.Clock
	Snapshots store.SnapshotRepo
	Events    store.EventRepo
	Logger    *slog.Logger
	Reporter  ErrorReporter

	// KeepSnapshots bounds the snapshot table. Zero means DefaultKeepSnapshots;
	// negative disables pruning.
	KeepSnapshots int
}

// Tracker is the state container. Each dispatch reads the current state,
// reduces it and swaps the result in under one lock, so concurrent
// dispatches never interleave. Persistence happens afterwards in the
// background and never blocks or rolls back a dispatch.
type Tracker struct {
	mu      sync.Mutex
	state   State
	clock   clock.Clock
	logger  *slog.Logger
	persist *persister
}

// New loads the most recent snapshot, or starts from defaults when there is
// none or it cannot be read.
func New(ctx context.Context, opts Options) *Tracker {
	t := &Tracker{
		state:  DefaultState(),
		clock:  opts.Clock,
		logger: opts.Logger,
	}
	if t.clock == nil {
		t.clock = clock.System{}
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}

	if opts.Snapshots != nil {
		snap, err := opts.Snapshots.Latest(ctx)
		switch {
		case err != nil:
			t.logger.Error("loading tracker state failed, starting from defaults", "error", err)
			if opts.Reporter != nil {
				opts.Reporter.ReportError(err)
			}
		case snap != nil:
			t.state = FromSnapshotData(snap.Data, t.clock.Now())
			if t.state.Revision < snap.Sequence {
				t.state.Revision = snap.Sequence
			}
			t.logger.Debug("tracker state loaded", "revision", t.state.Revision, "open", len(t.state.Open), "archived", len(t.state.Archive))
		}
	}

	if opts.Snapshots != nil || opts.Events != nil {
		keep := opts.KeepSnapshots
		if keep == 0 {
			keep = DefaultKeepSnapshots
		}
		t.persist = newPersister(opts.Snapshots, opts.Events, keep, t.logger, opts.Reporter)
	}
	return t
}

// State returns a deep copy of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Now reads the tracker's clock.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// Dispatch applies e and returns a copy of the resulting state together with
// the effects of the transition. On error the state is unchanged.
func (t *Tracker) Dispatch(e Event) (State, []Effect, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, effects, err := Reduce(t.state, e)
	if err != nil {
		return t.state.Clone(), nil, err
	}
	t.state = next

	for _, eff := range effects {
		t.logger.Info("tracker transition", "kind", eff.Kind, "challenge", eff.ChallengeID, "streak", eff.Streak.Current, "milestone", eff.Milestone)
	}

	if t.persist != nil {
		// Enqueued under the lock so the writer sees revisions in order.
		t.persist.enqueue(&store.Snapshot{
			Sequence:  next.Revision,
			Timestamp: t.clock.Now(),
			Data:      ToSnapshotData(next),
		}, effects)
	}
	return next.Clone(), effects, nil
}

// CheckIn recomputes the streak and challenge progress at the current time.
func (t *Tracker) CheckIn() (State, []Effect) {
	s, effects, _ := t.Dispatch(CheckIn{Now: t.clock.Now()})
	return s, effects
}

// Complete marks an open challenge as done now.
func (t *Tracker) Complete(id string) (State, []Effect, error) {
	return t.Dispatch(Complete{ID: id, Now: t.clock.Now()})
}

// Create adds c to the open set and makes it active.
func (t *Tracker) Create(c challenge.Challenge) (State, []Effect, error) {
	return t.Dispatch(Create{Challenge: c, Now: t.clock.Now()})
}

// Activate makes an open challenge the active one.
func (t *Tracker) Activate(id string) (State, error) {
	s, _, err := t.Dispatch(Activate{ID: id})
	return s, err
}

// Flush waits until every state change dispatched so far has been written.
func (t *Tracker) Flush(ctx context.Context) error {
	if t.persist == nil {
		return nil
	}
	return t.persist.flush(ctx)
}

// Close writes pending state and stops the background writer.
func (t *Tracker) Close(ctx context.Context) error {
	if t.persist == nil {
		return nil
	}
	return t.persist.close(ctx)
}

// PersistFailures reports how many snapshot writes have failed in this
// process.
func (t *Tracker) PersistFailures() int {
	if t.persist == nil {
		return 0
	}
	return t.persist.failureCount()
}
