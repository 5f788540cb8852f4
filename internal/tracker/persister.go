package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abhisek/goalify/internal/store"
	"github.com/abhisek/goalify/internal/streak"
)

// ErrorReporter receives persistence failures. The tracker keeps running on
// its in-memory state when a write fails; the reporter is how the failure
// reaches the user.
type ErrorReporter interface {
	ReportError(err error)
}

// ReporterFunc adapts a function to ErrorReporter.
type ReporterFunc func(err error)

func (f ReporterFunc) ReportError(err error) { f(err) }

// persister mirrors tracker state to the store on a background goroutine.
// Only the newest pending snapshot is kept; effects are never coalesced.
type persister struct {
	snapshots store.SnapshotRepo
	events    store.EventRepo
	keep      int
	logger    *slog.Logger
	reporter  ErrorReporter

	mu       sync.Mutex
	pending  *store.Snapshot
	effects  []Effect
	queued   uint64 // generation of the newest enqueued write
	written  uint64 // generation of the newest attempted write
	waiters  []flushWaiter
	closed   bool
	wake     chan struct{}
	done     chan struct{}
	failures int
}

type flushWaiter struct {
	gen uint64
	ch  chan struct{}
}

func newPersister(snapshots store.SnapshotRepo, events store.EventRepo, keep int, logger *slog.Logger, reporter ErrorReporter) *persister {
	p := &persister{
		snapshots: snapshots,
		events:    events,
		keep:      keep,
		logger:    logger,
		reporter:  reporter,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go p.run()
	return p
}

// enqueue schedules snap (and effects) for writing. It never blocks.
func (p *persister) enqueue(snap *store.Snapshot, effects []Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.logger.Warn("tracker closed, dropping snapshot", "revision", snap.Sequence)
		return
	}

	p.pending = snap
	p.effects = append(p.effects, effects...)
	p.queued++

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) run() {
	defer close(p.done)
	for range p.wake {
		p.drain()
	}
	p.drain()
}

func (p *persister) drain() {
	for {
		p.mu.Lock()
		snap, effects, gen := p.pending, p.effects, p.queued
		p.pending, p.effects = nil, nil
		p.mu.Unlock()

		if snap == nil && len(effects) == 0 {
			return
		}

		p.write(snap, effects)

		p.mu.Lock()
		p.written = gen
		p.notifyLocked()
		p.mu.Unlock()
	}
}

func (p *persister) write(snap *store.Snapshot, effects []Effect) {
	// Writes must finish even when the dispatching caller has moved on.
	ctx := context.Background()

	if p.events != nil {
		for _, e := range effects {
			if err := p.events.AppendActivityEvent(ctx, activityEvent(e)); err != nil {
				// The activity log is best effort.
				p.logger.Warn("failed to record activity event", "kind", e.Kind, "error", err)
			}
		}
	}

	if snap == nil || p.snapshots == nil {
		return
	}

	if err := p.snapshots.Save(ctx, snap); err != nil {
		p.mu.Lock()
		p.failures++
		p.mu.Unlock()

		err = fmt.Errorf("save snapshot revision %d: %w", snap.Sequence, err)
		p.logger.Error("persisting tracker state failed", "error", err)
		if p.reporter != nil {
			p.reporter.ReportError(err)
		}
		return
	}
	p.logger.Debug("snapshot saved", "revision", snap.Sequence)

	if p.keep > 0 {
		if err := p.snapshots.Prune(ctx, p.keep); err != nil {
			p.logger.Warn("failed to prune snapshots", "error", err)
		}
	}
}

func (p *persister) notifyLocked() {
	kept := p.waiters[:0]
	for _, w := range p.waiters {
		if w.gen <= p.written {
			close(w.ch)
			continue
		}
		kept = append(kept, w)
	}
	p.waiters = kept
}

// flush waits until every write enqueued before the call has been attempted.
func (p *persister) flush(ctx context.Context) error {
	p.mu.Lock()
	if p.written >= p.queued {
		p.mu.Unlock()
		return nil
	}
	if p.closed {
		p.mu.Unlock()
		select {
		case <-p.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	w := flushWaiter{gen: p.queued, ch: make(chan struct{})}
	p.waiters = append(p.waiters, w)
	p.mu.Unlock()

	select {
	case <-w.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting writes and waits for pending ones to finish.
func (p *persister) close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.wake)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// failureCount returns how many snapshot writes have failed.
func (p *persister) failureCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failures
}

func activityEvent(e Effect) store.ActivityEventData {
	return store.ActivityEventData{
		Kind:          string(e.Kind),
		ChallengeID:   e.ChallengeID,
		Title:         e.Title,
		StreakCurrent: e.Streak.Current,
		StreakLongest: e.Streak.Longest,
		Milestone:     e.Milestone,
		OccurredAt:    e.At,
	}
}

// EffectFromActivity rebuilds the effect a stored activity event was
// written from.
func EffectFromActivity(d store.ActivityEventData) Effect {
	return Effect{
		Kind:        EffectKind(d.Kind),
		ChallengeID: d.ChallengeID,
		Title:       d.Title,
		Streak:      streak.State{Current: d.StreakCurrent, Longest: d.StreakLongest},
		Milestone:   d.Milestone,
		At:          d.OccurredAt,
	}
}
