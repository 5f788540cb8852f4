package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/goalify/internal/clock"
	"github.com/abhisek/goalify/internal/store"
)

var testDBCounter atomic.Int64

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:tracker_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	s, err := store.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestTracker(t *testing.T, st *store.Store, clk clock.Clock) *Tracker {
	t.Helper()
	tr := New(context.Background(), Options{
		Clock:     clk,
		Snapshots: st.SnapshotRepo(),
		Events:    st.EventRepo(),
	})
	t.Cleanup(func() { tr.Close(context.Background()) })
	return tr
}

func TestTracker_PersistsAndReloads(t *testing.T) {
	st := openTestStore(t)
	clk := clock.NewFixed(day0)
	ctx := context.Background()

	tr := newTestTracker(t, st, clk)
	_, _, err := tr.Create(newChallenge("a", 7, time.Time{}))
	require.NoError(t, err)
	_, _, err = tr.Create(newChallenge("b", 14, time.Time{}))
	require.NoError(t, err)

	clk.AddDays(1)
	_, _, err = tr.Complete("a")
	require.NoError(t, err)
	require.NoError(t, tr.Close(ctx))

	clk.AddDays(1)
	reloaded := newTestTracker(t, st, clk)
	s := reloaded.State()

	assert.Equal(t, int64(3), s.Revision)
	require.Len(t, s.Open, 1)
	assert.Equal(t, "b", s.Open[0].ID)
	require.Len(t, s.Archive, 1)
	assert.Equal(t, "a", s.Archive[0].ID)
	assert.Equal(t, 1, s.Streak.Current)

	// Revisions keep increasing after a reload.
	s, _ = reloaded.CheckIn()
	assert.Equal(t, int64(4), s.Revision)
	assert.Equal(t, 21, s.Open[0].Progress, "3 of 14 days")
}

func TestTracker_RecordsActivityEvents(t *testing.T) {
	st := openTestStore(t)
	clk := clock.NewFixed(day0)
	ctx := context.Background()

	tr := newTestTracker(t, st, clk)
	_, _, err := tr.Create(newChallenge("a", 7, time.Time{}))
	require.NoError(t, err)
	_, _, err = tr.Complete("a")
	require.NoError(t, err)
	require.NoError(t, tr.Flush(ctx))

	events, err := st.EventRepo().QueryActivityEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)

	var kinds []string
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	// Newest first.
	assert.Equal(t, []string{
		string(EffectStreakExtended),
		string(EffectChallengeCompleted),
		string(EffectChallengeCreated),
	}, kinds)

	completed := EffectFromActivity(events[1].ActivityEventData)
	assert.Equal(t, "Challenge completed: Challenge a 🎉", completed.Message())
	assert.Equal(t, "a", completed.ChallengeID)
}

func TestTracker_FailedDispatchLeavesStateAlone(t *testing.T) {
	tr := New(context.Background(), Options{Clock: clock.NewFixed(day0)})

	before := tr.State()
	_, _, err := tr.Complete("nope")
	assert.ErrorIs(t, err, ErrChallengeNotFound)
	_, err = tr.Activate("nope")
	assert.ErrorIs(t, err, ErrChallengeNotFound)
	assert.Equal(t, before, tr.State())

	// Without a store there is nothing to flush.
	require.NoError(t, tr.Flush(context.Background()))
	assert.Zero(t, tr.PersistFailures())
}

func TestTracker_StateIsACopy(t *testing.T) {
	tr := New(context.Background(), Options{Clock: clock.NewFixed(day0)})
	_, _, err := tr.Create(newChallenge("a", 7, time.Time{}))
	require.NoError(t, err)

	s := tr.State()
	s.Open[0].Title = "changed"
	s.Open = nil

	assert.Equal(t, "Challenge a", tr.State().Open[0].Title)
}

type failingSnapshots struct {
	mu    sync.Mutex
	saves int
}

func (f *failingSnapshots) Save(context.Context, *store.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	return errors.New("disk full")
}

func (f *failingSnapshots) Latest(context.Context) (*store.Snapshot, error) { return nil, nil }
func (f *failingSnapshots) Prune(context.Context, int) error               { return nil }

func TestTracker_WriteFailureIsReportedNotRolledBack(t *testing.T) {
	var reported []error
	var mu sync.Mutex
	repo := &failingSnapshots{}

	tr := New(context.Background(), Options{
		Clock:     clock.NewFixed(day0),
		Snapshots: repo,
		Reporter: ReporterFunc(func(err error) {
			mu.Lock()
			defer mu.Unlock()
			reported = append(reported, err)
		}),
	})

	s, _, err := tr.Create(newChallenge("a", 7, time.Time{}))
	require.NoError(t, err)
	require.NoError(t, tr.Flush(context.Background()))

	assert.Len(t, s.Open, 1)
	assert.Len(t, tr.State().Open, 1, "in-memory state kept")
	assert.Equal(t, 1, tr.PersistFailures())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reported, 1)
	assert.ErrorContains(t, reported[0], "disk full")
}

type brokenLatest struct{ failingSnapshots }

func (b *brokenLatest) Latest(context.Context) (*store.Snapshot, error) {
	return nil, errors.New("corrupt database")
}

func TestTracker_LoadFailureFallsBackToDefaults(t *testing.T) {
	var reported atomic.Int32
	tr := New(context.Background(), Options{
		Snapshots: &brokenLatest{},
		Reporter:  ReporterFunc(func(error) { reported.Add(1) }),
	})
	defer tr.Close(context.Background())

	assert.Equal(t, DefaultState(), tr.State())
	assert.Equal(t, int32(1), reported.Load())
}

func TestTracker_ConcurrentDispatch(t *testing.T) {
	st := openTestStore(t)
	clk := clock.NewFixed(day0)
	tr := newTestTracker(t, st, clk)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := tr.Create(newChallenge(fmt.Sprintf("c%02d", i), 30, time.Time{}))
			assert.NoError(t, err)
			tr.CheckIn()
		}(i)
	}
	wg.Wait()

	s := tr.State()
	require.NoError(t, s.Validate())
	assert.Len(t, s.Open, n)
	assert.Equal(t, int64(2*n), s.Revision)

	require.NoError(t, tr.Close(context.Background()))

	snap, err := st.SnapshotRepo().Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(2*n), snap.Sequence, "the newest revision is what lands last")
}

func TestTracker_CloseIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	tr := newTestTracker(t, st, clock.NewFixed(day0))

	require.NoError(t, tr.Close(context.Background()))
	require.NoError(t, tr.Close(context.Background()))

	// Dispatching after close still updates memory.
	s, _, err := tr.Create(newChallenge("late", 7, time.Time{}))
	require.NoError(t, err)
	assert.Len(t, s.Open, 1)
	require.NoError(t, tr.Flush(context.Background()))
}
