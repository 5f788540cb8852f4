package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, time.May, 14, 9, 30, 0, 0, time.Local)

func daysAgo(n int) *time.Time {
	t := today.AddDate(0, 0, -n)
	return &t
}

func TestRecordActivity_SameDayIsIdempotent(t *testing.T) {
	s := State{Current: 2, Longest: 4, LastActivity: daysAgo(1)}

	first := RecordActivity(s, today)
	second := RecordActivity(first, today.Add(3*time.Hour))

	assert.Equal(t, 3, first.Current)
	assert.Equal(t, first.Current, second.Current)
	assert.Equal(t, first.Longest, second.Longest)
	require.NotNil(t, second.LastActivity)
	assert.True(t, second.LastActivity.Equal(*first.LastActivity), "same-day call must not move the date")
}

func TestRecordActivity_ConsecutiveDay(t *testing.T) {
	s := State{Current: 3, Longest: 5, LastActivity: daysAgo(1)}

	got := RecordActivity(s, today)

	assert.Equal(t, 4, got.Current)
	assert.Equal(t, 5, got.Longest)
	require.NotNil(t, got.LastActivity)
	assert.True(t, got.LastActivity.Equal(today))
}

func TestRecordActivity_FirstEver(t *testing.T) {
	got := RecordActivity(State{}, today)

	assert.Equal(t, 1, got.Current)
	assert.Equal(t, 1, got.Longest)
	require.NotNil(t, got.LastActivity)
}

func TestRecordActivity_AfterGapStartsFresh(t *testing.T) {
	s := State{Current: 6, Longest: 9, LastActivity: daysAgo(4)}

	got := RecordActivity(s, today)

	assert.Equal(t, 1, got.Current)
	assert.Equal(t, 9, got.Longest)
}

func TestRecordActivity_LongestGrows(t *testing.T) {
	s := State{Current: 5, Longest: 5, LastActivity: daysAgo(1)}

	got := RecordActivity(s, today)

	assert.Equal(t, 6, got.Current)
	assert.Equal(t, 6, got.Longest)
}

func TestRecordActivity_MidnightBoundary(t *testing.T) {
	lateNight := time.Date(2025, time.May, 13, 23, 59, 0, 0, time.Local)
	earlyMorning := time.Date(2025, time.May, 14, 0, 1, 0, 0, time.Local)

	s := RecordActivity(State{}, lateNight)
	s = RecordActivity(s, earlyMorning)

	assert.Equal(t, 2, s.Current, "11:59pm then 12:01am are consecutive days")
}

func TestRecordActivity_SkippedCalendarDay(t *testing.T) {
	// Under 26 hours apart but two calendar dates apart.
	start := time.Date(2025, time.May, 12, 23, 30, 0, 0, time.Local)
	end := time.Date(2025, time.May, 14, 1, 0, 0, 0, time.Local)

	s := RecordActivity(State{}, start)
	s = RecordActivity(s, end)

	assert.Equal(t, 1, s.Current)
}

func TestRecordActivity_FutureLastActivityIsToday(t *testing.T) {
	future := today.AddDate(0, 0, 2)
	s := State{Current: 3, Longest: 3, LastActivity: &future}

	got := RecordActivity(s, today)

	assert.Equal(t, s, got)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		in   State
		want State
	}{
		{
			name: "no prior activity is a no-op",
			in:   State{Current: 0, Longest: 2},
			want: State{Current: 0, Longest: 2},
		},
		{
			name: "activity today holds",
			in:   State{Current: 4, Longest: 4, LastActivity: daysAgo(0)},
			want: State{Current: 4, Longest: 4, LastActivity: daysAgo(0)},
		},
		{
			name: "activity yesterday holds",
			in:   State{Current: 4, Longest: 7, LastActivity: daysAgo(1)},
			want: State{Current: 4, Longest: 7, LastActivity: daysAgo(1)},
		},
		{
			name: "gap resets",
			in:   State{Current: 10, Longest: 10, LastActivity: daysAgo(3)},
			want: State{Current: 0, Longest: 10},
		},
		{
			name: "gap lifts longest before reset",
			in:   State{Current: 12, Longest: 8, LastActivity: daysAgo(2)},
			want: State{Current: 0, Longest: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.in, today))
		})
	}
}

func TestCheck_DoesNotAliasInput(t *testing.T) {
	s := State{Current: 1, Longest: 1, LastActivity: daysAgo(0)}
	got := Check(s, today)

	*got.LastActivity = got.LastActivity.AddDate(-1, 0, 0)
	assert.True(t, s.LastActivity.Equal(*daysAgo(0)))
}

func TestLongestIsMonotone(t *testing.T) {
	s := State{}
	now := today
	// Mix of activity days, idle days and gaps.
	steps := []int{0, 1, 1, 0, 3, 1, 1, 1, 5, 0, 1}

	for i, step := range steps {
		now = now.AddDate(0, 0, step)
		before := s.Longest

		s = Check(s, now)
		assert.GreaterOrEqual(t, s.Longest, before, "step %d after Check", i)
		assert.GreaterOrEqual(t, s.Longest, s.Current, "step %d after Check", i)

		before = s.Longest
		s = RecordActivity(s, now)
		assert.GreaterOrEqual(t, s.Longest, before, "step %d after RecordActivity", i)
		assert.GreaterOrEqual(t, s.Longest, s.Current, "step %d after RecordActivity", i)
	}
}

func TestDaysSince(t *testing.T) {
	_, ok := State{}.DaysSince(today)
	assert.False(t, ok)

	d, ok := State{LastActivity: daysAgo(2)}.DaysSince(today)
	assert.True(t, ok)
	assert.Equal(t, 2, d)

	assert.True(t, State{LastActivity: daysAgo(0)}.ActiveToday(today))
	assert.False(t, State{LastActivity: daysAgo(1)}.ActiveToday(today))
}
