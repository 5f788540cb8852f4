package clock

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	at := func(day, hour, min int) time.Time {
		return time.Date(2025, time.March, day, hour, min, 0, 0, loc)
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"same instant", at(10, 9, 0), at(10, 9, 0), 0},
		{"same day different hours", at(10, 0, 1), at(10, 23, 59), 0},
		{"minutes apart across midnight", at(10, 23, 59), at(11, 0, 1), 1},
		{"two days", at(10, 12, 0), at(12, 8, 0), 2},
		{"future from", at(12, 8, 0), at(10, 12, 0), -2},
		{"month boundary", time.Date(2025, time.February, 28, 22, 0, 0, 0, loc), at(1, 6, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysBetween_UsesTargetLocation(t *testing.T) {
	east := time.FixedZone("east", 10*60*60)
	// 2025-03-10 23:00 UTC is already 2025-03-11 in the eastern zone.
	from := time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 11, 12, 0, 0, 0, east)

	if got := DaysBetween(from, to); got != 0 {
		t.Errorf("DaysBetween() = %d, want 0", got)
	}
}

func TestDaysBetween_DST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Clocks spring forward on 2025-03-09.
	from := time.Date(2025, time.March, 8, 12, 0, 0, 0, loc)
	to := time.Date(2025, time.March, 10, 0, 30, 0, 0, loc)

	if got := DaysBetween(from, to); got != 2 {
		t.Errorf("DaysBetween() = %d, want 2", got)
	}
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	c := NewFixed(start)

	if !c.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", c.Now(), start)
	}

	c.AddDays(2)
	if got := DaysBetween(start, c.Now()); got != 2 {
		t.Errorf("after AddDays(2), DaysBetween = %d", got)
	}

	c.Advance(time.Hour)
	if c.Now().Hour() != 9 {
		t.Errorf("hour = %d, want 9", c.Now().Hour())
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2025-06-01", time.UTC)
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if got.Format(time.DateOnly) != "2025-06-01" {
		t.Errorf("date = %s", got.Format(time.DateOnly))
	}

	if _, err := ParseDay("2025-06-01T10:00:00Z", time.UTC); err != nil {
		t.Errorf("RFC3339: %v", err)
	}

	if _, err := ParseDay("yesterday", time.UTC); err == nil {
		t.Error("expected error for garbage input")
	}
}
