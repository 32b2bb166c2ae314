package dateutil

import (
	"testing"
	"time"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func TestDayOfConvertsZone(t *testing.T) {
	loc := kolkata(t)

	// 20:00 UTC is already the next day in IST (+05:30).
	utc := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	if got := DayOf(utc, loc); got != "2025-03-11" {
		t.Errorf("DayOf = %q, want 2025-03-11", got)
	}

	// 10:00 UTC stays on the same day.
	utc = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	if got := DayOf(utc, loc); got != "2025-03-10" {
		t.Errorf("DayOf = %q, want 2025-03-10", got)
	}
}

func TestYesterday(t *testing.T) {
	loc := kolkata(t)

	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), "2025-03-09"},
		// Just past IST midnight: 19:00 UTC on the 10th is 00:30 IST on the 11th.
		{time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC), "2025-03-10"},
		// Month boundary.
		{time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), "2025-02-28"},
	}

	for _, tt := range tests {
		if got := Yesterday(tt.now, loc); got != tt.want {
			t.Errorf("Yesterday(%v) = %q, want %q", tt.now, got, tt.want)
		}
	}
}

func TestLastNDays(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	days := LastNDays(now, loc, 7)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0] != "2025-03-09" {
		t.Errorf("newest day = %q, want 2025-03-09", days[0])
	}
	if days[6] != "2025-03-03" {
		t.Errorf("oldest day = %q, want 2025-03-03", days[6])
	}
	for _, d := range days {
		if d == "2025-03-10" {
			t.Error("window must exclude today")
		}
	}
}

func TestSameDay(t *testing.T) {
	loc := kolkata(t)
	ts := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC) // 2025-03-11 IST

	if !SameDay(ts, "2025-03-11", loc) {
		t.Error("expected same day in IST")
	}
	if SameDay(ts, "2025-03-10", loc) {
		t.Error("did not expect UTC day to match")
	}
}
