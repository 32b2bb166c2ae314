// Package dateutil provides the calendar-day arithmetic the jobs share.
// All jobs reason about dates as "YYYY-MM-DD" strings in a single fixed
// time zone, never as timestamps.
package dateutil

import "time"

// DayFormat is the canonical calendar-day layout.
const DayFormat = "2006-01-02"

// DayOf formats t as a calendar day in loc.
func DayOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayFormat)
}

// Yesterday returns the previous calendar day relative to now in loc.
// Ingest and quiz both target yesterday: the feeds for a day are only
// complete once that day has ended.
func Yesterday(now time.Time, loc *time.Location) string {
	return DayOf(now.In(loc).AddDate(0, 0, -1), loc)
}

// LastNDays returns the n calendar days immediately preceding now in loc,
// newest first. Today is excluded.
func LastNDays(now time.Time, loc *time.Location, n int) []string {
	base := now.In(loc)
	days := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		days = append(days, DayOf(base.AddDate(0, 0, -i), loc))
	}
	return days
}

// SameDay reports whether t falls on the calendar day in loc.
func SameDay(t time.Time, day string, loc *time.Location) bool {
	return DayOf(t, loc) == day
}
