package cost

import (
	"fmt"
	"time"
)

// Time-bucket key derivation. Kept pure and store-free so the week/month
// "sum of days" aggregation is unit-testable.

// DayKey returns the calendar-day bucket key, e.g. "2024-12-25".
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekKey returns the ISO-week bucket key, e.g. "2024-52".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", year, week)
}

// MonthKey returns the calendar-month bucket key, e.g. "2024-12".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// WeekDays returns the day keys of the seven days of an ISO week.
func WeekDays(year, week int) []string {
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7 // days since Monday
	monday := jan4.AddDate(0, 0, -offset+(week-1)*7)

	days := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, DayKey(monday.AddDate(0, 0, i)))
	}
	return days
}

// MonthDays returns the day keys of every day of a calendar month.
func MonthDays(year int, month time.Month) []string {
	var days []string
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, DayKey(d))
	}
	return days
}
