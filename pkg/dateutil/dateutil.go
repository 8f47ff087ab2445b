package dateutil

import (
	"fmt"
	"time"
)

// ISODate is the wire format for calendar dates ("YYYY-MM-DD", no time part).
const ISODate = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// FormatISO formats a date as "YYYY-MM-DD"
func FormatISO(date time.Time) string {
	return date.Format(ISODate)
}

// ParseISO parses a "YYYY-MM-DD" string into a date at start of day UTC
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// IsSameDay returns true if two dates are on the same calendar day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// IsSameMonthDay returns true if two dates share month and day-of-month,
// ignoring the year
func IsSameMonthDay(date1, date2 time.Time) bool {
	return date1.Month() == date2.Month() && date1.Day() == date2.Day()
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// WeekdayKey returns the lowercase English weekday name used as a key in
// weekly workday patterns ("monday" .. "sunday")
func WeekdayKey(date time.Time) string {
	switch date.Weekday() {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}

// DatesBetween returns every date from 'from' to 'to' inclusive, one per day.
// Returns nil when 'to' is before 'from'.
func DatesBetween(from, to time.Time) []time.Time {
	from = StartOfDay(from)
	to = StartOfDay(to)
	if to.Before(from) {
		return nil
	}

	var dates []time.Time
	for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		dates = append(dates, cur)
	}
	return dates
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
