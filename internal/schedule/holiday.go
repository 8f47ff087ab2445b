package schedule

import (
	"time"

	"github.com/tufanunal/factory-planner-360-sub000/pkg/dateutil"
)

// HolidayMatches reports whether the holiday falls on the given date.
// A non-recurring holiday matches only the exact calendar day; a
// recurring-yearly holiday matches month and day-of-month in every year.
// A holiday with an unparseable date never matches.
func HolidayMatches(date time.Time, h Holiday) bool {
	holidayDate, err := dateutil.ParseISO(h.Date)
	if err != nil {
		return false
	}

	if h.IsRecurringYearly {
		return dateutil.IsSameMonthDay(date, holidayDate)
	}
	return dateutil.IsSameDay(date, holidayDate)
}

// FindHoliday returns the first holiday in stored order that matches the
// date. Later matches are ignored: insertion order is the de facto priority.
func FindHoliday(date time.Time, holidays []Holiday) (Holiday, bool) {
	for _, h := range holidays {
		if HolidayMatches(date, h) {
			return h, true
		}
	}
	return Holiday{}, false
}
