package schedule

import (
	"time"

	"github.com/tufanunal/factory-planner-360-sub000/pkg/dateutil"
)

// IsNominalWorkday reports whether the date's weekday is flagged as working
// in the weekly pattern, before holidays are considered.
func IsNominalWorkday(date time.Time, pattern WorkdaysPattern) bool {
	return pattern.On(dateutil.WeekdayKey(date))
}

// IsEffectiveWorkday combines the weekly pattern with the calendar's holiday
// list. A holiday can only subtract working days; it never turns a
// pattern-off weekday into a working one.
func IsEffectiveWorkday(date time.Time, cal Calendar) bool {
	if !IsNominalWorkday(date, cal.WorkdaysPattern) {
		return false
	}
	_, isHoliday := FindHoliday(date, cal.Holidays)
	return !isHoliday
}
