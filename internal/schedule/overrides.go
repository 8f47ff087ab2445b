package schedule

import (
	"sort"
	"time"

	"github.com/tufanunal/factory-planner-360-sub000/pkg/dateutil"
)

// ShiftActive resolves the activation of one shift on one date. An explicit
// override wins; otherwise the day-level effective-workday determination
// applies uniformly to every shift. Shifts have no independent defaults.
func ShiftActive(cal Calendar, date time.Time, shiftID string) bool {
	if day, ok := cal.ShiftSchedule[dateutil.FormatISO(date)]; ok {
		if active, ok := day.Shifts[shiftID]; ok {
			return active
		}
	}
	return IsEffectiveWorkday(date, cal)
}

// SetShiftActive returns a copy of the calendar with an explicit override
// for (date, shiftID). The input calendar is not modified; the caller is
// responsible for persisting the result.
func SetShiftActive(cal Calendar, date time.Time, shiftID string, active bool) Calendar {
	out := cal.Clone()
	if out.ShiftSchedule == nil {
		out.ShiftSchedule = make(map[string]DayShifts)
	}

	key := dateutil.FormatISO(date)
	day, ok := out.ShiftSchedule[key]
	if !ok {
		day = DayShifts{Shifts: make(map[string]bool)}
	}
	day.Shifts[shiftID] = active
	out.ShiftSchedule[key] = day
	return out
}

// ToggleShiftActive flips an existing override for (date, shiftID). When no
// override exists yet the first toggle always creates one with value true,
// regardless of the computed default. Long-standing behavior the dashboard
// depends on; callers wanting invert-the-default must use SetShiftActive.
func ToggleShiftActive(cal Calendar, date time.Time, shiftID string) Calendar {
	value := true
	if day, ok := cal.ShiftSchedule[dateutil.FormatISO(date)]; ok {
		if current, ok := day.Shifts[shiftID]; ok {
			value = !current
		}
	}
	return SetShiftActive(cal, date, shiftID, value)
}

// RemoveShiftOverrides deletes every override keyed by shiftID across all
// dates of the calendar, dropping date entries that become empty. Used when
// the owning shift time is deleted so no orphan overrides remain.
func RemoveShiftOverrides(cal Calendar, shiftID string) Calendar {
	out := cal.Clone()
	for key, day := range out.ShiftSchedule {
		delete(day.Shifts, shiftID)
		if len(day.Shifts) == 0 {
			delete(out.ShiftSchedule, key)
		}
	}
	if len(out.ShiftSchedule) == 0 {
		out.ShiftSchedule = nil
	}
	return out
}

// Toggles flattens the calendar's override map into the list form, ordered
// by date then shift id. The id of each entry is synthesized from its key
// so the projection is stable across calls.
func Toggles(cal Calendar) []DayShiftToggle {
	var toggles []DayShiftToggle
	for date, day := range cal.ShiftSchedule {
		for shiftID, active := range day.Shifts {
			toggles = append(toggles, DayShiftToggle{
				ID:          date + "/" + shiftID,
				Date:        date,
				ShiftTimeID: shiftID,
				IsActive:    active,
			})
		}
	}

	sort.Slice(toggles, func(i, j int) bool {
		if toggles[i].Date != toggles[j].Date {
			return toggles[i].Date < toggles[j].Date
		}
		return toggles[i].ShiftTimeID < toggles[j].ShiftTimeID
	})
	return toggles
}
