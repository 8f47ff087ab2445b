package schedule

import "errors"

// Error taxonomy. Absence of a calendar/shift/date entry during a read is a
// normal steady state and is reported as a false/zero result, not an error;
// the NotFound sentinels below are returned only by mutations that target a
// specific entity.
var (
	// ErrValidation covers a missing required field, rejected before any
	// state change.
	ErrValidation = errors.New("validation failed")

	// ErrDefaultCalendar is returned on an attempt to delete the default
	// calendar or change its identity fields.
	ErrDefaultCalendar = errors.New("default calendar is protected")

	// ErrCalendarNotFound is returned by mutations targeting an unknown
	// calendar id.
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrShiftTimeNotFound is returned by mutations targeting an unknown
	// shift time id.
	ErrShiftTimeNotFound = errors.New("shift time not found")

	// ErrHolidayNotFound is returned when removing an unknown holiday.
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrAmbiguousRole is returned when more than one shift time resolves to
	// a rotation role needed by a propagation pass. The batch is rejected
	// rather than guessing which sibling to update.
	ErrAmbiguousRole = errors.New("ambiguous rotation role")
)
