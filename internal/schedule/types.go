package schedule

// SchemaVersion is the current version tag of the persisted snapshot layout.
const SchemaVersion = 1

// WorkdaysPattern holds the weekly working-day flags of a calendar.
// Field names are part of the persisted contract.
type WorkdaysPattern struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

// On reports whether the given weekday key ("monday" .. "sunday") is a
// working day in this pattern.
func (p WorkdaysPattern) On(weekdayKey string) bool {
	switch weekdayKey {
	case "monday":
		return p.Monday
	case "tuesday":
		return p.Tuesday
	case "wednesday":
		return p.Wednesday
	case "thursday":
		return p.Thursday
	case "friday":
		return p.Friday
	case "saturday":
		return p.Saturday
	case "sunday":
		return p.Sunday
	default:
		return false
	}
}

// MondayToFriday returns the usual five-day pattern.
func MondayToFriday() WorkdaysPattern {
	return WorkdaysPattern{
		Monday:    true,
		Tuesday:   true,
		Wednesday: true,
		Thursday:  true,
		Friday:    true,
	}
}

// Holiday is a single holiday entry scoped to one calendar.
// Date is a calendar date ("YYYY-MM-DD", no time component).
type Holiday struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Date              string `json:"date"`
	IsRecurringYearly bool   `json:"isRecurringYearly"`
	Description       string `json:"description,omitempty"`
}

// RotationRole is one of the three canonical rotating-shift positions.
// An empty role means the shift does not take part in rotation.
type RotationRole string

const (
	RoleNone      RotationRole = ""
	RoleMorning   RotationRole = "morning"
	RoleAfternoon RotationRole = "afternoon"
	RoleNight     RotationRole = "night"
)

// ShiftTime is a registry-wide shift definition. StartTime and EndTime are
// opaque 24-hour "HH:MM" strings with no implicit date; a shift spanning
// midnight has start > end and no next-day marker.
type ShiftTime struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Color     string `json:"color"`

	// RotationRole pins the shift to a rotation position independent of its
	// display name. Records stored before this field existed fall back to
	// name matching, see Role().
	RotationRole RotationRole `json:"rotationRole,omitempty"`
}

// DayShifts holds the explicit per-shift activation overrides of one date.
type DayShifts struct {
	Shifts map[string]bool `json:"shifts"`
}

// Calendar is a named working-time calendar. ShiftSchedule is the canonical
// sparse override structure: date ("YYYY-MM-DD") to per-shift activation.
type Calendar struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	CountryCode     string               `json:"countryCode"`
	IsDefault       bool                 `json:"isDefault"`
	Holidays        []Holiday            `json:"holidays"`
	WorkdaysPattern WorkdaysPattern      `json:"workdaysPattern"`
	ShiftSchedule   map[string]DayShifts `json:"shiftSchedule,omitempty"`
}

// Clone returns a deep copy of the calendar so that override and holiday
// mutations never alias the original.
func (c Calendar) Clone() Calendar {
	out := c
	if c.Holidays != nil {
		out.Holidays = make([]Holiday, len(c.Holidays))
		copy(out.Holidays, c.Holidays)
	}
	if c.ShiftSchedule != nil {
		out.ShiftSchedule = make(map[string]DayShifts, len(c.ShiftSchedule))
		for date, day := range c.ShiftSchedule {
			shifts := make(map[string]bool, len(day.Shifts))
			for id, active := range day.Shifts {
				shifts[id] = active
			}
			out.ShiftSchedule[date] = DayShifts{Shifts: shifts}
		}
	}
	return out
}

// DayShiftToggle is the flat view of one explicit override. It is derived
// from Calendar.ShiftSchedule and never stored on its own.
type DayShiftToggle struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	ShiftTimeID string `json:"shiftTimeId"`
	IsActive    bool   `json:"isActive"`
}

// Snapshot is the full persisted state of the registry.
type Snapshot struct {
	SchemaVersion    int         `json:"schemaVersion"`
	ActiveCalendarID string      `json:"activeCalendarId"`
	Calendars        []Calendar  `json:"calendars"`
	ShiftTimes       []ShiftTime `json:"shiftTimes"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		SchemaVersion:    s.SchemaVersion,
		ActiveCalendarID: s.ActiveCalendarID,
	}
	if s.Calendars != nil {
		out.Calendars = make([]Calendar, len(s.Calendars))
		for i, cal := range s.Calendars {
			out.Calendars[i] = cal.Clone()
		}
	}
	if s.ShiftTimes != nil {
		out.ShiftTimes = make([]ShiftTime, len(s.ShiftTimes))
		copy(out.ShiftTimes, s.ShiftTimes)
	}
	return out
}

// DaySchedule is one date of an effective schedule range: the day-level
// determination plus the resolved activation of every shift.
type DaySchedule struct {
	Date        string            `json:"date"`
	IsWorkday   bool              `json:"isWorkday"`
	HolidayName string            `json:"holidayName,omitempty"`
	Shifts      []ShiftActivation `json:"shifts"`
}

// ShiftActivation is the resolved on/off state of one shift on one date.
type ShiftActivation struct {
	ShiftTimeID string `json:"shiftTimeId"`
	Name        string `json:"name"`
	IsActive    bool   `json:"isActive"`
}
