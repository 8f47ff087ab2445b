package schedule

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tufanunal/factory-planner-360-sub000/pkg/dateutil"
)

// Store is the persistence port. Load returns nil when nothing has been
// persisted yet. Save must write the snapshot as one atomic batch: either
// the whole snapshot is durable afterwards or the previous one still is.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// Seed describes the default calendar created on first start.
type Seed struct {
	Name        string
	CountryCode string
	Workdays    WorkdaysPattern
}

// Service owns the in-memory registry snapshot and pushes every mutation
// through the store port. A mutation builds the next snapshot, saves it, and
// only commits it in memory when the save succeeded, so in-memory state
// never diverges from the last persisted state.
type Service struct {
	store  Store
	logger *zap.Logger

	mu   sync.RWMutex
	snap *Snapshot
}

// NewService creates a service bound to the given store.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Open loads the persisted snapshot, seeding the default calendar when the
// store is empty.
func (s *Service) Open(ctx context.Context, seed Seed) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	if snap == nil || len(snap.Calendars) == 0 {
		snap = &Snapshot{SchemaVersion: SchemaVersion}
		def := Calendar{
			ID:              uuid.NewString(),
			Name:            seed.Name,
			CountryCode:     seed.CountryCode,
			IsDefault:       true,
			Holidays:        []Holiday{},
			WorkdaysPattern: seed.Workdays,
		}
		snap.Calendars = []Calendar{def}
		snap.ActiveCalendarID = def.ID

		if err := s.store.Save(ctx, snap); err != nil {
			return fmt.Errorf("save seeded snapshot: %w", err)
		}
		s.logger.Info("Seeded default calendar",
			zap.String("calendar_id", def.ID),
			zap.String("name", def.Name))
	}
	snap.SchemaVersion = SchemaVersion

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// commit saves the candidate snapshot and adopts it in memory on success.
// The caller must hold s.mu.
func (s *Service) commit(ctx context.Context, next *Snapshot) error {
	next.SchemaVersion = SchemaVersion
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.snap = next
	return nil
}

// Calendars returns all calendars in registry order.
func (s *Service) Calendars() []Calendar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone().Calendars
}

// CalendarByID looks up one calendar. Absence is a normal result.
func (s *Service) CalendarByID(id string) (Calendar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cal := range s.snap.Calendars {
		if cal.ID == id {
			return cal.Clone(), true
		}
	}
	return Calendar{}, false
}

// ActiveCalendar returns the calendar the active pointer refers to, falling
// back to the default calendar if the pointer is stale.
func (s *Service) ActiveCalendar() Calendar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var def Calendar
	for _, cal := range s.snap.Calendars {
		if cal.ID == s.snap.ActiveCalendarID {
			return cal.Clone()
		}
		if cal.IsDefault {
			def = cal
		}
	}
	return def.Clone()
}

// AddCalendar appends a new calendar. The first calendar created next to the
// seeded default becomes active right away.
func (s *Service) AddCalendar(ctx context.Context, cal Calendar) (Calendar, error) {
	if strings.TrimSpace(cal.Name) == "" {
		return Calendar{}, fmt.Errorf("%w: calendar name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cal.ID == "" {
		cal.ID = uuid.NewString()
	}
	cal.IsDefault = false
	if cal.Holidays == nil {
		cal.Holidays = []Holiday{}
	}

	next := s.snap.Clone()
	next.Calendars = append(next.Calendars, cal)
	if len(s.snap.Calendars) == 1 && s.snap.Calendars[0].IsDefault {
		next.ActiveCalendarID = cal.ID
	}

	if err := s.commit(ctx, next); err != nil {
		return Calendar{}, err
	}
	s.logger.Info("Calendar added",
		zap.String("calendar_id", cal.ID),
		zap.String("name", cal.Name))
	return cal, nil
}

// UpdateCalendar replaces the identity fields of a calendar. The default
// calendar's identity is immutable.
func (s *Service) UpdateCalendar(ctx context.Context, id, name, countryCode string, pattern WorkdaysPattern) (Calendar, error) {
	if strings.TrimSpace(name) == "" {
		return Calendar{}, fmt.Errorf("%w: calendar name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := calendarIndex(next.Calendars, id)
	if idx == -1 {
		return Calendar{}, fmt.Errorf("%w: %s", ErrCalendarNotFound, id)
	}
	if next.Calendars[idx].IsDefault {
		return Calendar{}, fmt.Errorf("%w: identity fields are immutable", ErrDefaultCalendar)
	}

	next.Calendars[idx].Name = name
	next.Calendars[idx].CountryCode = countryCode
	next.Calendars[idx].WorkdaysPattern = pattern

	if err := s.commit(ctx, next); err != nil {
		return Calendar{}, err
	}
	return next.Calendars[idx].Clone(), nil
}

// DeleteCalendar removes a calendar. The default calendar can never be
// deleted; deleting the active calendar moves the active pointer back to
// the default one.
func (s *Service) DeleteCalendar(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := calendarIndex(next.Calendars, id)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrCalendarNotFound, id)
	}
	if next.Calendars[idx].IsDefault {
		return fmt.Errorf("%w: cannot delete", ErrDefaultCalendar)
	}

	next.Calendars = append(next.Calendars[:idx], next.Calendars[idx+1:]...)
	if next.ActiveCalendarID == id {
		for _, cal := range next.Calendars {
			if cal.IsDefault {
				next.ActiveCalendarID = cal.ID
				break
			}
		}
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.logger.Info("Calendar deleted", zap.String("calendar_id", id))
	return nil
}

// SetActiveCalendar moves the active pointer. Unknown ids are rejected and
// leave the pointer untouched.
func (s *Service) SetActiveCalendar(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if calendarIndex(s.snap.Calendars, id) == -1 {
		return fmt.Errorf("%w: %s", ErrCalendarNotFound, id)
	}

	next := s.snap.Clone()
	next.ActiveCalendarID = id
	return s.commit(ctx, next)
}

// AddHoliday appends a holiday to one calendar. Holidays never leak into
// other calendars.
func (s *Service) AddHoliday(ctx context.Context, calendarID string, h Holiday) (Holiday, error) {
	if strings.TrimSpace(h.Name) == "" {
		return Holiday{}, fmt.Errorf("%w: holiday name is required", ErrValidation)
	}
	if _, err := dateutil.ParseISO(h.Date); err != nil {
		return Holiday{}, fmt.Errorf("%w: holiday date is required as YYYY-MM-DD", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := calendarIndex(next.Calendars, calendarID)
	if idx == -1 {
		return Holiday{}, fmt.Errorf("%w: %s", ErrCalendarNotFound, calendarID)
	}

	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	next.Calendars[idx].Holidays = append(next.Calendars[idx].Holidays, h)

	if err := s.commit(ctx, next); err != nil {
		return Holiday{}, err
	}
	s.logger.Info("Holiday added",
		zap.String("calendar_id", calendarID),
		zap.String("holiday", h.Name),
		zap.String("date", h.Date))
	return h, nil
}

// RemoveHoliday deletes one holiday from its owning calendar.
func (s *Service) RemoveHoliday(ctx context.Context, calendarID, holidayID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := calendarIndex(next.Calendars, calendarID)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrCalendarNotFound, calendarID)
	}

	holidays := next.Calendars[idx].Holidays
	for i, h := range holidays {
		if h.ID == holidayID {
			next.Calendars[idx].Holidays = append(holidays[:i], holidays[i+1:]...)
			return s.commit(ctx, next)
		}
	}
	return fmt.Errorf("%w: %s", ErrHolidayNotFound, holidayID)
}

// ShiftTimes returns the registry-wide shift list in stored order.
func (s *Service) ShiftTimes() []ShiftTime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ShiftTime, len(s.snap.ShiftTimes))
	copy(out, s.snap.ShiftTimes)
	return out
}

// AddShiftTime appends a shift definition. Time strings are stored verbatim.
func (s *Service) AddShiftTime(ctx context.Context, shift ShiftTime) (ShiftTime, error) {
	if strings.TrimSpace(shift.Name) == "" {
		return ShiftTime{}, fmt.Errorf("%w: shift name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	next := s.snap.Clone()
	next.ShiftTimes = append(next.ShiftTimes, shift)

	if err := s.commit(ctx, next); err != nil {
		return ShiftTime{}, err
	}
	s.logger.Info("Shift time added",
		zap.String("shift_id", shift.ID),
		zap.String("name", shift.Name))
	return shift, nil
}

// EditShiftTime applies an edit of one shift's fields and propagates the new
// start/end to the cyclic rotation neighbors. The edited shift plus its 0-2
// fixed-up siblings are persisted as one batch; a failed save leaves the
// in-memory registry unchanged.
func (s *Service) EditShiftTime(ctx context.Context, shift ShiftTime) ([]ShiftTime, error) {
	if strings.TrimSpace(shift.Name) == "" {
		return nil, fmt.Errorf("%w: shift name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, written, err := ApplyRotation(shift, s.snap.ShiftTimes)
	if err != nil {
		return nil, err
	}

	next := s.snap.Clone()
	next.ShiftTimes = updated

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.logger.Info("Shift time edited",
		zap.String("shift_id", shift.ID),
		zap.Strings("batch", written))

	batch := make([]ShiftTime, 0, len(written))
	for _, id := range written {
		for _, st := range updated {
			if st.ID == id {
				batch = append(batch, st)
			}
		}
	}
	return batch, nil
}

// DeleteShiftTime removes a shift definition and cascades: every override
// keyed by its id is deleted from every calendar, so no orphans survive.
func (s *Service) DeleteShiftTime(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := -1
	for i, st := range next.ShiftTimes {
		if st.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrShiftTimeNotFound, id)
	}

	next.ShiftTimes = append(next.ShiftTimes[:idx], next.ShiftTimes[idx+1:]...)
	for i, cal := range next.Calendars {
		next.Calendars[i] = RemoveShiftOverrides(cal, id)
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.logger.Info("Shift time deleted", zap.String("shift_id", id))
	return nil
}

// ShiftIsActive resolves one shift's activation on one date for a calendar.
func (s *Service) ShiftIsActive(calendarID string, date time.Time, shiftID string) (bool, bool) {
	cal, ok := s.CalendarByID(calendarID)
	if !ok {
		return false, false
	}
	return ShiftActive(cal, date, shiftID), true
}

// SetShiftOverride writes an explicit (date, shift) activation override.
func (s *Service) SetShiftOverride(ctx context.Context, calendarID string, date time.Time, shiftID string, active bool) error {
	return s.mutateCalendar(ctx, calendarID, func(cal Calendar) Calendar {
		return SetShiftActive(cal, date, shiftID, active)
	})
}

// ToggleShiftOverride toggles the (date, shift) override, creating it with
// value true when absent.
func (s *Service) ToggleShiftOverride(ctx context.Context, calendarID string, date time.Time, shiftID string) error {
	return s.mutateCalendar(ctx, calendarID, func(cal Calendar) Calendar {
		return ToggleShiftActive(cal, date, shiftID)
	})
}

func (s *Service) mutateCalendar(ctx context.Context, calendarID string, fn func(Calendar) Calendar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := calendarIndex(next.Calendars, calendarID)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrCalendarNotFound, calendarID)
	}
	next.Calendars[idx] = fn(next.Calendars[idx])
	return s.commit(ctx, next)
}

// EffectiveSchedule resolves the full per-date, per-shift schedule of a
// calendar over an inclusive date range.
func (s *Service) EffectiveSchedule(calendarID string, from, to time.Time) ([]DaySchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := calendarIndex(s.snap.Calendars, calendarID)
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, calendarID)
	}
	cal := s.snap.Calendars[idx]

	var days []DaySchedule
	for _, date := range dateutil.DatesBetween(from, to) {
		day := DaySchedule{
			Date:      dateutil.FormatISO(date),
			IsWorkday: IsEffectiveWorkday(date, cal),
			Shifts:    make([]ShiftActivation, 0, len(s.snap.ShiftTimes)),
		}
		if h, ok := FindHoliday(date, cal.Holidays); ok {
			day.HolidayName = h.Name
		}
		for _, st := range s.snap.ShiftTimes {
			day.Shifts = append(day.Shifts, ShiftActivation{
				ShiftTimeID: st.ID,
				Name:        st.Name,
				IsActive:    ShiftActive(cal, date, st.ID),
			})
		}
		days = append(days, day)
	}
	return days, nil
}

// CalendarToggles exposes the flat DayShiftToggle projection of a calendar.
func (s *Service) CalendarToggles(calendarID string) ([]DayShiftToggle, error) {
	cal, ok := s.CalendarByID(calendarID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, calendarID)
	}
	return Toggles(cal), nil
}

func calendarIndex(calendars []Calendar, id string) int {
	for i, cal := range calendars {
		if cal.ID == id {
			return i
		}
	}
	return -1
}
