package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tufanunal/factory-planner-360-sub000/internal/schedule"
)

// calendarRecord is the sqlite row shape of a calendar. The holiday list,
// the weekly pattern and the sparse override map are stored as JSON columns
// in their wire shapes, so the database stays interoperable with the file
// store. Position preserves registry order (holiday priority depends on it).
type calendarRecord struct {
	ID              string `gorm:"primaryKey"`
	Position        int    `gorm:"not null;index"`
	Name            string `gorm:"not null"`
	CountryCode     string
	IsDefault       bool           `gorm:"not null"`
	Holidays        datatypes.JSON `gorm:"type:json"`
	WorkdaysPattern datatypes.JSON `gorm:"type:json"`
	ShiftSchedule   datatypes.JSON `gorm:"type:json"`
}

func (calendarRecord) TableName() string { return "calendars" }

type shiftTimeRecord struct {
	ID           string `gorm:"primaryKey"`
	Position     int    `gorm:"not null;index"`
	Name         string `gorm:"not null"`
	StartTime    string
	EndTime      string
	Color        string
	RotationRole string
}

func (shiftTimeRecord) TableName() string { return "shift_times" }

// registryRecord is a single-row table carrying the snapshot-level fields.
type registryRecord struct {
	ID               int `gorm:"primaryKey"`
	SchemaVersion    int
	ActiveCalendarID string
}

func (registryRecord) TableName() string { return "registry" }

// SqliteStore persists the snapshot in a sqlite database. Save replaces the
// whole snapshot inside one transaction, which is the atomic batch the
// engine relies on.
type SqliteStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSqliteStore opens (and migrates) the database at the given path.
func NewSqliteStore(path string, logger *zap.Logger) (*SqliteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&registryRecord{}, &calendarRecord{}, &shiftTimeRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SqliteStore{db: db, logger: logger}, nil
}

// Load reads the snapshot from the database. An empty database returns nil.
func (ss *SqliteStore) Load(ctx context.Context) (*schedule.Snapshot, error) {
	var reg registryRecord
	err := ss.db.WithContext(ctx).First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load registry row: %w", err)
	}

	var calRows []calendarRecord
	if err := ss.db.WithContext(ctx).Order("position").Find(&calRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load calendars: %w", err)
	}
	var shiftRows []shiftTimeRecord
	if err := ss.db.WithContext(ctx).Order("position").Find(&shiftRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load shift times: %w", err)
	}

	snap := &schedule.Snapshot{
		SchemaVersion:    reg.SchemaVersion,
		ActiveCalendarID: reg.ActiveCalendarID,
		Calendars:        make([]schedule.Calendar, 0, len(calRows)),
		ShiftTimes:       make([]schedule.ShiftTime, 0, len(shiftRows)),
	}

	for _, row := range calRows {
		cal, err := row.toCalendar()
		if err != nil {
			return nil, fmt.Errorf("calendar %s: %w", row.ID, err)
		}
		snap.Calendars = append(snap.Calendars, cal)
	}
	for _, row := range shiftRows {
		snap.ShiftTimes = append(snap.ShiftTimes, schedule.ShiftTime{
			ID:           row.ID,
			Name:         row.Name,
			StartTime:    row.StartTime,
			EndTime:      row.EndTime,
			Color:        row.Color,
			RotationRole: schedule.RotationRole(row.RotationRole),
		})
	}

	ss.logger.Info("Snapshot loaded from sqlite",
		zap.Int("calendars", len(snap.Calendars)),
		zap.Int("shift_times", len(snap.ShiftTimes)))
	return snap, nil
}

// Save replaces the stored snapshot in one transaction.
func (ss *SqliteStore) Save(ctx context.Context, snap *schedule.Snapshot) error {
	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"registry", "calendars", "shift_times"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		reg := registryRecord{
			ID:               1,
			SchemaVersion:    snap.SchemaVersion,
			ActiveCalendarID: snap.ActiveCalendarID,
		}
		if err := tx.Create(&reg).Error; err != nil {
			return fmt.Errorf("failed to write registry row: %w", err)
		}

		for i, cal := range snap.Calendars {
			row, err := toCalendarRecord(cal, i)
			if err != nil {
				return fmt.Errorf("calendar %s: %w", cal.ID, err)
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to write calendar %s: %w", cal.ID, err)
			}
		}
		for i, st := range snap.ShiftTimes {
			row := shiftTimeRecord{
				ID:           st.ID,
				Position:     i,
				Name:         st.Name,
				StartTime:    st.StartTime,
				EndTime:      st.EndTime,
				Color:        st.Color,
				RotationRole: string(st.RotationRole),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to write shift time %s: %w", st.ID, err)
			}
		}
		return nil
	})
}

func toCalendarRecord(cal schedule.Calendar, position int) (calendarRecord, error) {
	holidays, err := json.Marshal(cal.Holidays)
	if err != nil {
		return calendarRecord{}, fmt.Errorf("marshal holidays: %w", err)
	}
	pattern, err := json.Marshal(cal.WorkdaysPattern)
	if err != nil {
		return calendarRecord{}, fmt.Errorf("marshal workdays pattern: %w", err)
	}

	row := calendarRecord{
		ID:              cal.ID,
		Position:        position,
		Name:            cal.Name,
		CountryCode:     cal.CountryCode,
		IsDefault:       cal.IsDefault,
		Holidays:        datatypes.JSON(holidays),
		WorkdaysPattern: datatypes.JSON(pattern),
	}
	if cal.ShiftSchedule != nil {
		sched, err := json.Marshal(cal.ShiftSchedule)
		if err != nil {
			return calendarRecord{}, fmt.Errorf("marshal shift schedule: %w", err)
		}
		row.ShiftSchedule = datatypes.JSON(sched)
	}
	return row, nil
}

func (r calendarRecord) toCalendar() (schedule.Calendar, error) {
	cal := schedule.Calendar{
		ID:          r.ID,
		Name:        r.Name,
		CountryCode: r.CountryCode,
		IsDefault:   r.IsDefault,
		Holidays:    []schedule.Holiday{},
	}
	if len(r.Holidays) > 0 {
		if err := json.Unmarshal(r.Holidays, &cal.Holidays); err != nil {
			return schedule.Calendar{}, fmt.Errorf("unmarshal holidays: %w", err)
		}
	}
	if len(r.WorkdaysPattern) > 0 {
		if err := json.Unmarshal(r.WorkdaysPattern, &cal.WorkdaysPattern); err != nil {
			return schedule.Calendar{}, fmt.Errorf("unmarshal workdays pattern: %w", err)
		}
	}
	if len(r.ShiftSchedule) > 0 {
		if err := json.Unmarshal(r.ShiftSchedule, &cal.ShiftSchedule); err != nil {
			return schedule.Calendar{}, fmt.Errorf("unmarshal shift schedule: %w", err)
		}
	}
	return cal, nil
}
