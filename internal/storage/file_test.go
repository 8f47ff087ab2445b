package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/tufanunal/factory-planner-360-sub000/internal/schedule"
)

func sampleSnapshot() *schedule.Snapshot {
	return &schedule.Snapshot{
		SchemaVersion:    schedule.SchemaVersion,
		ActiveCalendarID: "c1",
		Calendars: []schedule.Calendar{
			{
				ID:          "c1",
				Name:        "Factory",
				CountryCode: "TR",
				IsDefault:   true,
				Holidays: []schedule.Holiday{
					{ID: "h1", Name: "New Year", Date: "2024-01-01", IsRecurringYearly: true},
					{ID: "h2", Name: "Maintenance Stop", Date: "2024-08-15", Description: "Annual stop"},
				},
				WorkdaysPattern: schedule.MondayToFriday(),
				ShiftSchedule: map[string]schedule.DayShifts{
					"2024-01-06": {Shifts: map[string]bool{"s1": true}},
				},
			},
		},
		ShiftTimes: []schedule.ShiftTime{
			{ID: "s1", Name: "Morning Shift", StartTime: "06:00", EndTime: "14:00", Color: "#4caf50"},
		},
	}
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "snapshot.json"), zap.NewNop())

	snap, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap != nil {
		t.Errorf("missing file must load as nil, got %+v", snap)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	fs := NewFileStore(path, zap.NewNop())
	ctx := context.Background()

	want := sampleSnapshot()
	if err := fs.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

// Persisted field names are a contract shared with already-stored data.
func TestFileStore_WireShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	fs := NewFileStore(path, zap.NewNop())

	if err := fs.Save(context.Background(), sampleSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	raw := string(data)

	for _, field := range []string{
		`"schemaVersion"`, `"activeCalendarId"`, `"calendars"`, `"shiftTimes"`,
		`"id"`, `"name"`, `"countryCode"`, `"isDefault"`, `"holidays"`,
		`"workdaysPattern"`, `"monday"`, `"sunday"`, `"shiftSchedule"`,
		`"shifts"`, `"date"`, `"isRecurringYearly"`, `"description"`,
		`"startTime"`, `"endTime"`, `"color"`,
	} {
		if !strings.Contains(raw, field) {
			t.Errorf("persisted JSON is missing field %s", field)
		}
	}

	// Nested override structure: date -> {"shifts": {shiftId: bool}}.
	var decoded struct {
		Calendars []struct {
			ShiftSchedule map[string]struct {
				Shifts map[string]bool `json:"shifts"`
			} `json:"shiftSchedule"`
		} `json:"calendars"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.Calendars[0].ShiftSchedule["2024-01-06"].Shifts["s1"] {
		t.Error("override not stored under shiftSchedule[date].shifts[shiftId]")
	}
}

func TestFileStore_SaveKeepsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	fs := NewFileStore(path, zap.NewNop())
	ctx := context.Background()

	first := sampleSnapshot()
	if err := fs.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := sampleSnapshot()
	second.Calendars[0].Name = "Renamed"
	if err := fs.Save(ctx, second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	backup, err := os.ReadFile(path + backupSuffix)
	if err != nil {
		t.Fatalf("expected backup file, got %v", err)
	}
	if !strings.Contains(string(backup), `"Factory"`) {
		t.Error("backup must hold the previous snapshot")
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Calendars[0].Name != "Renamed" {
		t.Errorf("main file holds %q, want %q", got.Calendars[0].Name, "Renamed")
	}

	// No stray temp file left behind.
	if _, err := os.Stat(path + tmpSuffix); !os.IsNotExist(err) {
		t.Error("temp file must not survive a successful save")
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	snap, err := ms.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap != nil {
		t.Errorf("empty store must load as nil, got %+v", snap)
	}

	want := sampleSnapshot()
	if err := ms.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := ms.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	// The store hands out copies, not aliases.
	got.Calendars[0].Name = "mutated"
	reloaded, _ := ms.Load(ctx)
	if reloaded.Calendars[0].Name != "Factory" {
		t.Error("loaded snapshot must be detached from the stored one")
	}
}
