package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/tufanunal/factory-planner-360-sub000/internal/schedule"
)

func newTestSqliteStore(t *testing.T) *SqliteStore {
	t.Helper()
	store, err := NewSqliteStore(filepath.Join(t.TempDir(), "planner.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewSqliteStore() error = %v", err)
	}
	return store
}

func TestSqliteStore_LoadEmpty(t *testing.T) {
	store := newTestSqliteStore(t)

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap != nil {
		t.Errorf("empty database must load as nil, got %+v", snap)
	}
}

func TestSqliteStore_RoundTrip(t *testing.T) {
	store := newTestSqliteStore(t)
	ctx := context.Background()

	want := sampleSnapshot()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

// Holiday priority is insertion order; the database must preserve it.
func TestSqliteStore_PreservesOrder(t *testing.T) {
	store := newTestSqliteStore(t)
	ctx := context.Background()

	snap := sampleSnapshot()
	snap.Calendars = append(snap.Calendars,
		schedule.Calendar{ID: "c2", Name: "Branch A", Holidays: []schedule.Holiday{}},
		schedule.Calendar{ID: "c3", Name: "Branch B", Holidays: []schedule.Holiday{}},
	)
	snap.ShiftTimes = append(snap.ShiftTimes,
		schedule.ShiftTime{ID: "s2", Name: "Afternoon Shift", StartTime: "14:00", EndTime: "22:00"},
		schedule.ShiftTime{ID: "s3", Name: "Night Shift", StartTime: "22:00", EndTime: "06:00"},
	)

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for i, cal := range snap.Calendars {
		if got.Calendars[i].ID != cal.ID {
			t.Errorf("calendar order: got[%d] = %q, want %q", i, got.Calendars[i].ID, cal.ID)
		}
	}
	for i, st := range snap.ShiftTimes {
		if got.ShiftTimes[i].ID != st.ID {
			t.Errorf("shift order: got[%d] = %q, want %q", i, got.ShiftTimes[i].ID, st.ID)
		}
	}

	holidays := got.Calendars[0].Holidays
	if len(holidays) != 2 || holidays[0].ID != "h1" || holidays[1].ID != "h2" {
		t.Errorf("holiday order not preserved: %+v", holidays)
	}
}

// A second save fully replaces the first snapshot.
func TestSqliteStore_SaveReplaces(t *testing.T) {
	store := newTestSqliteStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := sampleSnapshot()
	second.Calendars[0].Name = "Renamed"
	second.ShiftTimes = nil
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Calendars[0].Name != "Renamed" {
		t.Errorf("calendar name = %q, want %q", got.Calendars[0].Name, "Renamed")
	}
	if len(got.ShiftTimes) != 0 {
		t.Errorf("stale shift times survived the replace: %+v", got.ShiftTimes)
	}
}
