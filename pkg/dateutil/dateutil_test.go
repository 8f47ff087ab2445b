package dateutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2024, 3, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestParseISO(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			"valid date",
			"2024-01-01",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"valid leap day",
			"2024-02-29",
			time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			false,
		},
		{"with time component", "2024-01-01T10:00:00", time.Time{}, true},
		{"garbage", "not-a-date", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseISO(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseISO(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && !result.Equal(tt.want) {
				t.Errorf("ParseISO(%q) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestFormatISO_RoundTrip(t *testing.T) {
	input := "2025-12-31"
	parsed, err := ParseISO(input)
	if err != nil {
		t.Fatalf("ParseISO(%q) error = %v", input, err)
	}

	if got := FormatISO(parsed); got != input {
		t.Errorf("FormatISO(ParseISO(%q)) = %q, want %q", input, got, input)
	}
}

func TestIsSameDay(t *testing.T) {
	tests := []struct {
		name  string
		date1 time.Time
		date2 time.Time
		want  bool
	}{
		{
			"same date different time",
			time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC),
			true,
		},
		{
			"different day",
			time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC),
			false,
		},
		{
			"same month-day different year",
			time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSameDay(tt.date1, tt.date2); got != tt.want {
				t.Errorf("IsSameDay(%v, %v) = %v, want %v", tt.date1, tt.date2, got, tt.want)
			}
		})
	}
}

func TestIsSameMonthDay(t *testing.T) {
	tests := []struct {
		name  string
		date1 time.Time
		date2 time.Time
		want  bool
	}{
		{
			"same month-day across years",
			time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			true,
		},
		{
			"same day different month",
			time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"same month different day",
			time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSameMonthDay(tt.date1, tt.date2); got != tt.want {
				t.Errorf("IsSameMonthDay(%v, %v) = %v, want %v", tt.date1, tt.date2, got, tt.want)
			}
		})
	}
}

func TestWeekdayKey(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"Monday", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "monday"},
		{"Tuesday", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "tuesday"},
		{"Wednesday", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), "wednesday"},
		{"Thursday", time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), "thursday"},
		{"Friday", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "friday"},
		{"Saturday", time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), "saturday"},
		{"Sunday", time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), "sunday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekdayKey(tt.input); got != tt.want {
				t.Errorf("WeekdayKey(%v) = %q, want %q",
					tt.input.Format("2006-01-02 Mon"), got, tt.want)
			}
		})
	}
}

func TestDatesBetween(t *testing.T) {
	tests := []struct {
		name    string
		from    time.Time
		to      time.Time
		wantLen int
	}{
		{
			"single day",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			1,
		},
		{
			"one week",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			7,
		},
		{
			"reversed range is empty",
			time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			0,
		},
		{
			"across month boundary",
			time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
			4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := DatesBetween(tt.from, tt.to)

			if len(dates) != tt.wantLen {
				t.Fatalf("DatesBetween() returned %d dates, want %d", len(dates), tt.wantLen)
			}

			for i := 1; i < len(dates); i++ {
				if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
					t.Errorf("dates[%d] = %v, not the day after %v", i, dates[i], dates[i-1])
				}
			}
		})
	}
}
