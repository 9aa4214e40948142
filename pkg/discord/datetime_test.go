package discord

import (
	"errors"
	"testing"
	"time"

	"guildcal/internal/domain"
)

func brussels(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Brussels")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	return loc
}

func TestParseEventTimes(t *testing.T) {
	loc := brussels(t)
	start, end, err := ParseEventTimes("2024-01-10", "09:00", "10:30", loc)
	if err != nil {
		t.Fatalf("ParseEventTimes: %v", err)
	}
	wantStart := time.Date(2024, 1, 10, 9, 0, 0, 0, loc)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantStart.Add(90 * time.Minute)) {
		t.Errorf("end = %v, want 10:30 same day", end)
	}
}

func TestParseEventTimesDefaultsEnd(t *testing.T) {
	loc := brussels(t)
	start, end, err := ParseEventTimes("2024-01-10", "09:00", "", loc)
	if err != nil {
		t.Fatalf("ParseEventTimes: %v", err)
	}
	if !end.Equal(start.Add(time.Hour)) {
		t.Errorf("end = %v, want one hour after start", end)
	}
}

func TestParseEventTimesTrimsInput(t *testing.T) {
	loc := brussels(t)
	start, _, err := ParseEventTimes(" 2024-01-10 ", " 09:00 ", "  ", loc)
	if err != nil {
		t.Fatalf("ParseEventTimes: %v", err)
	}
	if start.Hour() != 9 {
		t.Errorf("start hour = %d, want 9", start.Hour())
	}
}

func TestParseEventTimesValidation(t *testing.T) {
	loc := brussels(t)
	cases := []struct {
		name  string
		date  string
		start string
		end   string
		field string
	}{
		{name: "bad date", date: "10/01/2024", start: "09:00", end: "", field: "date"},
		{name: "bad start", date: "2024-01-10", start: "9am", end: "", field: "time"},
		{name: "bad end", date: "2024-01-10", start: "09:00", end: "later", field: "end"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseEventTimes(tc.date, tc.start, tc.end, loc)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("Field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestFormatEventTime(t *testing.T) {
	instant := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	if got := FormatEventTime(instant, "Europe/Brussels"); got != "Wed 10 Jan 2024 09:00 CET" {
		t.Errorf("FormatEventTime = %q", got)
	}
	// Unknown zones fall back to UTC rather than failing the list view.
	if got := FormatEventTime(instant, "Mars/Olympus"); got != "Wed 10 Jan 2024 08:00 UTC" {
		t.Errorf("FormatEventTime fallback = %q", got)
	}
}
