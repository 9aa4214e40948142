package discord

import (
	"strings"
	"time"

	"guildcal/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// Events created without an end time last one hour.
	defaultDuration = time.Hour
)

// ParseEventTimes parses the create-modal inputs in the organizer's timezone.
// date is YYYY-MM-DD, start HH:MM; end is an optional HH:MM on the same date
// and defaults to one hour after start.
func ParseEventTimes(dateStr, startStr, endStr string, loc *time.Location) (time.Time, time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	startStr = strings.TrimSpace(startStr)
	endStr = strings.TrimSpace(endStr)

	day, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("date", "expected YYYY-MM-DD")
	}
	startClock, err := time.Parse(timeLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("time", "expected HH:MM")
	}
	start := time.Date(day.Year(), day.Month(), day.Day(),
		startClock.Hour(), startClock.Minute(), 0, 0, loc)

	if endStr == "" {
		return start, start.Add(defaultDuration), nil
	}
	endClock, err := time.Parse(timeLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("end", "expected HH:MM")
	}
	end := time.Date(day.Year(), day.Month(), day.Day(),
		endClock.Hour(), endClock.Minute(), 0, 0, loc)
	return start, end, nil
}

// FormatEventTime renders an instant in the event's own timezone for list
// views. Falls back to UTC when the stored zone no longer resolves.
func FormatEventTime(t time.Time, zone string) string {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc).Format("Mon 02 Jan 2006 15:04 MST")
}
