// Package export implements the portable calendar-file collaborator.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"guildcal/internal/domain/entities"
	"guildcal/internal/ports/output"
)

var _ output.Exporter = (*ICalExporter)(nil)

// ICalExporter renders events as iCalendar streams: one VEVENT attached to the
// summary message on creation, or the whole guild calendar as a single file.
type ICalExporter struct {
	now func() time.Time
}

func NewICalExporter() *ICalExporter {
	return &ICalExporter{now: time.Now}
}

func (e *ICalExporter) ToPortableFormat(event *entities.Event) ([]byte, error) {
	cal := newCalendar()
	cal.Children = append(cal.Children, e.eventComponent(event))
	return encode(cal)
}

// ToPortableCalendar bundles every event into one VCALENDAR stream.
func (e *ICalExporter) ToPortableCalendar(events []entities.Event) ([]byte, error) {
	cal := newCalendar()
	for i := range events {
		cal.Children = append(cal.Children, e.eventComponent(&events[i]))
	}
	return encode(cal)
}

func (e *ICalExporter) eventComponent(event *entities.Event) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, event.ID)
	ve.Props.SetText(ical.PropSummary, event.Name)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, e.now().UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, event.StartsAt.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, event.EndsAt.UTC())
	return ve
}

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//guildcal//EN")
	return cal
}

func encode(cal *ical.Calendar) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
