package output

import "guildcal/internal/domain/entities"

// Exporter converts events into portable calendar-file byte streams.
// ToPortableFormat covers the single event attached to a summary message,
// ToPortableCalendar the whole guild calendar as one file.
type Exporter interface {
	ToPortableFormat(event *entities.Event) ([]byte, error)
	ToPortableCalendar(events []entities.Event) ([]byte, error)
}
