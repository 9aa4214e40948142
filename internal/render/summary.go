// Package render builds the display-ready projection of an event. Render is
// a pure function of its inputs; pushing the result to the chat surface is
// the adapter's job.
package render

import (
	"time"

	"guildcal/internal/domain"
	"guildcal/internal/domain/entities"
)

const timeLayout = "Mon 02 Jan 2006 15:04"

// EmptyGroup is rendered for a status nobody holds, so the group block never
// collapses to an empty string.
const EmptyGroup = "—"

// NameResolver turns a user reference into a display name.
type NameResolver func(userID string) (string, error)

// Summary is the rendered projection of one event.
type Summary struct {
	Title    string
	TimeRows []TimeRow
	Groups   []Group
}

// TimeRow is the event's start/end formatted for one display zone.
type TimeRow struct {
	Zone  string
	Start string
	End   string
}

// Group lists the attendees holding one status, in vocabulary order.
type Group struct {
	Status string
	Symbol string
	Names  []string
}

// Count returns the number of attendees in the group.
func (g Group) Count() int { return len(g.Names) }

// Render produces the summary for event: a time row per zone in
// zones ∪ {event's own timezone} (insertion order, event zone appended last
// when missing) and one group per vocabulary entry. Resolver failures are
// surfaced as UnresolvedUserError instead of silently dropping the attendee.
func Render(event *entities.Event, vocab domain.Vocabulary, zones []string, names NameResolver) (*Summary, error) {
	sum := &Summary{Title: event.Name}

	for _, zone := range displayZones(zones, event.Timezone) {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return nil, domain.ErrInvalidTimezone
		}
		sum.TimeRows = append(sum.TimeRows, TimeRow{
			Zone:  zone,
			Start: event.StartsAt.In(loc).Format(timeLayout),
			End:   event.EndsAt.In(loc).Format(timeLayout),
		})
	}

	for _, entry := range vocab {
		group := Group{Status: entry.Status, Symbol: entry.Symbol}
		for _, a := range event.Roster.ByStatus(entry.Status) {
			name, err := names(a.UserID)
			if err != nil {
				return nil, &domain.UnresolvedUserError{UserID: a.UserID, Err: err}
			}
			group.Names = append(group.Names, name)
		}
		sum.Groups = append(sum.Groups, group)
	}
	return sum, nil
}

// displayZones dedupes zones preserving insertion order and guarantees the
// event's own zone is present.
func displayZones(zones []string, eventZone string) []string {
	seen := make(map[string]bool, len(zones)+1)
	out := make([]string, 0, len(zones)+1)
	for _, z := range append(append([]string{}, zones...), eventZone) {
		if z == "" || seen[z] {
			continue
		}
		seen[z] = true
		out = append(out, z)
	}
	return out
}
