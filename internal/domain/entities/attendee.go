package entities

import "time"

// Attendee represents a user's RSVP on an event. At most one attendee record
// exists per user per event.
type Attendee struct {
	UserID   string    `json:"user_id"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

// Roster is the ordered attendee list of one event. It is only ever mutated
// under the store's per-event serialization.
type Roster struct {
	Attendees []Attendee `json:"attendees"`
}

// Transition describes the outcome of applying an RSVP signal to a roster.
// From is empty when the user had no attendee record before.
type Transition struct {
	From    string
	To      string
	Changed bool
}

// Find returns the attendee record for userID, or nil.
func (r *Roster) Find(userID string) *Attendee {
	for i := range r.Attendees {
		if r.Attendees[i].UserID == userID {
			return &r.Attendees[i]
		}
	}
	return nil
}

// Apply moves the user to status. A user with no record gets one appended; a
// user holding a different status is overwritten in place (statuses are
// exclusive); a user already holding status is left untouched and the
// transition reports Changed=false.
func (r *Roster) Apply(userID, status string, now time.Time) Transition {
	if a := r.Find(userID); a != nil {
		if a.Status == status {
			return Transition{From: a.Status, To: status, Changed: false}
		}
		from := a.Status
		a.Status = status
		return Transition{From: from, To: status, Changed: true}
	}
	r.Attendees = append(r.Attendees, Attendee{UserID: userID, Status: status, JoinedAt: now})
	return Transition{To: status, Changed: true}
}

// Remove deletes the user's attendee record, reporting whether one existed.
func (r *Roster) Remove(userID string) bool {
	for i := range r.Attendees {
		if r.Attendees[i].UserID == userID {
			r.Attendees = append(r.Attendees[:i], r.Attendees[i+1:]...)
			return true
		}
	}
	return false
}

// ByStatus returns the attendees holding status, in roster order.
func (r *Roster) ByStatus(status string) []Attendee {
	var out []Attendee
	for _, a := range r.Attendees {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}
