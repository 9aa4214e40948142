package entities

import "time"

// Event is a guild-scoped calendar event. Instants are stored in UTC;
// Timezone records the IANA zone the event was created in and is only used
// for display.
type Event struct {
	ID          string    `json:"id"`
	GuildID     string    `json:"guild_id"`
	Name        string    `json:"name"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	OrganizerID string    `json:"organizer_id"`
	Timezone    string    `json:"timezone"`
	Roster      Roster    `json:"roster"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventRef is the entry stored under the organizer's personal index.
type EventRef struct {
	EventID  string    `json:"event_id"`
	GuildID  string    `json:"guild_id"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at"`
}

// DisplayBinding links a rendered message (channel+message composite key) to
// the event it displays. One binding per live message.
type DisplayBinding struct {
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	EventID   string `json:"event_id"`
}
