package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"guildcal/internal/domain"
	"guildcal/internal/domain/entities"
	"guildcal/internal/ports/output"
)

type EventService struct {
	events   output.EventRepository
	bindings output.BindingRepository
	vocab    *VocabularyProvider
	exporter output.Exporter
	now      func() time.Time

	// onGuildReset lets the wiring invalidate sibling caches (guild
	// timezones) when a guild's data is wiped.
	onGuildReset func(guildID string)
}

func NewEventService(
	events output.EventRepository,
	bindings output.BindingRepository,
	vocab *VocabularyProvider,
	exporter output.Exporter,
) *EventService {
	return &EventService{
		events:   events,
		bindings: bindings,
		vocab:    vocab,
		exporter: exporter,
		now:      time.Now,
	}
}

// OnGuildReset registers a hook run after a successful guild reset.
func (s *EventService) OnGuildReset(hook func(guildID string)) {
	s.onGuildReset = hook
}

func (s *EventService) CreateEvent(ctx context.Context, guildID, organizerID, name string, start, end time.Time, zone string) (*entities.Event, []byte, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, domain.NewValidationError("name", "must not be empty")
	}
	if !end.After(start) {
		return nil, nil, domain.NewValidationError("end", "must be after start")
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return nil, nil, domain.ErrInvalidTimezone
	}

	now := s.now().UTC()
	event := &entities.Event{
		ID:          uuid.NewString(),
		GuildID:     guildID,
		Name:        name,
		StartsAt:    start.UTC(),
		EndsAt:      end.UTC(),
		OrganizerID: organizerID,
		Timezone:    zone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, nil, err
	}

	attachment, err := s.exporter.ToPortableFormat(event)
	if err != nil {
		// The event is already stored; a failed export only costs the attachment.
		log.Printf("⚠️ Export calendar file (event=%s): %v", event.ID, err)
		attachment = nil
	}
	return event, attachment, nil
}

func (s *EventService) GetEvent(ctx context.Context, guildID, eventID string) (*entities.Event, error) {
	return s.events.FindByID(ctx, guildID, eventID)
}

func (s *EventService) ListEvents(ctx context.Context, guildID string) ([]entities.Event, error) {
	return s.events.FindByGuildID(ctx, guildID)
}

// ExportGuildCalendar bundles all events of the guild into one portable
// calendar file. ErrNotFound when the guild has no events.
func (s *EventService) ExportGuildCalendar(ctx context.Context, guildID string) ([]byte, error) {
	events, err := s.events.FindByGuildID(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.ErrNotFound
	}
	data, err := s.exporter.ToPortableCalendar(events)
	if err != nil {
		return nil, fmt.Errorf("export guild calendar: %w", err)
	}
	return data, nil
}

// DeleteEvent removes the event from the shared and personal indices. The
// display binding is not cascaded; callers release it (and the message)
// themselves.
func (s *EventService) DeleteEvent(ctx context.Context, guildID, eventID string) error {
	return s.events.Delete(ctx, guildID, eventID)
}

func (s *EventService) ResetGuild(ctx context.Context, guildID string) error {
	if err := s.events.ResetGuild(ctx, guildID); err != nil {
		return err
	}
	s.vocab.Invalidate(guildID)
	if s.onGuildReset != nil {
		s.onGuildReset(guildID)
	}
	return nil
}

func (s *EventService) BindMessage(ctx context.Context, guildID, eventID, channelID, messageID string) error {
	return s.bindings.Bind(ctx, &entities.DisplayBinding{
		GuildID:   guildID,
		ChannelID: channelID,
		MessageID: messageID,
		EventID:   eventID,
	})
}

func (s *EventService) Binding(ctx context.Context, guildID, eventID string) (*entities.DisplayBinding, error) {
	return s.bindings.FindByEventID(ctx, guildID, eventID)
}

func (s *EventService) ReleaseBinding(ctx context.Context, guildID, channelID, messageID string) error {
	return s.bindings.Release(ctx, guildID, channelID, messageID)
}

func (s *EventService) Vocabulary(ctx context.Context, guildID string) (domain.Vocabulary, error) {
	return s.vocab.Get(ctx, guildID)
}
