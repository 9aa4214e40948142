package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"guildcal/internal/domain"
	"guildcal/internal/domain/entities"
	"guildcal/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

// EventRepository persists events in the scoped KV collaborator: the full
// record under the guild scope, a slim reference under the organizer's
// personal scope. UpdateRoster serializes writers per event with a keyed
// mutex on top of the store's transactional read-modify-write.
type EventRepository struct {
	kv    output.KV
	locks *keyedMutex
	now   func() time.Time
}

func NewEventRepository(kv output.KV) *EventRepository {
	return &EventRepository{kv: kv, locks: newKeyedMutex(), now: time.Now}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	doc, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := r.kv.Put(ctx, guildScope(event.GuildID), eventKey(event.ID), doc); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	ref, err := json.Marshal(entities.EventRef{
		EventID:  event.ID,
		GuildID:  event.GuildID,
		Name:     event.Name,
		StartsAt: event.StartsAt,
	})
	if err != nil {
		return fmt.Errorf("marshal event ref: %w", err)
	}
	if err := r.kv.Put(ctx, userScope(event.OrganizerID), eventKey(event.ID), ref); err != nil {
		return fmt.Errorf("index event for organizer: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, guildID, eventID string) (*entities.Event, error) {
	doc, err := r.kv.Get(ctx, guildScope(guildID), eventKey(eventID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	var event entities.Event
	if err := json.Unmarshal(doc, &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) FindByGuildID(ctx context.Context, guildID string) ([]entities.Event, error) {
	docs, err := r.kv.List(ctx, guildScope(guildID), eventKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := make([]entities.Event, 0, len(docs))
	for key, doc := range docs {
		var event entities.Event
		if err := json.Unmarshal(doc, &event); err != nil {
			return nil, fmt.Errorf("unmarshal event %s: %w", key, err)
		}
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *EventRepository) FindByOrganizerID(ctx context.Context, userID string) ([]entities.EventRef, error) {
	docs, err := r.kv.List(ctx, userScope(userID), eventKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list organizer events: %w", err)
	}
	out := make([]entities.EventRef, 0, len(docs))
	for key, doc := range docs {
		var ref entities.EventRef
		if err := json.Unmarshal(doc, &ref); err != nil {
			return nil, fmt.Errorf("unmarshal event ref %s: %w", key, err)
		}
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].EventID < out[j].EventID
	})
	return out, nil
}

func (r *EventRepository) UpdateRoster(ctx context.Context, guildID, eventID string, mutate func(*entities.Event) error) (*entities.Event, error) {
	unlock := r.locks.Lock(guildScope(guildID) + "/" + eventKey(eventID))
	defer unlock()

	var updated *entities.Event
	err := r.kv.Update(ctx, guildScope(guildID), eventKey(eventID), func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, domain.ErrEventNotFound
		}
		var event entities.Event
		if err := json.Unmarshal(current, &event); err != nil {
			return nil, fmt.Errorf("unmarshal event: %w", err)
		}
		if err := mutate(&event); err != nil {
			return nil, err
		}
		event.UpdatedAt = r.now().UTC()
		updated = &event
		return json.Marshal(&event)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *EventRepository) Delete(ctx context.Context, guildID, eventID string) error {
	event, err := r.FindByID(ctx, guildID, eventID)
	if err != nil {
		return err
	}
	if err := r.kv.Delete(ctx, guildScope(guildID), eventKey(eventID)); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if err := r.kv.Delete(ctx, userScope(event.OrganizerID), eventKey(eventID)); err != nil {
		return fmt.Errorf("delete organizer index: %w", err)
	}
	return nil
}

// ResetGuild wipes the guild scope and the personal-index entries of every
// event it held, so organizer listings never point at deleted events.
func (r *EventRepository) ResetGuild(ctx context.Context, guildID string) error {
	events, err := r.FindByGuildID(ctx, guildID)
	if err != nil {
		return err
	}
	if err := r.kv.DeleteScope(ctx, guildScope(guildID)); err != nil {
		return fmt.Errorf("reset guild: %w", err)
	}
	for _, event := range events {
		if err := r.kv.Delete(ctx, userScope(event.OrganizerID), eventKey(event.ID)); err != nil {
			return fmt.Errorf("reset organizer index: %w", err)
		}
	}
	return nil
}
