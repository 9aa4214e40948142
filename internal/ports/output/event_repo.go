package output

import (
	"context"

	"guildcal/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, guildID, eventID string) (*entities.Event, error)
	FindByGuildID(ctx context.Context, guildID string) ([]entities.Event, error)
	FindByOrganizerID(ctx context.Context, userID string) ([]entities.EventRef, error)
	// UpdateRoster runs mutate under the per-event write serialization and
	// persists the result. Mutations on distinct events do not block each
	// other. The returned event is the persisted state.
	UpdateRoster(ctx context.Context, guildID, eventID string, mutate func(*entities.Event) error) (*entities.Event, error)
	Delete(ctx context.Context, guildID, eventID string) error
	ResetGuild(ctx context.Context, guildID string) error
}

type BindingRepository interface {
	Bind(ctx context.Context, binding *entities.DisplayBinding) error
	FindByMessage(ctx context.Context, guildID, channelID, messageID string) (*entities.DisplayBinding, error)
	FindByEventID(ctx context.Context, guildID, eventID string) (*entities.DisplayBinding, error)
	Release(ctx context.Context, guildID, channelID, messageID string) error
}
