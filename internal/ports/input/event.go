package input

import (
	"context"
	"time"

	"guildcal/internal/domain"
	"guildcal/internal/domain/entities"
)

type EventUseCase interface {
	// CreateEvent validates, persists and exports the event. The returned
	// bytes are the portable calendar attachment for the summary post.
	CreateEvent(ctx context.Context, guildID, organizerID, name string, start, end time.Time, zone string) (*entities.Event, []byte, error)
	GetEvent(ctx context.Context, guildID, eventID string) (*entities.Event, error)
	ListEvents(ctx context.Context, guildID string) ([]entities.Event, error)
	// ExportGuildCalendar bundles every event of the guild into one portable
	// calendar file; domain.ErrNotFound when there is nothing to export.
	ExportGuildCalendar(ctx context.Context, guildID string) ([]byte, error)
	DeleteEvent(ctx context.Context, guildID, eventID string) error
	ResetGuild(ctx context.Context, guildID string) error

	BindMessage(ctx context.Context, guildID, eventID, channelID, messageID string) error
	Binding(ctx context.Context, guildID, eventID string) (*entities.DisplayBinding, error)
	ReleaseBinding(ctx context.Context, guildID, channelID, messageID string) error

	Vocabulary(ctx context.Context, guildID string) (domain.Vocabulary, error)
}
