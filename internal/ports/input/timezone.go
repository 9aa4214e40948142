package input

import "context"

type TimezoneUseCase interface {
	// Resolve returns the user's own preference, ok=false when unset.
	Resolve(ctx context.Context, userID string) (string, bool)
	// ResolveOrDefault falls back to the guild's first display zone, then UTC.
	ResolveOrDefault(ctx context.Context, guildID, userID string) string

	SetUserTimezone(ctx context.Context, userID, zone string) error
	RemoveUserTimezone(ctx context.Context, userID string) error

	GuildTimezones(ctx context.Context, guildID string) ([]string, error)
	AddGuildTimezone(ctx context.Context, guildID, zone string) error
	RemoveGuildTimezone(ctx context.Context, guildID, zone string) error
}
