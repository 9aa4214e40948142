package output

import (
	"context"

	"guildcal/internal/domain"
)

// PreferenceRepository persists per-user and per-guild display preferences.
// Zone getters return the zero value (not an error) when nothing is set.
type PreferenceRepository interface {
	UserTimezone(ctx context.Context, userID string) (string, error)
	SetUserTimezone(ctx context.Context, userID, zone string) error
	RemoveUserTimezone(ctx context.Context, userID string) error

	// GuildTimezones is the guild's additional display zone set, insertion
	// order preserved.
	GuildTimezones(ctx context.Context, guildID string) ([]string, error)
	SetGuildTimezones(ctx context.Context, guildID string, zones []string) error

	GuildVocabulary(ctx context.Context, guildID string) (domain.Vocabulary, error)
	SetGuildVocabulary(ctx context.Context, guildID string, vocab domain.Vocabulary) error
}
