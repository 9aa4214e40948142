package output

import "context"

// IdentityResolver resolves user references against the chat surface.
type IdentityResolver interface {
	DisplayName(ctx context.Context, guildID, userID string) (string, error)
}
