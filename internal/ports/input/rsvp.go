package input

import "context"

// RSVPUseCase consumes the external reaction signals for a rendered event
// message. Both operations are idempotent and ignore symbols outside the
// guild's status vocabulary.
type RSVPUseCase interface {
	HandleSignalAdd(ctx context.Context, guildID, channelID, messageID, userID, symbol, locale string) error
	HandleSignalRemove(ctx context.Context, guildID, channelID, messageID, userID, symbol string) error
}
