package output

import (
	"context"

	"guildcal/internal/render"
)

// MessageRef is the composite key of a rendered message on the chat surface.
type MessageRef struct {
	ChannelID string
	MessageID string
}

// Attachment is a file posted alongside a summary (the calendar export).
type Attachment struct {
	Name string
	Data []byte
}

// Notifier is the notification surface the engine synchronizes with.
// Implementations map surface-level permission failures to
// domain.ErrPermissionDenied; all other failures are plain errors. Calls are
// best-effort side effects: the authoritative state has already been written
// when any of these run.
type Notifier interface {
	PostSummary(ctx context.Context, channelID string, sum *render.Summary, attachment *Attachment) (MessageRef, error)
	EditSummary(ctx context.Context, ref MessageRef, sum *render.Summary) error
	DeleteMessage(ctx context.Context, ref MessageRef) error
	AddSignal(ctx context.Context, ref MessageRef, symbol string) error
	RemoveSignal(ctx context.Context, ref MessageRef, symbol, userID string) error
	// UserSignals reports the symbols the user currently holds on the
	// message, unfiltered; callers intersect with their vocabulary.
	UserSignals(ctx context.Context, ref MessageRef, userID string) ([]string, error)
	NotifyUser(ctx context.Context, userID, content string) error
}
