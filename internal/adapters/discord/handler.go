package discord

import (
	"guildcal/internal/ports/input"
	"guildcal/internal/ports/output"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	eventUseCase    input.EventUseCase
	rsvpUseCase     input.RSVPUseCase
	timezoneUseCase input.TimezoneUseCase
	notifier        output.Notifier
	identity        output.IdentityResolver
	translator      output.T
	defaultLocale   string
}

// NewHandler creates a Handler.
func NewHandler(
	eventUseCase input.EventUseCase,
	rsvpUseCase input.RSVPUseCase,
	timezoneUseCase input.TimezoneUseCase,
	notifier output.Notifier,
	identity output.IdentityResolver,
	translator output.T,
	defaultLocale string,
) *Handler {
	return &Handler{
		eventUseCase:    eventUseCase,
		rsvpUseCase:     rsvpUseCase,
		timezoneUseCase: timezoneUseCase,
		notifier:        notifier,
		identity:        identity,
		translator:      translator,
		defaultLocale:   defaultLocale,
	}
}

func (h *Handler) translate(locale, key string, data map[string]any) string {
	if locale == "" {
		locale = h.defaultLocale
	}
	return h.translator.T(locale, key, data)
}
