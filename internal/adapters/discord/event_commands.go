package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"guildcal/internal/domain"
	"guildcal/internal/ports/output"
	pkgdiscord "guildcal/pkg/discord"
)

func (h *Handler) HandleEventCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name, opts := subcommand(i.ApplicationCommandData())
	switch name {
	case "create":
		h.openCreateEventModal(s, i)
	case "delete":
		h.handleEventDelete(s, i, opts["id"])
	case "list":
		h.handleEventList(s, i)
	case "export":
		h.handleEventExport(s, i)
	case "reset":
		h.handleEventReset(s, i)
	}
}

// handleEventDelete removes the event, then releases its display binding and
// deletes the rendered message. The binding release is the caller's job by
// contract, so it happens here and not inside the use case.
func (h *Handler) handleEventDelete(s *discordgo.Session, i *discordgo.InteractionCreate, eventID string) {
	ctx := context.Background()
	locale := string(i.Locale)
	guildID := i.GuildID

	binding, bindErr := h.eventUseCase.Binding(ctx, guildID, eventID)

	if err := h.eventUseCase.DeleteEvent(ctx, guildID, eventID); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			respondEphemeral(s, i.Interaction, h.translate(locale, "event.not_found", nil))
			return
		}
		log.Printf("❌ Delete event %s: %v", eventID, err)
		respondEphemeral(s, i.Interaction, h.translate(locale, "errors.generic", nil))
		return
	}

	if bindErr == nil {
		ref := output.MessageRef{ChannelID: binding.ChannelID, MessageID: binding.MessageID}
		if err := h.notifier.DeleteMessage(ctx, ref); err != nil {
			log.Printf("⚠️ Delete summary message %s: %v", binding.MessageID, err)
		}
		if err := h.eventUseCase.ReleaseBinding(ctx, guildID, binding.ChannelID, binding.MessageID); err != nil {
			log.Printf("⚠️ Release binding (event=%s): %v", eventID, err)
		}
	}

	respondEphemeral(s, i.Interaction, h.translate(locale, "event.deleted", nil))
}

func (h *Handler) handleEventList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := string(i.Locale)

	events, err := h.eventUseCase.ListEvents(ctx, i.GuildID)
	if err != nil {
		log.Printf("❌ List events (guild=%s): %v", i.GuildID, err)
		respondEphemeral(s, i.Interaction, h.translate(locale, "errors.generic", nil))
		return
	}
	if len(events) == 0 {
		respondEphemeral(s, i.Interaction, h.translate(locale, "event.list_empty", nil))
		return
	}

	var b strings.Builder
	for _, e := range events {
		b.WriteString(fmt.Sprintf("**%s** — %s (%s)\n`%s`\n",
			e.Name, pkgdiscord.FormatEventTime(e.StartsAt, e.Timezone), e.Timezone, e.ID))
	}
	respondEphemeral(s, i.Interaction, b.String())
}

// handleEventExport sends the whole guild calendar as one .ics attachment.
func (h *Handler) handleEventExport(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := string(i.Locale)

	data, err := h.eventUseCase.ExportGuildCalendar(ctx, i.GuildID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondEphemeral(s, i.Interaction, h.translate(locale, "event.list_empty", nil))
			return
		}
		log.Printf("❌ Export guild calendar (guild=%s): %v", i.GuildID, err)
		respondEphemeral(s, i.Interaction, h.translate(locale, "errors.generic", nil))
		return
	}
	respondEphemeralFile(s, i.Interaction, h.translate(locale, "event.exported", nil), "calendar.ics", data)
}

func (h *Handler) handleEventReset(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := string(i.Locale)

	if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		respondEphemeral(s, i.Interaction, h.translate(locale, "errors.not_allowed", nil))
		return
	}
	if err := h.eventUseCase.ResetGuild(ctx, i.GuildID); err != nil {
		log.Printf("❌ Reset guild %s: %v", i.GuildID, err)
		respondEphemeral(s, i.Interaction, h.translate(locale, "errors.generic", nil))
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(locale, "event.reset_done", nil))
}
