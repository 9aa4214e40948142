package discord

import (
	"context"
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"

	"guildcal/internal/domain"
)

func (h *Handler) HandleTimezoneCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := string(i.Locale)
	userID := i.Member.User.ID
	name, opts := subcommand(i.ApplicationCommandData())

	switch name {
	case "set":
		zone := opts["zone"]
		if err := h.timezoneUseCase.SetUserTimezone(ctx, userID, zone); err != nil {
			h.respondTimezoneError(s, i, locale, zone, err)
			return
		}
		respondEphemeral(s, i.Interaction, h.translate(locale, "timezone.set", map[string]any{"Zone": zone}))
	case "remove":
		if err := h.timezoneUseCase.RemoveUserTimezone(ctx, userID); err != nil {
			log.Printf("❌ Remove timezone (user=%s): %v", userID, err)
			respondEphemeral(s, i.Interaction, h.translate(locale, "errors.generic", nil))
			return
		}
		respondEphemeral(s, i.Interaction, h.translate(locale, "timezone.removed", nil))
	case "server-add":
		zone := opts["zone"]
		if err := h.timezoneUseCase.AddGuildTimezone(ctx, i.GuildID, zone); err != nil {
			h.respondTimezoneError(s, i, locale, zone, err)
			return
		}
		respondEphemeral(s, i.Interaction, h.translate(locale, "timezone.guild_added", map[string]any{"Zone": zone}))
	case "server-remove":
		zone := opts["zone"]
		if err := h.timezoneUseCase.RemoveGuildTimezone(ctx, i.GuildID, zone); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondEphemeral(s, i.Interaction, h.translate(locale, "timezone.guild_not_found", nil))
				return
			}
			h.respondTimezoneError(s, i, locale, zone, err)
			return
		}
		respondEphemeral(s, i.Interaction, h.translate(locale, "timezone.guild_removed", map[string]any{"Zone": zone}))
	}
}

func (h *Handler) respondTimezoneError(s *discordgo.Session, i *discordgo.InteractionCreate, locale, zone string, err error) {
	if errors.Is(err, domain.ErrInvalidTimezone) {
		respondEphemeral(s, i.Interaction, h.translate(locale, "errors.invalid_timezone", nil))
		return
	}
	log.Printf("❌ Timezone command (zone=%s): %v", zone, err)
	respondEphemeral(s, i.Interaction, h.translate(locale, "errors.generic", nil))
}
