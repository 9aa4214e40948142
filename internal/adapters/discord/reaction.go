package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Reaction gateway events are the RSVP signal source. The bot's own seeded
// reactions and DM reactions are filtered out; everything else goes to the
// reconciler, which ignores unbound messages and unknown symbols itself.

func (h *Handler) HandleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.GuildID == "" || r.UserID == s.State.User.ID {
		return
	}
	err := h.rsvpUseCase.HandleSignalAdd(context.Background(),
		r.GuildID, r.ChannelID, r.MessageID, r.UserID, r.Emoji.APIName(), h.defaultLocale)
	if err != nil {
		log.Printf("❌ Handle reaction add (message=%s, user=%s): %v", r.MessageID, r.UserID, err)
	}
}

func (h *Handler) HandleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if r.GuildID == "" || r.UserID == s.State.User.ID {
		return
	}
	err := h.rsvpUseCase.HandleSignalRemove(context.Background(),
		r.GuildID, r.ChannelID, r.MessageID, r.UserID, r.Emoji.APIName())
	if err != nil {
		log.Printf("❌ Handle reaction remove (message=%s, user=%s): %v", r.MessageID, r.UserID, err)
	}
}
