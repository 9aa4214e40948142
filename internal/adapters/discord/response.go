package discord

import (
	"bytes"

	"github.com/bwmarrin/discordgo"
)

// resolveDisplayName picks the name a guild shows for a member:
// nick, then global name, then username.
func resolveDisplayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

// respondEphemeral answers an interaction with a message only the invoking
// user sees. Respond errors are swallowed; there is nobody left to tell.
func respondEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_ = s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondEphemeralFile is respondEphemeral with a calendar file attached.
func respondEphemeralFile(s *discordgo.Session, i *discordgo.Interaction, content, name string, data []byte) {
	_ = s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
			Files: []*discordgo.File{{
				Name:        name,
				ContentType: "text/calendar",
				Reader:      bytes.NewReader(data),
			}},
		},
	})
}
