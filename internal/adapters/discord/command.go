package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Commands registered on startup.
func applicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "event",
			Description: "Manage calendar events",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a new event",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete an event",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "Event id", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List upcoming events",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "export",
					Description: "Download this server's calendar as an .ics file",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Clear all calendar data for this server",
				},
			},
		},
		{
			Name:        "timezone",
			Description: "Timezone preferences",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set your personal timezone",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "zone", Description: "IANA zone, e.g. Europe/Brussels", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove your personal timezone",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "server-add",
					Description: "Add a display timezone for this server",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "zone", Description: "IANA zone, e.g. Europe/Brussels", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "server-remove",
					Description: "Remove a server display timezone",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "zone", Description: "IANA zone", Required: true},
					},
				},
			},
		},
	}
}

// subcommand returns the invoked subcommand name and its string options.
func subcommand(data discordgo.ApplicationCommandInteractionData) (string, map[string]string) {
	if len(data.Options) == 0 {
		return "", nil
	}
	sub := data.Options[0]
	opts := make(map[string]string, len(sub.Options))
	for _, o := range sub.Options {
		if o.Type == discordgo.ApplicationCommandOptionString {
			opts[o.Name] = o.StringValue()
		}
	}
	return sub.Name, opts
}
