package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"guildcal/internal/render"
)

const (
	embedColor  = 0x5865F2
	embedFooter = "React to RSVP"
)

var statusTitle = cases.Title(language.English)

// BuildSummaryEmbed projects a rendered summary onto a Discord embed: one
// field with the per-zone time block, one field per status group.
func BuildSummaryEmbed(sum *render.Summary) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "🕑 When", Value: formatTimeRows(sum.TimeRows)},
	}
	for _, g := range sum.Groups {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s (%d)", g.Symbol, statusTitle.String(g.Status), g.Count()),
			Value:  formatGroup(g),
			Inline: true,
		})
	}
	return &discordgo.MessageEmbed{
		Title:  "📅 " + sum.Title,
		Color:  embedColor,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: embedFooter},
	}
}

func formatTimeRows(rows []render.TimeRow) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("**%s**: %s → %s", row.Zone, row.Start, row.End))
	}
	return b.String()
}

func formatGroup(g render.Group) string {
	if len(g.Names) == 0 {
		return render.EmptyGroup
	}
	lines := make([]string, len(g.Names))
	for i, name := range g.Names {
		lines[i] = "- " + name
	}
	return strings.Join(lines, "\n")
}
