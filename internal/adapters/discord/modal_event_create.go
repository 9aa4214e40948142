package discord

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"guildcal/internal/domain"
	"guildcal/internal/ports/output"
	"guildcal/internal/render"
	pkgdiscord "guildcal/pkg/discord"
)

const createEventModalID = "create_event_modal"

const (
	placeholderName = "Ex: Standup, Raid night, Board games..."
	placeholderDate = "Ex: 2024-01-10 (year-month-day)"
	placeholderTime = "Ex: 09:00"
	placeholderEnd  = "Ex: 10:00 (blank = one hour)"
	placeholderZone = "Ex: Europe/Brussels (blank = your timezone)"
)

func (h *Handler) openCreateEventModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: createEventModalID,
			Title:    "Create an event",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "name", Label: "Name", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderName},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "date", Label: "Date", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderDate},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "time", Label: "Start time", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderTime},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "end", Label: "End time", Style: discordgo.TextInputShort, Required: false, Placeholder: placeholderEnd},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "timezone", Label: "Timezone", Style: discordgo.TextInputShort, Required: false, Placeholder: placeholderZone},
				}},
			},
		},
	})
}

func extractModalValue(data discordgo.ModalSubmitInteractionData, index int) string {
	if index >= len(data.Components) {
		return ""
	}
	row, ok := data.Components[index].(*discordgo.ActionsRow)
	if !ok || len(row.Components) == 0 {
		return ""
	}
	input, ok := row.Components[0].(*discordgo.TextInput)
	if !ok {
		return ""
	}
	return input.Value
}

// HandleCreateModalSubmit validates the modal input, creates the event and
// posts its summary message: embed + calendar attachment, seeded with one
// reaction per vocabulary symbol, bound for the reaction handlers.
func (h *Handler) HandleCreateModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	name := extractModalValue(data, 0)
	dateStr := extractModalValue(data, 1)
	timeStr := extractModalValue(data, 2)
	endStr := extractModalValue(data, 3)
	zone := extractModalValue(data, 4)

	ctx := context.Background()
	locale := string(i.Locale)
	guildID := i.GuildID
	organizerID := i.Member.User.ID

	if zone == "" {
		zone = h.timezoneUseCase.ResolveOrDefault(ctx, guildID, organizerID)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translate(locale, "errors.invalid_timezone", nil))
		return
	}

	start, end, err := pkgdiscord.ParseEventTimes(dateStr, timeStr, endStr, loc)
	if err != nil {
		h.respondValidation(s, i, locale, err)
		return
	}

	event, attachment, err := h.eventUseCase.CreateEvent(ctx, guildID, organizerID, name, start, end, zone)
	if err != nil {
		h.respondValidation(s, i, locale, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(locale, "event.created", map[string]any{"Name": event.Name}))

	vocab, err := h.eventUseCase.Vocabulary(ctx, guildID)
	if err != nil {
		log.Printf("❌ Load vocabulary (guild=%s): %v", guildID, err)
		return
	}
	zones, err := h.timezoneUseCase.GuildTimezones(ctx, guildID)
	if err != nil {
		log.Printf("⚠️ Load guild timezones (guild=%s): %v", guildID, err)
		zones = nil
	}
	sum, err := render.Render(event, vocab, zones, func(userID string) (string, error) {
		return h.identity.DisplayName(ctx, guildID, userID)
	})
	if err != nil {
		log.Printf("❌ Render new event summary (event=%s): %v", event.ID, err)
		return
	}

	var file *output.Attachment
	if attachment != nil {
		file = &output.Attachment{Name: event.Name + ".ics", Data: attachment}
	}
	ref, err := h.notifier.PostSummary(ctx, i.ChannelID, sum, file)
	if err != nil {
		log.Printf("❌ Post event summary (event=%s): %v", event.ID, err)
		return
	}
	if err := h.eventUseCase.BindMessage(ctx, guildID, event.ID, ref.ChannelID, ref.MessageID); err != nil {
		log.Printf("❌ Bind summary message (event=%s): %v", event.ID, err)
	}
	for _, symbol := range vocab.Symbols() {
		if err := h.notifier.AddSignal(ctx, ref, symbol); err != nil {
			log.Printf("⚠️ Seed reaction %s (event=%s): %v", symbol, event.ID, err)
		}
	}
}

func (h *Handler) respondValidation(s *discordgo.Session, i *discordgo.InteractionCreate, locale string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		key := "errors.generic"
		switch verr.Field {
		case "name":
			key = "errors.name_empty"
		case "date":
			key = "errors.bad_date"
		case "time":
			key = "errors.bad_time"
		case "end":
			key = "errors.bad_end"
		}
		respondEphemeral(s, i.Interaction, h.translate(locale, key, nil))
	case errors.Is(err, domain.ErrInvalidTimezone):
		respondEphemeral(s, i.Interaction, h.translate(locale, "errors.invalid_timezone", nil))
	default:
		log.Printf("❌ Create event: %v", err)
		respondEphemeral(s, i.Interaction, h.translate(locale, "event.create_failed", nil))
	}
}
