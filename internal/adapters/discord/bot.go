package discord

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"guildcal/internal/application"
	"guildcal/internal/config"
	"guildcal/internal/infrastructure/i18n"
	"guildcal/internal/ports/output"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
}

// NewBot creates a Bot and wires ports: output adapters -> application (use cases) -> handler.
func NewBot(
	cfg *config.Config,
	eventRepo output.EventRepository,
	bindingRepo output.BindingRepository,
	prefRepo output.PreferenceRepository,
	exporter output.Exporter,
) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create Discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages

	translator := i18n.NewTranslator(cfg.DefaultLocale)
	vocab, err := application.NewVocabularyProvider(prefRepo)
	if err != nil {
		return nil, err
	}
	timezoneUC, err := application.NewTimezoneService(prefRepo)
	if err != nil {
		return nil, err
	}
	notifier, err := NewNotifier(s)
	if err != nil {
		return nil, err
	}
	identity, err := NewIdentity(s)
	if err != nil {
		return nil, err
	}

	eventUC := application.NewEventService(eventRepo, bindingRepo, vocab, exporter)
	eventUC.OnGuildReset(timezoneUC.InvalidateGuild)
	rsvpUC := application.NewRSVPService(eventRepo, bindingRepo, vocab, prefRepo,
		notifier, identity, translator, cfg.RenderQueueSize)

	handler := NewHandler(eventUC, rsvpUC, timezoneUC, notifier, identity, translator, cfg.DefaultLocale)

	bot := &Bot{
		session: s,
		config:  cfg,
		handler: handler,
	}
	bot.setupHandlers(identity)
	return bot, nil
}

func (b *Bot) setupHandlers(identity *Identity) {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handler.HandleReactionAdd)
	b.session.AddHandler(b.handler.HandleReactionRemove)
	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberUpdate) {
		identity.InvalidateMember(m.GuildID, m.User.ID)
	})
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "event":
			b.handler.HandleEventCommand(s, i)
		case "timezone":
			b.handler.HandleTimezoneCommand(s, i)
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == createEventModalID {
			b.handler.HandleCreateModalSubmit(s, i)
		}
	}
}

// Start runs the bot until interrupted.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range applicationCommands() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			log.Printf("⚠️ Register command %s: %v", cmd.Name, err)
		}
	}

	fmt.Println("🤖 Bot online! Press CTRL+C to quit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	return nil
}
