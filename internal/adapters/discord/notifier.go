package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	lru "github.com/hashicorp/golang-lru/v2"

	"guildcal/internal/domain"
	"guildcal/internal/ports/output"
	"guildcal/internal/render"
	pkgdiscord "guildcal/pkg/discord"
)

const dmChannelCacheSize = 1024

var _ output.Notifier = (*Notifier)(nil)

// surfaceSession is the slice of discordgo.Session the notifier uses.
type surfaceSession interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactionRemove(channelID, messageID, emojiID, userID string, options ...discordgo.RequestOption) error
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactions(channelID, messageID, emojiID string, limit int, beforeID, afterID string, options ...discordgo.RequestOption) ([]*discordgo.User, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ surfaceSession = (*discordgo.Session)(nil)

// Notifier implements the notification surface on a Discord session. DM
// channels are cached per user and invalidated when a send through them
// fails, not by TTL.
type Notifier struct {
	session    surfaceSession
	dmChannels *lru.Cache[string, string]
}

func NewNotifier(session *discordgo.Session) (*Notifier, error) {
	return newNotifier(session)
}

func newNotifier(session surfaceSession) (*Notifier, error) {
	dmChannels, err := lru.New[string, string](dmChannelCacheSize)
	if err != nil {
		return nil, fmt.Errorf("DM channel cache: %w", err)
	}
	return &Notifier{session: session, dmChannels: dmChannels}, nil
}

func (n *Notifier) PostSummary(ctx context.Context, channelID string, sum *render.Summary, attachment *output.Attachment) (output.MessageRef, error) {
	send := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{pkgdiscord.BuildSummaryEmbed(sum)},
	}
	if attachment != nil {
		send.Files = []*discordgo.File{{
			Name:        attachment.Name,
			ContentType: "text/calendar",
			Reader:      bytes.NewReader(attachment.Data),
		}}
	}
	msg, err := n.session.ChannelMessageSendComplex(channelID, send)
	if err != nil {
		return output.MessageRef{}, fmt.Errorf("post summary: %w", wrapPermission(err))
	}
	return output.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (n *Notifier) EditSummary(ctx context.Context, ref output.MessageRef, sum *render.Summary) error {
	embeds := []*discordgo.MessageEmbed{pkgdiscord.BuildSummaryEmbed(sum)}
	_, err := n.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:      ref.MessageID,
		Channel: ref.ChannelID,
		Embeds:  &embeds,
	})
	if err != nil {
		return fmt.Errorf("edit summary: %w", wrapPermission(err))
	}
	return nil
}

func (n *Notifier) DeleteMessage(ctx context.Context, ref output.MessageRef) error {
	if err := n.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID); err != nil {
		return fmt.Errorf("delete message: %w", wrapPermission(err))
	}
	return nil
}

func (n *Notifier) AddSignal(ctx context.Context, ref output.MessageRef, symbol string) error {
	if err := n.session.MessageReactionAdd(ref.ChannelID, ref.MessageID, symbol); err != nil {
		return fmt.Errorf("add signal: %w", wrapPermission(err))
	}
	return nil
}

func (n *Notifier) RemoveSignal(ctx context.Context, ref output.MessageRef, symbol, userID string) error {
	if err := n.session.MessageReactionRemove(ref.ChannelID, ref.MessageID, symbol, userID); err != nil {
		return fmt.Errorf("remove signal: %w", wrapPermission(err))
	}
	return nil
}

// UserSignals reads the live reactions on the message and reports the symbols
// the user currently holds.
func (n *Notifier) UserSignals(ctx context.Context, ref output.MessageRef, userID string) ([]string, error) {
	msg, err := n.session.ChannelMessage(ref.ChannelID, ref.MessageID)
	if err != nil {
		return nil, fmt.Errorf("fetch message: %w", wrapPermission(err))
	}
	var held []string
	for _, reaction := range msg.Reactions {
		symbol := reaction.Emoji.APIName()
		users, err := n.session.MessageReactions(ref.ChannelID, ref.MessageID, symbol, 100, "", "")
		if err != nil {
			return nil, fmt.Errorf("fetch reaction users %s: %w", symbol, wrapPermission(err))
		}
		for _, u := range users {
			if u.ID == userID {
				held = append(held, symbol)
				break
			}
		}
	}
	return held, nil
}

func (n *Notifier) NotifyUser(ctx context.Context, userID, content string) error {
	channelID, ok := n.dmChannels.Get(userID)
	if !ok {
		ch, err := n.session.UserChannelCreate(userID)
		if err != nil {
			return fmt.Errorf("open DM channel: %w", err)
		}
		channelID = ch.ID
		n.dmChannels.Add(userID, channelID)
	}
	if _, err := n.session.ChannelMessageSend(channelID, content); err != nil {
		// The cached channel may be gone; next attempt opens a fresh one.
		n.dmChannels.Remove(userID)
		return fmt.Errorf("send DM: %w", err)
	}
	return nil
}

// wrapPermission maps Discord's missing-permission responses onto the domain
// error so the core can degrade gracefully instead of aborting.
func wrapPermission(err error) error {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Message != nil && rest.Message.Code == discordgo.ErrCodeMissingPermissions {
		return domain.ErrPermissionDenied
	}
	return err
}
