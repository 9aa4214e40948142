package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	lru "github.com/hashicorp/golang-lru/v2"

	"guildcal/internal/ports/output"
)

const memberCacheSize = 2048

var _ output.IdentityResolver = (*Identity)(nil)

// Identity resolves user references against Discord, caching member names.
// The cache is invalidated on member-update gateway events, not by TTL.
type Identity struct {
	session *discordgo.Session
	members *lru.Cache[string, string]
}

func NewIdentity(session *discordgo.Session) (*Identity, error) {
	members, err := lru.New[string, string](memberCacheSize)
	if err != nil {
		return nil, fmt.Errorf("member cache: %w", err)
	}
	return &Identity{session: session, members: members}, nil
}

func memberKey(guildID, userID string) string { return guildID + ":" + userID }

func (r *Identity) DisplayName(ctx context.Context, guildID, userID string) (string, error) {
	key := memberKey(guildID, userID)
	if name, ok := r.members.Get(key); ok {
		return name, nil
	}
	member, err := r.session.State.Member(guildID, userID)
	if err != nil {
		member, err = r.session.GuildMember(guildID, userID)
		if err != nil {
			return "", fmt.Errorf("fetch member: %w", err)
		}
	}
	name := resolveDisplayName(member)
	if name == "" {
		return "", fmt.Errorf("member %s has no display name", userID)
	}
	r.members.Add(key, name)
	return name, nil
}

// InvalidateMember drops the cached display name for one member.
func (r *Identity) InvalidateMember(guildID, userID string) {
	r.members.Remove(memberKey(guildID, userID))
}
