package application

import (
	"context"
	"fmt"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"guildcal/internal/domain"
	"guildcal/internal/ports/output"
)

const (
	userZoneCacheSize  = 1024
	guildZoneCacheSize = 256
)

// TimezoneService resolves and mutates timezone preferences. Lookups go
// through process-wide caches populated lazily per key; correctness relies on
// the mutators invalidating their key, not on expiry.
type TimezoneService struct {
	prefs  output.PreferenceRepository
	users  *lru.Cache[string, string]   // "" caches a known-unset preference
	guilds *lru.Cache[string, []string] // insertion-order display zone set
}

func NewTimezoneService(prefs output.PreferenceRepository) (*TimezoneService, error) {
	users, err := lru.New[string, string](userZoneCacheSize)
	if err != nil {
		return nil, fmt.Errorf("user timezone cache: %w", err)
	}
	guilds, err := lru.New[string, []string](guildZoneCacheSize)
	if err != nil {
		return nil, fmt.Errorf("guild timezone cache: %w", err)
	}
	return &TimezoneService{prefs: prefs, users: users, guilds: guilds}, nil
}

// Resolve returns the user's own timezone preference, ok=false when unset.
func (s *TimezoneService) Resolve(ctx context.Context, userID string) (string, bool) {
	if zone, ok := s.users.Get(userID); ok {
		return zone, zone != ""
	}
	zone, err := s.prefs.UserTimezone(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Load timezone preference (user=%s): %v", userID, err)
		return "", false
	}
	s.users.Add(userID, zone)
	return zone, zone != ""
}

// ResolveOrDefault falls back from the user preference to the guild's first
// display zone, then to UTC.
func (s *TimezoneService) ResolveOrDefault(ctx context.Context, guildID, userID string) string {
	if zone, ok := s.Resolve(ctx, userID); ok {
		return zone
	}
	if zones, err := s.GuildTimezones(ctx, guildID); err == nil && len(zones) > 0 {
		return zones[0]
	}
	return "UTC"
}

func (s *TimezoneService) SetUserTimezone(ctx context.Context, userID, zone string) error {
	if _, err := time.LoadLocation(zone); err != nil || zone == "" {
		return domain.ErrInvalidTimezone
	}
	if err := s.prefs.SetUserTimezone(ctx, userID, zone); err != nil {
		return fmt.Errorf("store timezone preference: %w", err)
	}
	s.users.Remove(userID)
	return nil
}

func (s *TimezoneService) RemoveUserTimezone(ctx context.Context, userID string) error {
	if err := s.prefs.RemoveUserTimezone(ctx, userID); err != nil {
		return fmt.Errorf("remove timezone preference: %w", err)
	}
	s.users.Remove(userID)
	return nil
}

func (s *TimezoneService) GuildTimezones(ctx context.Context, guildID string) ([]string, error) {
	if zones, ok := s.guilds.Get(guildID); ok {
		return zones, nil
	}
	zones, err := s.prefs.GuildTimezones(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("load guild timezones: %w", err)
	}
	s.guilds.Add(guildID, zones)
	return zones, nil
}

// AddGuildTimezone appends zone to the guild's display set, keeping insertion
// order. Adding an already present zone is a no-op.
func (s *TimezoneService) AddGuildTimezone(ctx context.Context, guildID, zone string) error {
	if _, err := time.LoadLocation(zone); err != nil || zone == "" {
		return domain.ErrInvalidTimezone
	}
	zones, err := s.GuildTimezones(ctx, guildID)
	if err != nil {
		return err
	}
	for _, z := range zones {
		if z == zone {
			return nil
		}
	}
	if err := s.prefs.SetGuildTimezones(ctx, guildID, append(zones, zone)); err != nil {
		return fmt.Errorf("store guild timezones: %w", err)
	}
	s.guilds.Remove(guildID)
	return nil
}

func (s *TimezoneService) RemoveGuildTimezone(ctx context.Context, guildID, zone string) error {
	zones, err := s.GuildTimezones(ctx, guildID)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(zones))
	for _, z := range zones {
		if z != zone {
			kept = append(kept, z)
		}
	}
	if len(kept) == len(zones) {
		return domain.ErrNotFound
	}
	if err := s.prefs.SetGuildTimezones(ctx, guildID, kept); err != nil {
		return fmt.Errorf("store guild timezones: %w", err)
	}
	s.guilds.Remove(guildID)
	return nil
}

// InvalidateGuild drops the guild's cached display zones. Wired as the guild
// reset hook.
func (s *TimezoneService) InvalidateGuild(guildID string) {
	s.guilds.Remove(guildID)
}
