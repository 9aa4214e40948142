package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"guildcal/internal/domain"
	"guildcal/internal/ports/output"
)

var _ output.PreferenceRepository = (*PreferenceRepository)(nil)

// PreferenceRepository stores timezone preferences and the guild status
// vocabulary in the scoped KV collaborator. Absent keys read as zero values.
type PreferenceRepository struct {
	kv output.KV
}

func NewPreferenceRepository(kv output.KV) *PreferenceRepository {
	return &PreferenceRepository{kv: kv}
}

type timezoneDoc struct {
	Zone string `json:"zone"`
}

type guildZonesDoc struct {
	Zones []string `json:"zones"`
}

func (r *PreferenceRepository) UserTimezone(ctx context.Context, userID string) (string, error) {
	raw, err := r.kv.Get(ctx, userScope(userID), userTimezoneKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get user timezone: %w", err)
	}
	var doc timezoneDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("unmarshal user timezone: %w", err)
	}
	return doc.Zone, nil
}

func (r *PreferenceRepository) SetUserTimezone(ctx context.Context, userID, zone string) error {
	raw, err := json.Marshal(timezoneDoc{Zone: zone})
	if err != nil {
		return fmt.Errorf("marshal user timezone: %w", err)
	}
	if err := r.kv.Put(ctx, userScope(userID), userTimezoneKey, raw); err != nil {
		return fmt.Errorf("set user timezone: %w", err)
	}
	return nil
}

func (r *PreferenceRepository) RemoveUserTimezone(ctx context.Context, userID string) error {
	if err := r.kv.Delete(ctx, userScope(userID), userTimezoneKey); err != nil {
		return fmt.Errorf("remove user timezone: %w", err)
	}
	return nil
}

func (r *PreferenceRepository) GuildTimezones(ctx context.Context, guildID string) ([]string, error) {
	raw, err := r.kv.Get(ctx, guildScope(guildID), timezonesKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get guild timezones: %w", err)
	}
	var doc guildZonesDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal guild timezones: %w", err)
	}
	return doc.Zones, nil
}

func (r *PreferenceRepository) SetGuildTimezones(ctx context.Context, guildID string, zones []string) error {
	raw, err := json.Marshal(guildZonesDoc{Zones: zones})
	if err != nil {
		return fmt.Errorf("marshal guild timezones: %w", err)
	}
	if err := r.kv.Put(ctx, guildScope(guildID), timezonesKey, raw); err != nil {
		return fmt.Errorf("set guild timezones: %w", err)
	}
	return nil
}

func (r *PreferenceRepository) GuildVocabulary(ctx context.Context, guildID string) (domain.Vocabulary, error) {
	raw, err := r.kv.Get(ctx, guildScope(guildID), vocabularyKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get guild vocabulary: %w", err)
	}
	var vocab domain.Vocabulary
	if err := json.Unmarshal(raw, &vocab); err != nil {
		return nil, fmt.Errorf("unmarshal guild vocabulary: %w", err)
	}
	return vocab, nil
}

func (r *PreferenceRepository) SetGuildVocabulary(ctx context.Context, guildID string, vocab domain.Vocabulary) error {
	raw, err := json.Marshal(vocab)
	if err != nil {
		return fmt.Errorf("marshal guild vocabulary: %w", err)
	}
	if err := r.kv.Put(ctx, guildScope(guildID), vocabularyKey, raw); err != nil {
		return fmt.Errorf("set guild vocabulary: %w", err)
	}
	return nil
}
