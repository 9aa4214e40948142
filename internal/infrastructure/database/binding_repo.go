package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"guildcal/internal/domain"
	"guildcal/internal/domain/entities"
	"guildcal/internal/ports/output"
)

var _ output.BindingRepository = (*BindingRepository)(nil)

// BindingRepository stores display bindings twice: keyed by message for the
// reaction path and keyed by event for deletion.
type BindingRepository struct {
	kv output.KV
}

func NewBindingRepository(kv output.KV) *BindingRepository {
	return &BindingRepository{kv: kv}
}

func (r *BindingRepository) Bind(ctx context.Context, binding *entities.DisplayBinding) error {
	doc, err := json.Marshal(binding)
	if err != nil {
		return fmt.Errorf("marshal binding: %w", err)
	}
	scope := guildScope(binding.GuildID)
	if err := r.kv.Put(ctx, scope, bindingKey(binding.ChannelID, binding.MessageID), doc); err != nil {
		return fmt.Errorf("bind message: %w", err)
	}
	if err := r.kv.Put(ctx, scope, eventBindingKey(binding.EventID), doc); err != nil {
		return fmt.Errorf("bind event index: %w", err)
	}
	return nil
}

func (r *BindingRepository) FindByMessage(ctx context.Context, guildID, channelID, messageID string) (*entities.DisplayBinding, error) {
	return r.get(ctx, guildID, bindingKey(channelID, messageID))
}

func (r *BindingRepository) FindByEventID(ctx context.Context, guildID, eventID string) (*entities.DisplayBinding, error) {
	return r.get(ctx, guildID, eventBindingKey(eventID))
}

func (r *BindingRepository) get(ctx context.Context, guildID, key string) (*entities.DisplayBinding, error) {
	doc, err := r.kv.Get(ctx, guildScope(guildID), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBindingNotFound
		}
		return nil, fmt.Errorf("get binding: %w", err)
	}
	var binding entities.DisplayBinding
	if err := json.Unmarshal(doc, &binding); err != nil {
		return nil, fmt.Errorf("unmarshal binding: %w", err)
	}
	return &binding, nil
}

func (r *BindingRepository) Release(ctx context.Context, guildID, channelID, messageID string) error {
	binding, err := r.FindByMessage(ctx, guildID, channelID, messageID)
	if err != nil {
		return err
	}
	scope := guildScope(guildID)
	if err := r.kv.Delete(ctx, scope, bindingKey(channelID, messageID)); err != nil {
		return fmt.Errorf("release binding: %w", err)
	}
	if err := r.kv.Delete(ctx, scope, eventBindingKey(binding.EventID)); err != nil {
		return fmt.Errorf("release event index: %w", err)
	}
	return nil
}
