package application

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"guildcal/internal/domain"
	"guildcal/internal/ports/output"
)

const vocabularyCacheSize = 256

// VocabularyProvider resolves the status vocabulary of a guild, falling back
// to the built-in default when the guild has not configured one. Lookups are
// cached; the cache is invalidated only by Set and Invalidate, never by TTL.
type VocabularyProvider struct {
	prefs output.PreferenceRepository
	cache *lru.Cache[string, domain.Vocabulary]
}

func NewVocabularyProvider(prefs output.PreferenceRepository) (*VocabularyProvider, error) {
	cache, err := lru.New[string, domain.Vocabulary](vocabularyCacheSize)
	if err != nil {
		return nil, fmt.Errorf("vocabulary cache: %w", err)
	}
	return &VocabularyProvider{prefs: prefs, cache: cache}, nil
}

func (p *VocabularyProvider) Get(ctx context.Context, guildID string) (domain.Vocabulary, error) {
	if vocab, ok := p.cache.Get(guildID); ok {
		return vocab, nil
	}
	vocab, err := p.prefs.GuildVocabulary(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("load guild vocabulary: %w", err)
	}
	if len(vocab) == 0 {
		vocab = domain.DefaultVocabulary()
	}
	p.cache.Add(guildID, vocab)
	return vocab, nil
}

func (p *VocabularyProvider) Set(ctx context.Context, guildID string, vocab domain.Vocabulary) error {
	if err := p.prefs.SetGuildVocabulary(ctx, guildID, vocab); err != nil {
		return fmt.Errorf("store guild vocabulary: %w", err)
	}
	p.cache.Remove(guildID)
	return nil
}

func (p *VocabularyProvider) Invalidate(guildID string) {
	p.cache.Remove(guildID)
}
