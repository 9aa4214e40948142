package database

import (
	"context"
	"strings"
	"sync"

	"guildcal/internal/domain"
	"guildcal/internal/ports/output"
)

var _ output.KV = (*memKV)(nil)

// memKV is an in-memory stand-in for the Postgres store. Update deliberately
// releases the map lock while the mutate callback runs, mirroring the fact
// that concurrent roster writers are serialized by the repository's keyed
// mutex, not by the store.
type memKV struct {
	mu   sync.Mutex
	data map[string]map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]map[string][]byte)}
}

func (s *memKV) Get(ctx context.Context, scope, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[scope][key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *memKV) Put(ctx context.Context, scope, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[scope] == nil {
		s.data[scope] = make(map[string][]byte)
	}
	s.data[scope][key] = append([]byte(nil), value...)
	return nil
}

func (s *memKV) Update(ctx context.Context, scope, key string, mutate func(current []byte) ([]byte, error)) error {
	s.mu.Lock()
	current, ok := s.data[scope][key]
	if ok {
		current = append([]byte(nil), current...)
	}
	s.mu.Unlock()

	next, err := mutate(current)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if next == nil {
		delete(s.data[scope], key)
		return nil
	}
	if s.data[scope] == nil {
		s.data[scope] = make(map[string][]byte)
	}
	s.data[scope][key] = next
	return nil
}

func (s *memKV) Delete(ctx context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[scope], key)
	return nil
}

func (s *memKV) List(ctx context.Context, scope, prefix string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]byte)
	for key, value := range s.data[scope] {
		if strings.HasPrefix(key, prefix) {
			out[key] = append([]byte(nil), value...)
		}
	}
	return out, nil
}

func (s *memKV) DeleteScope(ctx context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, scope)
	return nil
}
