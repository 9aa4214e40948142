package output

import "context"

// KV is the persistence collaborator: a durable JSON store keyed by
// (scope, key). Scopes partition data per guild ("guild:<id>") and per user
// ("user:<id>"). Get returns domain.ErrNotFound for absent keys; Update is a
// transactional read-modify-write where the callback receives nil for absent
// keys and its return value replaces the stored document.
type KV interface {
	Get(ctx context.Context, scope, key string) ([]byte, error)
	Put(ctx context.Context, scope, key string, value []byte) error
	Update(ctx context.Context, scope, key string, mutate func(current []byte) ([]byte, error)) error
	Delete(ctx context.Context, scope, key string) error
	List(ctx context.Context, scope, prefix string) (map[string][]byte, error)
	DeleteScope(ctx context.Context, scope string) error
}
