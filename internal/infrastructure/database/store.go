package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"guildcal/internal/domain"
	"guildcal/internal/ports/output"
)

var _ output.KV = (*Store)(nil)

// Store implements the scoped JSON key-value collaborator on PostgreSQL.
// Every document lives in one row of the store table, keyed by (scope, key).
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, scope, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM store WHERE scope = $1 AND key = $2`,
		scope, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store get: %w", err)
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, scope, key string, value []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO store (scope, key, value) VALUES ($1, $2, $3)
		 ON CONFLICT (scope, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		scope, key, value,
	)
	if err != nil {
		return fmt.Errorf("store put: %w", err)
	}
	return nil
}

// Update runs mutate inside a transaction with the row locked. mutate sees
// nil for an absent key; returning nil deletes the key.
func (s *Store) Update(ctx context.Context, scope, key string, mutate func(current []byte) ([]byte, error)) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store update begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var current []byte
	err = tx.QueryRow(ctx,
		`SELECT value FROM store WHERE scope = $1 AND key = $2 FOR UPDATE`,
		scope, key,
	).Scan(&current)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("store update read: %w", err)
	}

	next, err := mutate(current)
	if err != nil {
		return err
	}
	if next == nil {
		if _, err := tx.Exec(ctx, `DELETE FROM store WHERE scope = $1 AND key = $2`, scope, key); err != nil {
			return fmt.Errorf("store update delete: %w", err)
		}
	} else {
		_, err = tx.Exec(ctx,
			`INSERT INTO store (scope, key, value) VALUES ($1, $2, $3)
			 ON CONFLICT (scope, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			scope, key, next,
		)
		if err != nil {
			return fmt.Errorf("store update write: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) Delete(ctx context.Context, scope, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM store WHERE scope = $1 AND key = $2`, scope, key); err != nil {
		return fmt.Errorf("store delete: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, scope, prefix string) (map[string][]byte, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key, value FROM store WHERE scope = $1 AND key LIKE $2 || '%'`,
		scope, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("store list: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("store list scan: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store list rows: %w", err)
	}
	return out, nil
}

func (s *Store) DeleteScope(ctx context.Context, scope string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM store WHERE scope = $1`, scope); err != nil {
		return fmt.Errorf("store delete scope: %w", err)
	}
	return nil
}
