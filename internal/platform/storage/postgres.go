// Copyright (c) 2026 AtharHuda. All rights reserved.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists snapshots in a hosted snapshots table.
//
// The table is created by the golang-migrate migrations under
// data/migrations. The store carries the same last-write-wins snapshot
// semantics as the sqlite backend; it grants no additional authority over
// who may reserve or complete a juz.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Get returns the payload under key, or [ErrKeyNotFound].
func (store *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := store.pool.QueryRow(ctx, `SELECT payload FROM snapshots WHERE key = $1`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get %q: %w", key, err)
	}
	return payload, nil
}

// Put upserts the payload under key.
func (store *PostgresStore) Put(ctx context.Context, key string, payload []byte) error {
	_, err := store.pool.Exec(ctx,
		`INSERT INTO snapshots(key, payload, updated_at) VALUES($1, $2, now())
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = now()`,
		key, payload,
	)
	if err != nil {
		return fmt.Errorf("postgres: put %q: %w", key, err)
	}
	return nil
}

// Delete removes the payload under key.
func (store *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := store.pool.Exec(ctx, `DELETE FROM snapshots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("postgres: delete %q: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (store *PostgresStore) Close() error {
	store.pool.Close()
	return nil
}
