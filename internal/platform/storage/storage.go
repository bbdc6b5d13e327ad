// Copyright (c) 2026 AtharHuda. All rights reserved.

/*
Package storage provides the durable key-value snapshot store.

Every domain collection (khatma list, completion log, adhkar progress,
reminder settings) is persisted as one JSON payload under one fixed key —
the same layout the PWA used with browser local storage. The store has no
per-entity schema: domains serialize full snapshots and overwrite them on
every mutation, so the last writer always wins.

Backends:

  - memory: ephemeral map, used by tests and STORAGE_DRIVER=memory.
  - sqlite: a single local database file (the default).
  - postgres: a hosted snapshot table for deployments that want durability
    beyond one machine. It adds persistence only, never authority.
*/
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by [Store.Get] when no payload exists under the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is the durable key-value contract shared by all backends.
type Store interface {

	// Get returns the payload stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores payload under key, replacing any previous value.
	Put(ctx context.Context, key string, payload []byte) error

	// Delete removes the payload under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
