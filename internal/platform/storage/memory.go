// Copyright (c) 2026 AtharHuda. All rights reserved.

package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process [Store] used by tests and ephemeral runs.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Get returns the payload under key, or [ErrKeyNotFound].
func (store *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	payload, ok := store.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	// Return a copy so callers cannot mutate the stored payload.
	clone := make([]byte, len(payload))
	copy(clone, payload)
	return clone, nil
}

// Put stores payload under key.
func (store *MemoryStore) Put(_ context.Context, key string, payload []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	clone := make([]byte, len(payload))
	copy(clone, payload)
	store.entries[key] = clone
	return nil
}

// Delete removes the payload under key.
func (store *MemoryStore) Delete(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, key)
	return nil
}

// Close is a no-op for the in-memory backend.
func (store *MemoryStore) Close() error { return nil }
