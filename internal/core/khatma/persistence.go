// Copyright (c) 2026 AtharHuda. All rights reserved.

package khatma

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/atharhuda/atharhuda/internal/platform/storage"
)

// Storage keys. The layout is versioned JSON, one key per collection —
// carried over unchanged from the PWA's local-storage schema so existing
// exports stay importable.
const (
	KeyKhatmas       = "khatma-list-v1"
	KeyCompletionLog = "khatma-completion-log-v1"
)

// Persister snapshots the khatma collection and completion log to the
// durable key-value store.
//
// # Failure Policy
//
// Loading never fails upward: malformed or missing payloads degrade to the
// built-in seed dataset, tagged on the returned [LoadResult] so tests and
// operators can tell a real load from a fallback. Saving swallows storage
// errors after logging them — the in-memory store stays authoritative for
// the session and the application keeps functioning.
type Persister struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPersister constructs a snapshot adapter over the given store.
func NewPersister(store storage.Store, logger *slog.Logger) *Persister {
	return &Persister{store: store, logger: logger}
}

// LoadResult is the explicit outcome of a snapshot load.
//
// When Fallback is true, Khatmas holds the seed dataset, Records is empty,
// and Reason says why the persisted state was unusable.
type LoadResult struct {
	Khatmas  []*Khatma
	Records  []CompletionRecord
	Fallback bool
	Reason   string
}

// Load reads both collections from the store.
//
// Date fields revive through the RFC 3339 encoding used at save time. A
// missing completion log alone is not a fallback — a fresh install has
// khatmas before it has completions.
func (p *Persister) Load(ctx context.Context) LoadResult {
	fallback := func(reason string) LoadResult {
		p.logger.Warn("khatma_snapshot_fallback", slog.String("reason", reason))
		return LoadResult{
			Khatmas:  Seed(time.Now()),
			Records:  []CompletionRecord{},
			Fallback: true,
			Reason:   reason,
		}
	}

	rawKhatmas, err := p.store.Get(ctx, KeyKhatmas)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return fallback("empty storage")
	}
	if err != nil {
		return fallback("storage read failed: " + err.Error())
	}

	var khatmas []*Khatma
	if err := json.Unmarshal(rawKhatmas, &khatmas); err != nil {
		return fallback("malformed khatma list: " + err.Error())
	}
	if len(khatmas) == 0 {
		return fallback("empty khatma list")
	}

	records := []CompletionRecord{}
	rawLog, err := p.store.Get(ctx, KeyCompletionLog)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		// No completions yet.
	case err != nil:
		return fallback("storage read failed: " + err.Error())
	default:
		if err := json.Unmarshal(rawLog, &records); err != nil {
			return fallback("malformed completion log: " + err.Error())
		}
	}

	return LoadResult{Khatmas: khatmas, Records: records}
}

// Save writes both collections under their fixed keys.
//
// Write failures (quota, closed store) are logged and swallowed.
func (p *Persister) Save(ctx context.Context, khatmas []*Khatma, records []CompletionRecord) {
	rawKhatmas, err := json.Marshal(khatmas)
	if err != nil {
		p.logger.Error("khatma_snapshot_encode_failed", slog.Any("error", err))
		return
	}
	rawLog, err := json.Marshal(records)
	if err != nil {
		p.logger.Error("khatma_snapshot_encode_failed", slog.Any("error", err))
		return
	}

	if err := p.store.Put(ctx, KeyKhatmas, rawKhatmas); err != nil {
		p.logger.Warn("khatma_snapshot_write_failed",
			slog.String("key", KeyKhatmas),
			slog.Any("error", err),
		)
	}
	if err := p.store.Put(ctx, KeyCompletionLog, rawLog); err != nil {
		p.logger.Warn("khatma_snapshot_write_failed",
			slog.String("key", KeyCompletionLog),
			slog.Any("error", err),
		)
	}
}
