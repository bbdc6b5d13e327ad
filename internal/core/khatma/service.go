// Copyright (c) 2026 AtharHuda. All rights reserved.

package khatma

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/atharhuda/atharhuda/internal/core/juz"
	"github.com/atharhuda/atharhuda/pkg/searchtext"
	"github.com/atharhuda/atharhuda/pkg/uuidv7"
)

// # Service Layer

// Service is the authoritative in-memory store for the khatma collection
// and the completion log.
//
// All state lives behind one RWMutex; every mutation recomputes the derived
// fields, snapshots to the [Persister], and notifies subscribers. Reads hand
// out deep copies, never internal pointers.
type Service struct {
	mu        sync.RWMutex
	khatmas   []*Khatma // newest first
	records   []CompletionRecord
	persister *Persister
	logger    *slog.Logger
	now       func() time.Time

	subMu sync.Mutex
	subs  []chan struct{}
}

/*
NewService loads the persisted state and reconciles the completion log.

Description: The constructor is the recovery path. It loads both
collections via the [Persister] (degrading to seed data when the snapshot
is unusable), refreshes every khatma's derived fields, and back-fills any
completion record that a crash between the completion write and the log
write may have lost. The reconciled state is written back immediately.

Parameters:
  - ctx: context.Context
  - persister: *Persister (Snapshot adapter over the key-value store)
  - logger: *slog.Logger

Returns:
  - *Service: The ready-to-serve store
*/
func NewService(ctx context.Context, persister *Persister, logger *slog.Logger) *Service {
	service := &Service{
		persister: persister,
		logger:    logger,
		now:       time.Now,
	}

	result := persister.Load(ctx)
	service.khatmas = result.Khatmas
	service.records = result.Records

	repaired := service.reconcileLocked()

	logger.Info("khatma_store_loaded",
		slog.Int("khatmas", len(service.khatmas)),
		slog.Int("completion_records", len(service.records)),
		slog.Bool("fallback", result.Fallback),
		slog.Int("reconciled_records", repaired),
	)

	// Write back so a fallback or repair survives the next restart.
	persister.Save(ctx, service.khatmas, service.records)

	return service
}

// reconcileLocked refreshes derived fields and back-fills missing completion
// records. Returns the number of records added.
//
// The record ID is derived from (khatmaId, completedAt), so repairing the
// same gap twice can never duplicate an entry.
func (service *Service) reconcileLocked() int {
	known := make(map[string]struct{}, len(service.records))
	for _, record := range service.records {
		known[record.ID] = struct{}{}
	}

	added := 0
	for _, khatma := range service.khatmas {
		khatma.recomputeDerived(service.now())

		if khatma.Status != StatusCompleted || khatma.CompletedAt == nil {
			continue
		}
		if _, ok := known[completionRecordID(khatma.ID, *khatma.CompletedAt)]; ok {
			continue
		}

		record := khatma.completionRecord()
		service.records = append(service.records, record)
		known[record.ID] = struct{}{}
		added++
	}

	return added
}

// # Mutations

// CreateInput carries the caller-supplied fields for a new khatma. The
// service trusts them as-is; the HTTP boundary owns validation.
type CreateInput struct {
	Title             string
	CreatedBy         string
	DeceasedName      string
	DeceasedDeathDate *time.Time
	Description       string
}

/*
Create registers a new khatma with 30 available parts.

Description: Assigns a UUIDv7 identity, stamps the creation time, and
prepends the khatma so listings read newest first. The snapshot is written
before returning.

Parameters:
  - ctx: context.Context
  - input: CreateInput

Returns:
  - Khatma: A copy of the stored khatma, including its generated ID
*/
func (service *Service) Create(ctx context.Context, input CreateInput) Khatma {
	now := service.now()

	khatma := &Khatma{
		ID:                uuidv7.Must(),
		Title:             input.Title,
		CreatedBy:         input.CreatedBy,
		DeceasedName:      input.DeceasedName,
		DeceasedDeathDate: input.DeceasedDeathDate,
		Description:       input.Description,
		CreatedAt:         now,
		Status:            StatusActive,
		Parts:             newParts(),
	}
	khatma.recomputeDerived(now)

	service.mu.Lock()
	service.khatmas = append([]*Khatma{khatma}, service.khatmas...)
	service.persister.Save(ctx, service.khatmas, service.records)
	out := khatma.clone()
	service.mu.Unlock()

	service.logger.Info("khatma_created",
		slog.String("khatma_id", out.ID),
		slog.String("created_by", out.CreatedBy),
	)
	service.notify()

	return out
}

/*
UpdatePartStatus transitions one part of one khatma to the given status.

Description: This is the single mutation path for the part lifecycle.
Transitions are unconditional — a completed part may be re-reserved or
released; the previous holder's name is simply overwritten. On completion
the reader name falls back to the previous reserver and then to the
anonymous placeholder, and the surahs actually read are stored when the
caller supplies them (otherwise the field stays unset). When the
transition completes the whole khatma, a log record is appended exactly
once.

Unknown khatma or juz numbers are a silent no-op: the method reports false
and changes nothing, mirroring how a stale client tapping a deleted card
should be ignored rather than crash the board.

Parameters:
  - ctx: context.Context
  - khatmaID: string
  - juzNumber: int (1–30)
  - status: PartStatus (Target lifecycle state)
  - userName: string (Acting participant; may be empty)
  - readSurahs: []string (Surahs read on completion; nil leaves the field unset)

Returns:
  - bool: Whether the khatma and part were found and updated
*/
func (service *Service) UpdatePartStatus(ctx context.Context, khatmaID string, juzNumber int, status PartStatus, userName string, readSurahs []string) bool {
	now := service.now()

	service.mu.Lock()

	khatma := service.findLocked(khatmaID)
	if khatma == nil || !juz.Valid(juzNumber) {
		service.mu.Unlock()
		return false
	}

	part := &khatma.Parts[juzNumber-1]
	previousReserver := part.ReservedBy

	part.Status = status
	part.ReservedBy = ""
	part.CompletedBy = ""
	part.ReadSurahs = nil
	at := now
	part.UpdatedAt = &at

	switch status {
	case PartReserved:
		part.ReservedBy = userName

	case PartCompleted:
		reader := userName
		if reader == "" {
			reader = previousReserver
		}
		if reader == "" {
			reader = UnknownReader
		}
		part.CompletedBy = reader
		if len(readSurahs) > 0 {
			part.ReadSurahs = append([]string(nil), readSurahs...)
		}

	case PartAvailable:
		// Fully cleared above.
	}

	justCompleted := khatma.recomputeDerived(now)
	if justCompleted {
		service.appendRecordLocked(khatma.completionRecord())
	}

	service.persister.Save(ctx, service.khatmas, service.records)
	service.mu.Unlock()

	service.logger.Info("khatma_part_updated",
		slog.String("khatma_id", khatmaID),
		slog.Int("juz", juzNumber),
		slog.String("status", string(status)),
		slog.Bool("khatma_completed", justCompleted),
	)
	service.notify()

	return true
}

// appendRecordLocked appends the record unless its ID is already logged.
func (service *Service) appendRecordLocked(record CompletionRecord) {
	for _, existing := range service.records {
		if existing.ID == record.ID {
			return
		}
	}
	service.records = append(service.records, record)
}

// findLocked returns the stored khatma or nil. Callers hold the lock.
func (service *Service) findLocked(id string) *Khatma {
	for _, khatma := range service.khatmas {
		if khatma.ID == id {
			return khatma
		}
	}
	return nil
}

// # Read Views

/*
List returns all khatmas, newest first.

Returns:
  - []Khatma: Deep copies, safe for the caller to hold
*/
func (service *Service) List(_ context.Context) []Khatma {
	service.mu.RLock()
	defer service.mu.RUnlock()

	out := make([]Khatma, 0, len(service.khatmas))
	for _, khatma := range service.khatmas {
		out = append(out, khatma.clone())
	}
	return out
}

/*
Get returns one khatma by ID.

Returns:
  - Khatma: A deep copy of the match
  - bool: Whether the ID was found
*/
func (service *Service) Get(_ context.Context, id string) (Khatma, bool) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	khatma := service.findLocked(id)
	if khatma == nil {
		return Khatma{}, false
	}
	return khatma.clone(), true
}

/*
Participants returns the distinct reserver/completer names of one khatma,
in first-seen part order.

Returns:
  - []string: Participant names
  - bool: Whether the khatma was found
*/
func (service *Service) Participants(_ context.Context, id string) ([]string, bool) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	khatma := service.findLocked(id)
	if khatma == nil {
		return nil, false
	}
	return khatma.participants(), true
}

/*
Search filters khatmas by a folded substring match.

Description: The query and the candidate fields (title, deceased name,
creator) are both normalized with the Arabic-aware folding in
[searchtext.Fold], so "عبدالله" matches "عَبْدُالله" and hamza variants
match each other. An empty query returns the full listing.

Parameters:
  - ctx: context.Context
  - query: string

Returns:
  - []Khatma: Matching khatmas, newest first
*/
func (service *Service) Search(ctx context.Context, query string) []Khatma {
	all := service.List(ctx)
	if searchtext.Fold(query) == "" {
		return all
	}

	out := make([]Khatma, 0)
	for _, khatma := range all {
		if searchtext.Contains(khatma.Title, query) ||
			searchtext.Contains(khatma.DeceasedName, query) ||
			searchtext.Contains(khatma.CreatedBy, query) {
			out = append(out, khatma)
		}
	}
	return out
}

/*
CompletionLog returns the audit log of finished khatmas, newest first by
completion time.

Description: The stored log is append-only, and load-time reconciliation
may append a repaired record for an old completion after newer entries, so
insertion order is not chronological. The view sorts by completedAt
descending instead.

Returns:
  - []CompletionRecord: Deep copies of the log entries
*/
func (service *Service) CompletionLog(_ context.Context) []CompletionRecord {
	service.mu.RLock()
	defer service.mu.RUnlock()

	out := make([]CompletionRecord, 0, len(service.records))
	for _, record := range service.records {
		out = append(out, record.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out
}

// Stats summarizes the whole board for the landing screen.
type Stats struct {
	TotalKhatmas     int `json:"totalKhatmas"`
	ActiveKhatmas    int `json:"activeKhatmas"`
	CompletedKhatmas int `json:"completedKhatmas"`
	CompletedParts   int `json:"completedParts"`
	Participants     int `json:"participants"`
}

/*
Stats aggregates counts across all khatmas.

Returns:
  - Stats: Totals, split by status, plus distinct participant count
*/
func (service *Service) Stats(_ context.Context) Stats {
	service.mu.RLock()
	defer service.mu.RUnlock()

	stats := Stats{TotalKhatmas: len(service.khatmas)}
	distinct := make(map[string]struct{})

	for _, khatma := range service.khatmas {
		if khatma.Status == StatusCompleted {
			stats.CompletedKhatmas++
		} else {
			stats.ActiveKhatmas++
		}
		stats.CompletedParts += khatma.completedParts()
		for _, name := range khatma.participants() {
			distinct[name] = struct{}{}
		}
	}
	stats.Participants = len(distinct)

	return stats
}

// # Change Notification

/*
Subscribe registers for change notifications.

Description: The returned channel receives one token after every
successful mutation. Delivery is best-effort: the channel has a buffer of
one and a slow consumer coalesces bursts instead of blocking mutations.

Returns:
  - <-chan struct{}: Notification channel; closed when cancelled
  - func(): Cancel function; releases the subscription and closes the channel
*/
func (service *Service) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	service.subMu.Lock()
	service.subs = append(service.subs, ch)
	service.subMu.Unlock()

	cancel := func() {
		service.subMu.Lock()
		defer service.subMu.Unlock()
		for i, sub := range service.subs {
			if sub == ch {
				service.subs = append(service.subs[:i], service.subs[i+1:]...)
				// Closing lets `for range ch` consumers terminate. The
				// removal above makes a second cancel a no-op, and notify
				// holds the same lock, so no send can race the close.
				close(ch)
				return
			}
		}
	}

	return ch, cancel
}

// notify pushes a token to every subscriber without blocking.
func (service *Service) notify() {
	service.subMu.Lock()
	defer service.subMu.Unlock()

	for _, sub := range service.subs {
		select {
		case sub <- struct{}{}:
		default:
		}
	}
}
