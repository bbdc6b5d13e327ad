// Copyright (c) 2026 AtharHuda. All rights reserved.

package adhkar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/atharhuda/atharhuda/internal/platform/storage"
)

// KeyProgress is the storage key for today's counter snapshot. The payload
// layout matches the PWA's local-storage schema.
const KeyProgress = "adhkar_v1"

// # Service Layer

// Service tracks today's dhikr counts on top of the static catalog.
//
// Counts are scoped to one calendar day: the first operation after midnight
// discards yesterday's progress. Persistence mirrors the khatma store's
// policy — snapshot on every mutation, swallow write failures.
type Service struct {
	mu             sync.Mutex
	counts         map[string]int // "categoryID_dhikrID" -> taps today
	todayTotal     int
	todayCompleted int
	lastDate       string // "YYYY-MM-DD"

	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// progressSnapshot is the persisted JSON shape.
type progressSnapshot struct {
	Counts         map[string]int `json:"counts"`
	TodayTotal     int            `json:"todayTotal"`
	TodayCompleted int            `json:"todayCompleted"`
	LastDate       string         `json:"lastDate"`
}

// NewService loads today's progress from the store. A missing or malformed
// snapshot, or one from a previous day, starts the day at zero.
func NewService(ctx context.Context, store storage.Store, logger *slog.Logger) *Service {
	service := &Service{
		counts: make(map[string]int),
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	service.lastDate = dateKey(service.now())

	raw, err := store.Get(ctx, KeyProgress)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			logger.Warn("adhkar_snapshot_read_failed", slog.Any("error", err))
		}
		return service
	}

	var snapshot progressSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		logger.Warn("adhkar_snapshot_malformed", slog.Any("error", err))
		return service
	}

	if snapshot.LastDate != service.lastDate {
		// Yesterday's progress; the new day starts from zero.
		return service
	}

	if snapshot.Counts != nil {
		service.counts = snapshot.Counts
	}
	service.todayTotal = snapshot.TodayTotal
	service.todayCompleted = snapshot.TodayCompleted

	return service
}

// # Counter Operations

// Progress is the live counter state of one dhikr.
type Progress struct {
	CategoryID string `json:"categoryId"`
	DhikrID    int    `json:"dhikrId"`
	Current    int    `json:"current"`
	Target     int    `json:"target"`
	Completed  bool   `json:"completed"`
}

/*
Increment counts one recitation of the given dhikr, capped at its target.

Description: Taps beyond the target are absorbed silently — the counter
stays full rather than erroring, matching how a physical misbaha behaves.
Reaching the target exactly bumps the completed-adhkar tally for the day.

Parameters:
  - ctx: context.Context
  - categoryID: string
  - dhikrID: int

Returns:
  - Progress: The dhikr's state after the tap
  - bool: Whether the (category, dhikr) pair exists in the catalog
*/
func (service *Service) Increment(ctx context.Context, categoryID string, dhikrID int) (Progress, bool) {
	dhikr, ok := findDhikr(categoryID, dhikrID)
	if !ok {
		return Progress{}, false
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	service.rolloverLocked()

	key := progressKey(categoryID, dhikrID)
	if service.counts[key] < dhikr.Count {
		service.counts[key]++
		service.todayTotal++
		if service.counts[key] == dhikr.Count {
			service.todayCompleted++
		}
		service.saveLocked(ctx)
	}

	return service.progressLocked(categoryID, dhikr), true
}

/*
Reset clears the counter of one dhikr.

Returns:
  - Progress: The cleared state
  - bool: Whether the (category, dhikr) pair exists in the catalog
*/
func (service *Service) Reset(ctx context.Context, categoryID string, dhikrID int) (Progress, bool) {
	dhikr, ok := findDhikr(categoryID, dhikrID)
	if !ok {
		return Progress{}, false
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	service.rolloverLocked()

	delete(service.counts, progressKey(categoryID, dhikrID))
	service.saveLocked(ctx)

	return service.progressLocked(categoryID, dhikr), true
}

/*
ResetCategory clears the counters of every dhikr in one category.

Returns:
  - bool: Whether the category exists in the catalog
*/
func (service *Service) ResetCategory(ctx context.Context, categoryID string) bool {
	category, ok := findCategory(categoryID)
	if !ok {
		return false
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	service.rolloverLocked()

	for _, dhikr := range category.Adhkar {
		delete(service.counts, progressKey(categoryID, dhikr.ID))
	}
	service.saveLocked(ctx)

	return true
}

// # Read Views

/*
Groups returns the full catalog with today's counts merged in.

Returns:
  - []Group: Catalog copy; Dhikr texts are shared, counts are today's
*/
func (service *Service) Groups(_ context.Context) []Group {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.rolloverLocked()

	out := make([]Group, len(catalog))
	for gi, group := range catalog {
		out[gi] = group
		out[gi].Categories = make([]Category, len(group.Categories))
		for ci, category := range group.Categories {
			out[gi].Categories[ci] = category
			out[gi].Categories[ci].Adhkar = append([]Dhikr(nil), category.Adhkar...)
		}
	}
	return out
}

/*
DhikrProgress returns today's counter state for one dhikr.

Returns:
  - Progress
  - bool: Whether the (category, dhikr) pair exists in the catalog
*/
func (service *Service) DhikrProgress(_ context.Context, categoryID string, dhikrID int) (Progress, bool) {
	dhikr, ok := findDhikr(categoryID, dhikrID)
	if !ok {
		return Progress{}, false
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	service.rolloverLocked()

	return service.progressLocked(categoryID, dhikr), true
}

// TodayStats summarizes one day of recitation.
type TodayStats struct {
	Date           string `json:"date"`
	TotalTaps      int    `json:"totalTaps"`
	CompletedCount int    `json:"completedCount"`
}

/*
Stats returns the day's tap total and completed-adhkar count.

Returns:
  - TodayStats
*/
func (service *Service) Stats(_ context.Context) TodayStats {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.rolloverLocked()

	return TodayStats{
		Date:           service.lastDate,
		TotalTaps:      service.todayTotal,
		CompletedCount: service.todayCompleted,
	}
}

// # Internals

// rolloverLocked discards progress when the calendar day has changed.
func (service *Service) rolloverLocked() {
	today := dateKey(service.now())
	if today == service.lastDate {
		return
	}

	service.logger.Info("adhkar_day_rollover",
		slog.String("from", service.lastDate),
		slog.String("to", today),
	)
	service.counts = make(map[string]int)
	service.todayTotal = 0
	service.todayCompleted = 0
	service.lastDate = today
}

// progressLocked builds the live view of one dhikr.
func (service *Service) progressLocked(categoryID string, dhikr Dhikr) Progress {
	current := service.counts[progressKey(categoryID, dhikr.ID)]
	return Progress{
		CategoryID: categoryID,
		DhikrID:    dhikr.ID,
		Current:    current,
		Target:     dhikr.Count,
		Completed:  current >= dhikr.Count,
	}
}

// saveLocked snapshots today's progress, swallowing write failures.
func (service *Service) saveLocked(ctx context.Context) {
	payload, err := json.Marshal(progressSnapshot{
		Counts:         service.counts,
		TodayTotal:     service.todayTotal,
		TodayCompleted: service.todayCompleted,
		LastDate:       service.lastDate,
	})
	if err != nil {
		service.logger.Error("adhkar_snapshot_encode_failed", slog.Any("error", err))
		return
	}

	if err := service.store.Put(ctx, KeyProgress, payload); err != nil {
		service.logger.Warn("adhkar_snapshot_write_failed", slog.Any("error", err))
	}
}

// progressKey builds the per-dhikr counter key.
func progressKey(categoryID string, dhikrID int) string {
	return fmt.Sprintf("%s_%d", categoryID, dhikrID)
}

// dateKey formats a time as the day-scoping key.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
