// Copyright (c) 2026 AtharHuda. All rights reserved.

/*
Package khatma implements the collaborative Quran-reading tracker.

A khatma is a campaign of 30 fixed parts (ajza'), each moving through an
available → reserved → completed lifecycle driven by free-text participant
names. The [Service] is the single source of truth for the khatma
collection and the append-only completion log; every mutation passes
through it so the derived fields (progress, status, completedAt) and the
log's idempotence guarantees hold.

# Trust Model

There is deliberately no notion of identity: anyone may reserve or complete
any part under any name, a completed part may be reopened, and two devices
writing the same khatma resolve by last-write-wins at the snapshot layer.
*/
package khatma

import (
	"fmt"
	"math"
	"time"
)

// PartStatus is the lifecycle state of a single juz within a khatma.
type PartStatus string

const (
	PartAvailable PartStatus = "available"
	PartReserved  PartStatus = "reserved"
	PartCompleted PartStatus = "completed"
)

// Status is the derived state of a whole khatma.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// UnknownReader is recorded as the completer when a part is completed
// without a name and was never reserved.
const UnknownReader = "مجهول"

// Part is one juz within a khatma.
//
// Field exclusivity invariant: ReservedBy is set iff Status is reserved;
// CompletedBy and ReadSurahs are set only when Status is completed.
type Part struct {
	JuzNumber   int        `json:"juzNumber"`
	Status      PartStatus `json:"status"`
	ReservedBy  string     `json:"reservedBy,omitempty"`
	CompletedBy string     `json:"completedBy,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	ReadSurahs  []string   `json:"readSurahs,omitempty"`
}

// Khatma is the aggregate root of one reading campaign.
//
// Progress, Status, and CompletedAt are derived: they are recomputed by the
// [Service] on every part transition and must never be set by callers.
// CompletedAt is a historical fact — once set it is never cleared, even if
// a part is later reverted and the khatma becomes active again.
type Khatma struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	CreatedBy         string     `json:"createdBy"`
	DeceasedName      string     `json:"deceasedName,omitempty"`
	DeceasedDeathDate *time.Time `json:"deceasedDeathDate,omitempty"`
	Description       string     `json:"description"`
	CreatedAt         time.Time  `json:"createdAt"`
	Status            Status     `json:"status"`
	Progress          int        `json:"progress"`
	Parts             []Part     `json:"parts"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
}

// CompletionRecord is an immutable, append-only audit entry created the
// first time a khatma reaches 100% completion.
//
// Its ID is derived from (khatmaId, completedAt), so re-deriving the record
// for the same completion event can never produce a duplicate.
type CompletionRecord struct {
	ID           string    `json:"id"`
	KhatmaID     string    `json:"khatmaId"`
	Title        string    `json:"title"`
	CreatedBy    string    `json:"createdBy"`
	DeceasedName string    `json:"deceasedName,omitempty"`
	CompletedAt  time.Time `json:"completedAt"`
	Participants []string  `json:"participants"`
}

// # Derived State

// completedParts counts parts with status completed.
func (k *Khatma) completedParts() int {
	count := 0
	for i := range k.Parts {
		if k.Parts[i].Status == PartCompleted {
			count++
		}
	}
	return count
}

// recomputeDerived refreshes Progress and Status from the parts, and sets
// CompletedAt exactly once when the khatma first becomes fully completed.
//
// Returns true when this call is the completion event (the khatma just
// transitioned to fully completed and CompletedAt was assigned now).
func (k *Khatma) recomputeDerived(now time.Time) bool {
	completed := k.completedParts()
	k.Progress = int(math.Round(float64(completed) * 100.0 / float64(len(k.Parts))))

	if completed == len(k.Parts) && len(k.Parts) > 0 {
		k.Status = StatusCompleted
		if k.CompletedAt == nil {
			at := now
			k.CompletedAt = &at
			return true
		}
		return false
	}

	// CompletedAt deliberately survives reversion: the completion remains
	// a historical fact even while the khatma is active again.
	k.Status = StatusActive
	return false
}

// participants returns the deduplicated reserver/completer names across all
// parts, in first-seen order.
func (k *Khatma) participants() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)

	for i := range k.Parts {
		for _, name := range []string{k.Parts[i].CompletedBy, k.Parts[i].ReservedBy} {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names
}

// completionRecord builds the audit entry for this khatma's completion event.
func (k *Khatma) completionRecord() CompletionRecord {
	completedAt := time.Now()
	if k.CompletedAt != nil {
		completedAt = *k.CompletedAt
	}

	return CompletionRecord{
		ID:           completionRecordID(k.ID, completedAt),
		KhatmaID:     k.ID,
		Title:        k.Title,
		CreatedBy:    k.CreatedBy,
		DeceasedName: k.DeceasedName,
		CompletedAt:  completedAt,
		Participants: k.participants(),
	}
}

// completionRecordID derives the deterministic log entry ID for one
// completion event.
func completionRecordID(khatmaID string, completedAt time.Time) string {
	return fmt.Sprintf("%s-%d", khatmaID, completedAt.UnixMilli())
}

// # Copying

// clone returns a deep copy, so read views can never alias store-owned state.
func (k *Khatma) clone() Khatma {
	out := *k

	out.Parts = make([]Part, len(k.Parts))
	copy(out.Parts, k.Parts)
	for i := range out.Parts {
		if k.Parts[i].UpdatedAt != nil {
			at := *k.Parts[i].UpdatedAt
			out.Parts[i].UpdatedAt = &at
		}
		if k.Parts[i].ReadSurahs != nil {
			out.Parts[i].ReadSurahs = append([]string(nil), k.Parts[i].ReadSurahs...)
		}
	}

	if k.DeceasedDeathDate != nil {
		at := *k.DeceasedDeathDate
		out.DeceasedDeathDate = &at
	}
	if k.CompletedAt != nil {
		at := *k.CompletedAt
		out.CompletedAt = &at
	}

	return out
}

// clone returns a deep copy of the record.
func (r CompletionRecord) clone() CompletionRecord {
	out := r
	out.Participants = append([]string(nil), r.Participants...)
	return out
}
