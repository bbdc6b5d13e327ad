// Copyright (c) 2026 AtharHuda. All rights reserved.

package khatma

import (
	"time"

	"github.com/atharhuda/atharhuda/internal/core/juz"
)

// Seed returns the built-in starter dataset used when the snapshot store is
// empty or unreadable. It mirrors what a small community board looks like
// after a few days of use, so the first screen is never blank.
func Seed(now time.Time) []*Khatma {
	deathDate := time.Date(2023, time.May, 15, 0, 0, 0, 0, time.UTC)

	ramadan := &Khatma{
		ID:          "k1",
		Title:       "ختمة شهر رمضان المبارك",
		CreatedBy:   "محمد أحمد",
		Description: "ختمة جماعية بنية التيسير والقبول.",
		CreatedAt:   now,
		Status:      StatusActive,
		Parts:       newParts(),
	}
	for i, name := range []string{"فاطمة", "عمر", "خالد"} {
		ramadan.Parts[i].Status = PartCompleted
		ramadan.Parts[i].CompletedBy = name
		ramadan.Parts[i].ReadSurahs = juz.Surahs(i + 1)
	}
	ramadan.Parts[3].Status = PartReserved
	ramadan.Parts[3].ReservedBy = "أحمد"
	ramadan.recomputeDerived(now)

	memorial := &Khatma{
		ID:                "k2",
		Title:             "ختمة للمرحوم الوالد",
		CreatedBy:         "سارة عبدالله",
		DeceasedName:      "عبدالله بن محمد",
		DeceasedDeathDate: &deathDate,
		Description:       "اللهم اغفر له وارحمه.",
		CreatedAt:         now,
		Status:            StatusActive,
		Parts:             newParts(),
	}
	memorialReaders := []string{
		"أحمد", "فاطمة", "محمد", "علي", "نورة",
		"خالد", "ريم", "عمر", "سارة", "يوسف",
		"مريم", "حسن", "دانة", "سلطان", "هدى",
	}
	for i, name := range memorialReaders {
		memorial.Parts[i].Status = PartCompleted
		memorial.Parts[i].CompletedBy = name
		memorial.Parts[i].ReadSurahs = juz.Surahs(i + 1)
	}
	memorial.recomputeDerived(now)

	return []*Khatma{ramadan, memorial}
}

// newParts builds the fixed set of 30 available parts.
func newParts() []Part {
	parts := make([]Part, juz.Count)
	for i := range parts {
		parts[i] = Part{JuzNumber: i + 1, Status: PartAvailable}
	}
	return parts
}
