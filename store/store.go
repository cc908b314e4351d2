// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/danielhkuo/footprint/models"
)

// DateLayout is the calendar-date format used for record dates and range bounds
const DateLayout = "2006-01-02"

var ErrNotFound = errors.New("emission record not found")

// Store holds emission records in insertion order
type Store interface {
	// Add assigns ID, Timestamp and Date, stores the record and returns it
	Add(ctx context.Context, rec models.EmissionRecord) (models.EmissionRecord, error)
	All(ctx context.Context) ([]models.EmissionRecord, error)
	// ByDateRange returns records with start <= date <= end (inclusive)
	ByDateRange(ctx context.Context, start, end string) ([]models.EmissionRecord, error)
	// Delete returns ErrNotFound when no record has the given ID
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// NewRecordID returns a unique, time-sortable record ID
func NewRecordID() string {
	return "em_" + ulid.Make().String()
}

// DateOf returns the UTC calendar date of t
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// stamp fills the store-assigned fields of rec
func stamp(rec models.EmissionRecord, now time.Time) models.EmissionRecord {
	rec.ID = NewRecordID()
	rec.Timestamp = now.UTC()
	rec.Date = DateOf(now)
	return rec
}
