// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/danielhkuo/footprint/models"
)

// MemoryStore keeps records in a process-local slice
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.EmissionRecord
	now     func() time.Time
}

// NewMemoryStore creates an empty store. A nil clock means time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now}
}

func (s *MemoryStore) Add(_ context.Context, rec models.EmissionRecord) (models.EmissionRecord, error) {
	rec = stamp(rec, s.now())

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	return rec, nil
}

func (s *MemoryStore) All(_ context.Context) ([]models.EmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.EmissionRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) ByDateRange(_ context.Context, start, end string) ([]models.EmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return FilterDateRange(s.records, start, end), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
	return nil
}
