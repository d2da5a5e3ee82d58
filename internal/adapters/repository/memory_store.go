package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/okian/candidateview/internal/domain/candidate"
	"github.com/okian/candidateview/pkg/metrics"
)

// Snapshot is an immutable view of the collection at one version.
type Snapshot struct {
	Records  []candidate.Record
	Version  uint64
	LoadedAt time.Time
}

// MemoryStore keeps the collection behind an atomically swapped snapshot.
// Writers are expected to be rare (one per load); readers never block.
type MemoryStore struct {
	snapshot atomic.Pointer[Snapshot]
	now      func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	s.snapshot.Store(&Snapshot{Records: []candidate.Record{}})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set replaces the collection. A nil slice is stored as an empty collection.
func (s *MemoryStore) Set(_ context.Context, records []candidate.Record) {
	if records == nil {
		records = []candidate.Record{}
	}
	for {
		prev := s.snapshot.Load()
		next := &Snapshot{Records: records, Version: prev.Version + 1, LoadedAt: s.now()}
		if s.snapshot.CompareAndSwap(prev, next) {
			metrics.UpdateCollection(len(records), next.Version)
			return
		}
	}
}

// Get returns the current collection.
func (s *MemoryStore) Get(_ context.Context) []candidate.Record {
	return s.snapshot.Load().Records
}

// Version returns the current collection version.
func (s *MemoryStore) Version(_ context.Context) uint64 {
	return s.snapshot.Load().Version
}

// Count returns the number of held records.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.snapshot.Load().Records)
}

// Snapshot returns the records together with their version and load time.
func (s *MemoryStore) Snapshot(_ context.Context) Snapshot {
	return *s.snapshot.Load()
}
