package repository

import (
	"time"

	"github.com/okian/candidateview/internal/domain/candidate"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithClock replaces time.Now for the load timestamp, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithInitial seeds the store with records without counting as a load.
func WithInitial(records []candidate.Record) Option {
	return func(s *MemoryStore) {
		if records == nil {
			records = []candidate.Record{}
		}
		s.snapshot.Store(&Snapshot{Records: records})
	}
}
