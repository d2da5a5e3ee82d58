// Package repository holds the candidate collection loaded from the candidate API.
package repository

import (
	"context"

	"github.com/okian/candidateview/internal/domain/candidate"
)

// Store provides read/write access to the candidate collection.
//
// The collection is replaced wholesale by Set and never patched. Get hands out
// the held slice itself; callers must treat it as read-only.
type Store interface {
	// Set replaces the held collection and bumps the version.
	Set(ctx context.Context, records []candidate.Record)

	// Get returns the current collection. It is empty until the first Set.
	Get(ctx context.Context) []candidate.Record

	// Version counts how many times the collection has been replaced.
	Version(ctx context.Context) uint64

	// Count returns the number of held records.
	Count(ctx context.Context) int
}
