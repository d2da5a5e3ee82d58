// Package projection derives the displayed sequence of candidates from the held
// collection, a free-text query and a sort directive.
//
// Project is a pure function: it never mutates its input and holds no state, so
// it can run on every keystroke or button press without coordination.
package projection

import (
	"cmp"
	"slices"
	"strings"

	"github.com/okian/candidateview/internal/domain/candidate"
)

// Matches reports whether r is shown for query. An empty query matches every
// record; otherwise the lowercased query must be a substring of the lowercased
// name or of the lowercased raw skills string. The query is not trimmed.
func Matches(r candidate.Record, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Skills), q)
}

// Filter returns the records matching query in collection order.
func Filter(records []candidate.Record, query string) []candidate.Record {
	out := make([]candidate.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, query) {
			out = append(out, r)
		}
	}
	return out
}

// Project filters records by query, then orders the matches by years of
// experience according to dir. Ties keep their filtered order. The result is a
// fresh slice; records is left untouched.
func Project(records []candidate.Record, query string, dir SortDirective) []candidate.Record {
	out := Filter(records, query)
	switch dir {
	case Ascending:
		slices.SortStableFunc(out, func(a, b candidate.Record) int {
			return cmp.Compare(a.YearsOfExperience, b.YearsOfExperience)
		})
	case Descending:
		slices.SortStableFunc(out, func(a, b candidate.Record) int {
			return cmp.Compare(b.YearsOfExperience, a.YearsOfExperience)
		})
	}
	return out
}
