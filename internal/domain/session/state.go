// Package session holds per-viewer view state: the query and sort directive a
// viewer has chosen, kept apart from the shared candidate collection.
package session

import (
	"fmt"

	"github.com/okian/candidateview/internal/domain/projection"
)

// ViewState is what one viewer has typed and clicked.
// The zero value is the initial state: empty query, no sorting.
type ViewState struct {
	Query string                   `json:"query"`
	Sort  projection.SortDirective `json:"sort"`
}

// SetQuery replaces the query verbatim; no trimming is applied.
func (s *ViewState) SetQuery(q string) {
	s.Query = q
}

// ClearQuery resets the query to empty.
func (s *ViewState) ClearQuery() {
	s.Query = ""
}

// SelectSort switches to Ascending or Descending. Selecting the active direction
// again is a no-op. There is no way back to None once a direction was chosen.
func (s *ViewState) SelectSort(d projection.SortDirective) error {
	switch d {
	case projection.Ascending, projection.Descending:
		s.Sort = d
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedSort, d)
	}
}
