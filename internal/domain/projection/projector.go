package projection

import (
	"time"

	"github.com/okian/candidateview/internal/domain/candidate"
	"github.com/okian/candidateview/pkg/metrics"
)

// Projector runs Project and records how long it took and how many rows it produced.
type Projector struct {
	now func() time.Time
}

// NewProjector creates a Projector.
func NewProjector() *Projector {
	return &Projector{now: time.Now}
}

// Project is the instrumented form of the package-level Project.
func (p *Projector) Project(records []candidate.Record, query string, dir SortDirective) []candidate.Record {
	start := p.now()
	out := Project(records, query, dir)
	metrics.RecordProjection(dir.String(), float64(p.now().Sub(start).Microseconds())/1000, len(out))
	return out
}
