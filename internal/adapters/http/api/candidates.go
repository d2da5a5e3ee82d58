package api

import (
	"context"
	"net/http"

	"github.com/okian/candidateview/internal/domain/candidate"
	"github.com/okian/candidateview/internal/domain/display"
	"github.com/okian/candidateview/internal/domain/projection"
)

// CandidateDependencies reads the shared collection.
type CandidateDependencies interface {
	Candidates(ctx context.Context) []candidate.Record
	Project(ctx context.Context, query string, dir projection.SortDirective) []candidate.Record
}

// CandidatesHandler serves stateless projections and the raw collection.
type CandidatesHandler struct {
	deps CandidateDependencies
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps CandidateDependencies) *CandidatesHandler {
	return &CandidatesHandler{deps: deps}
}

// HandleGetCandidates handles GET /candidates?q=&sort= requests.
// The query is used verbatim, surrounding whitespace included.
func (h *CandidatesHandler) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_candidates"

	params := r.URL.Query()
	dir, err := projection.ParseSortDirective(params.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unsupported_sort", WrapKind(op, ErrUnsupportedSort, err))
		return
	}
	query := params.Get("q")

	rows := display.Rows(h.deps.Project(r.Context(), query, dir))
	writeJSON(w, http.StatusOK, viewResponse{
		Query:      query,
		Sort:       dir,
		Count:      len(rows),
		Candidates: rows,
	})
}

// HandleGetCollection handles GET /api/candidates, returning the held records
// in the same shape the upstream API serves them.
func (h *CandidatesHandler) HandleGetCollection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Candidates(r.Context()))
}
