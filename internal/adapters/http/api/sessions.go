package api

import (
	"context"
	"net/http"

	"github.com/okian/candidateview/internal/domain/candidate"
	"github.com/okian/candidateview/internal/domain/display"
	"github.com/okian/candidateview/internal/domain/projection"
	"github.com/okian/candidateview/internal/domain/session"
)

// SessionDependencies manages per-viewer state.
type SessionDependencies interface {
	CreateSession(ctx context.Context) session.Session
	View(ctx context.Context, id string) (session.Session, []candidate.Record, error)
	SetQuery(ctx context.Context, id, query string) (session.Session, error)
	ClearQuery(ctx context.Context, id string) (session.Session, error)
	SelectSort(ctx context.Context, id string, dir projection.SortDirective) (session.Session, error)
	DeleteSession(ctx context.Context, id string) bool
}

type queryRequest struct {
	Query *string `json:"query"`
}

type sortRequest struct {
	Sort string `json:"sort"`
}

// SessionsHandler handles the /sessions routes.
type SessionsHandler struct {
	deps SessionDependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// HandleCreate handles POST /sessions.
func (h *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	s := h.deps.CreateSession(r.Context())
	w.Header().Set("Location", "/sessions/"+s.ID)
	writeJSON(w, http.StatusCreated, newStateResponse(s))
}

// HandleGet handles GET /sessions/{id}: the session state plus its projection.
func (h *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_session"

	s, records, err := h.deps.View(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	rows := display.Rows(records)
	writeJSON(w, http.StatusOK, viewResponse{
		ID:         s.ID,
		Query:      s.State.Query,
		Sort:       s.State.Sort,
		Count:      len(rows),
		Candidates: rows,
	})
}

// HandleSetQuery handles PUT /sessions/{id}/query with body {"query": "..."}.
func (h *SessionsHandler) HandleSetQuery(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_query"

	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Query == nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	s, err := h.deps.SetQuery(r.Context(), r.PathValue("id"), *req.Query)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(s))
}

// HandleClearQuery handles DELETE /sessions/{id}/query, the Clear control.
func (h *SessionsHandler) HandleClearQuery(w http.ResponseWriter, r *http.Request) {
	const op = "api.clear_query"

	s, err := h.deps.ClearQuery(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(s))
}

// HandleSelectSort handles PUT /sessions/{id}/sort with body {"sort": "asc"|"desc"}.
func (h *SessionsHandler) HandleSelectSort(w http.ResponseWriter, r *http.Request) {
	const op = "api.select_sort"

	var req sortRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	dir, err := projection.ParseSortDirective(req.Sort)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	s, err := h.deps.SelectSort(r.Context(), r.PathValue("id"), dir)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(s))
}

// HandleDelete handles DELETE /sessions/{id}.
func (h *SessionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_session"

	if !h.deps.DeleteSession(r.Context(), r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrSessionNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
