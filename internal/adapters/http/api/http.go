// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/candidateview/internal/domain/display"
	"github.com/okian/candidateview/internal/domain/projection"
	"github.com/okian/candidateview/internal/domain/session"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CandidateDependencies
	SessionDependencies
	ReloadDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	candidatesHandler *CandidatesHandler
	sessionsHandler   *SessionsHandler
	reloadHandler     *ReloadHandler
	pageHandler       *PageHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		candidatesHandler: NewCandidatesHandler(deps),
		sessionsHandler:   NewSessionsHandler(deps),
		reloadHandler:     NewReloadHandler(deps),
		pageHandler:       NewPageHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /candidates", MetricsMiddleware(s.candidatesHandler.HandleGetCandidates, "candidates"))
	mux.HandleFunc("GET /api/candidates", MetricsMiddleware(s.candidatesHandler.HandleGetCollection, "collection"))

	mux.HandleFunc("POST /sessions", MetricsMiddleware(s.sessionsHandler.HandleCreate, "sessions"))
	mux.HandleFunc("GET /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleGet, "session"))
	mux.HandleFunc("DELETE /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleDelete, "session"))
	mux.HandleFunc("PUT /sessions/{id}/query", MetricsMiddleware(s.sessionsHandler.HandleSetQuery, "session_query"))
	mux.HandleFunc("DELETE /sessions/{id}/query", MetricsMiddleware(s.sessionsHandler.HandleClearQuery, "session_query"))
	mux.HandleFunc("PUT /sessions/{id}/sort", MetricsMiddleware(s.sessionsHandler.HandleSelectSort, "session_sort"))

	mux.HandleFunc("POST /admin/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload"))

	mux.HandleFunc("GET /{$}", MetricsMiddleware(s.pageHandler.HandlePage, "page"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// viewResponse is one projection of the collection, rendered for display.
type viewResponse struct {
	ID         string                   `json:"id,omitempty"`
	Query      string                   `json:"query"`
	Sort       projection.SortDirective `json:"sort"`
	Count      int                      `json:"count"`
	Candidates []display.Row            `json:"candidates"`
}

// stateResponse is a session without its rows.
type stateResponse struct {
	ID    string                   `json:"id"`
	Query string                   `json:"query"`
	Sort  projection.SortDirective `json:"sort"`
}

func newStateResponse(s session.Session) stateResponse {
	return stateResponse{ID: s.ID, Query: s.State.Query, Sort: s.State.Sort}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps session and sort failures to their HTTP status.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrSessionNotFound, err))
	case errors.Is(err, session.ErrUnsupportedSort), errors.Is(err, projection.ErrUnknownSort):
		writeError(w, http.StatusBadRequest, "unsupported_sort", WrapKind(op, ErrUnsupportedSort, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// decodeJSON reads a single JSON object from the request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
