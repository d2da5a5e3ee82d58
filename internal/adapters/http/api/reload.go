package api

import (
	"context"
	"net/http"
)

// ReloadDependencies requests a fresh load of the collection.
type ReloadDependencies interface {
	Reload(ctx context.Context) bool
}

type reloadResponse struct {
	Status string `json:"status"`
}

// ReloadHandler handles reload requests.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandleReload handles POST /admin/reload. The load runs in the background;
// a request arriving while one is pending is folded into it.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	status := "queued"
	if !h.deps.Reload(r.Context()) {
		status = "coalesced"
	}
	writeJSON(w, http.StatusAccepted, reloadResponse{Status: status})
}
