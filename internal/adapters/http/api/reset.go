// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// ResetDependencies defines the interface for clearing the ledger.
type ResetDependencies interface {
	Reset(ctx context.Context) error
}

// ResetHandler handles ledger reset requests.
type ResetHandler struct {
	deps ResetDependencies
}

// NewResetHandler creates a new reset handler.
func NewResetHandler(deps ResetDependencies) *ResetHandler {
	return &ResetHandler{deps: deps}
}

// HandleReset handles POST /api/delete/all requests. The operation is
// idempotent; resetting an empty ledger succeeds.
func (h *ResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Reset(r.Context()); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{OK: true})
}
