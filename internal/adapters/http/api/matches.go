// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"io"
	"net/http"

	"github.com/mkarlsen/songrank/internal/domain/model"
)

// MatchDependencies defines the interface for match operations.
type MatchDependencies interface {
	Matches(ctx context.Context) ([]model.Match, error)
	RecordMatch(ctx context.Context, cmd model.MatchCommand) (int64, error)
}

// MatchesHandler handles match log requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleGetMatches handles GET /api/match/all requests.
func (h *MatchesHandler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	matches, err := h.deps.Matches(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// HandlePostMatch handles POST /api/match/one requests.
func (h *MatchesHandler) HandlePostMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	cmd, err := model.ParseMatchCommand(body)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	id, err := h.deps.RecordMatch(r.Context(), cmd)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{OK: true, ID: id})
}
