// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/mkarlsen/songrank/internal/domain/model"
)

// StatDependencies defines the interface for snapshot reads.
type StatDependencies interface {
	Stats(ctx context.Context) ([]model.StatRow, error)
}

// SongStatsHandler handles snapshot row requests.
type SongStatsHandler struct {
	deps StatDependencies
}

// NewSongStatsHandler creates a new song stats handler.
func NewSongStatsHandler(deps StatDependencies) *SongStatsHandler {
	return &SongStatsHandler{deps: deps}
}

// HandleGetStats handles GET /api/songstats/all requests.
func (h *SongStatsHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats, err := h.deps.Stats(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
