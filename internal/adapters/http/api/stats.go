// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/mkarlsen/songrank/internal/domain/model"
)

// StatsProvider reports a monitoring snapshot of the running ledger.
type StatsProvider interface {
	GetStats() model.LedgerStats
}

// StatsHandler serves the ledger monitoring snapshot.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests with the current roster size
// and highest snapshot index.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}
