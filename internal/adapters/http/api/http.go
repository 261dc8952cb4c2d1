// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkarlsen/songrank/internal/adapters/repository"
	"github.com/mkarlsen/songrank/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Roster operations.
	Songs(ctx context.Context) ([]model.Song, error)
	SeedRoster(ctx context.Context, songs []model.SeedSong) error

	// Ledger operations.
	Matches(ctx context.Context) ([]model.Match, error)
	RecordMatch(ctx context.Context, cmd model.MatchCommand) (int64, error)
	Stats(ctx context.Context) ([]model.StatRow, error)
	Reset(ctx context.Context) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	songsHandler     *SongsHandler
	matchesHandler   *MatchesHandler
	songStatsHandler *SongStatsHandler
	resetHandler     *ResetHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(statsProvider),
		songsHandler:     NewSongsHandler(deps),
		matchesHandler:   NewMatchesHandler(deps),
		songStatsHandler: NewSongStatsHandler(deps),
		resetHandler:     NewResetHandler(deps),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/api/song/all", MetricsMiddleware(s.songsHandler.HandleSongs, "songs"))
	mux.HandleFunc("/api/match/all", MetricsMiddleware(s.matchesHandler.HandleGetMatches, "matches"))
	mux.HandleFunc("/api/match/one", MetricsMiddleware(s.matchesHandler.HandlePostMatch, "match"))
	mux.HandleFunc("/api/songstats/all", MetricsMiddleware(s.songStatsHandler.HandleGetStats, "songstats"))
	mux.HandleFunc("/api/delete/all", MetricsMiddleware(s.resetHandler.HandleReset, "reset"))
}

type ackResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id,omitempty"`
}

type errorResponse struct {
	Error  string             `json:"error"`
	Issues []model.FieldIssue `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeLedgerError maps service errors to API status codes. Storage
// failures stay opaque to the caller.
func writeLedgerError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload", Issues: verr.Issues})
	case errors.Is(err, repository.ErrUnknownSong):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, repository.ErrRosterExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "")
	}
}
