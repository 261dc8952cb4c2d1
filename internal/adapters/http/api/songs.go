// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"io"
	"net/http"

	"github.com/mkarlsen/songrank/internal/domain/model"
)

// SongDependencies defines the interface for roster operations.
type SongDependencies interface {
	Songs(ctx context.Context) ([]model.Song, error)
	SeedRoster(ctx context.Context, songs []model.SeedSong) error
}

// SongsHandler handles song catalog requests.
type SongsHandler struct {
	deps SongDependencies
}

// NewSongsHandler creates a new songs handler.
func NewSongsHandler(deps SongDependencies) *SongsHandler {
	return &SongsHandler{deps: deps}
}

// HandleSongs handles GET and POST /api/song/all requests.
func (h *SongsHandler) HandleSongs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleSeed(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *SongsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	songs, err := h.deps.Songs(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

func (h *SongsHandler) handleSeed(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	songs, err := model.ParseSeedSongs(body)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if err := h.deps.SeedRoster(r.Context(), songs); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{OK: true})
}
