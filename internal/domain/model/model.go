// Package model contains domain models passed between layers.
package model

// Song is a ranked item with a stable identity. Immutable after seeding.
type Song struct {
	ID        int64  `json:"id"`
	Path      string `json:"path"`
	Title     string `json:"title"`
	Extension string `json:"extension"`
}

// Match is a recorded outcome between two songs. Its id doubles as the
// snapshot index of the stat rows it produced.
type Match struct {
	ID       int64 `json:"id"`
	WinnerID int64 `json:"winner_id"`
	LoserID  int64 `json:"loser_id"`
}

// StatRow is one song's rating and rank within a snapshot. MatchIndex 0 is
// the pre-match baseline; it never references a match.
type StatRow struct {
	ID         int64   `json:"id"`
	MatchIndex int64   `json:"matchup_id"`
	SongID     int64   `json:"song_id"`
	Rating     float64 `json:"rating"`
	Rank       int64   `json:"rank"`
}

// SeedSong is a roster entry with its starting rating, used only at seed time.
type SeedSong struct {
	ID             int64   `json:"id"`
	Path           string  `json:"path"`
	Title          string  `json:"title"`
	Extension      string  `json:"extension"`
	StartingRating float64 `json:"starting_rating"`
}

// Song returns the immutable catalog part of a seed entry.
func (s SeedSong) Song() Song {
	return Song{ID: s.ID, Path: s.Path, Title: s.Title, Extension: s.Extension}
}

// MatchCommand is a validated request to record one match.
type MatchCommand struct {
	WinnerID     int64
	LoserID      int64
	WinnerRating float64
	LoserRating  float64
}

// LedgerStats is a monitoring snapshot of the running service. RosterSize
// and MaxMatchIndex are zero while the service is stopped.
type LedgerStats struct {
	Started       bool   `json:"started"`
	DBPath        string `json:"dbPath"`
	ListLimit     int    `json:"listLimit"`
	RosterSize    int    `json:"rosterSize"`
	MaxMatchIndex int64  `json:"maxMatchIndex"`
}
