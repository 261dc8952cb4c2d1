// Package timeline derives a navigable playback model from the raw
// ledger collections. The server never re-sorts history for the client;
// everything here is computed from the full song, match and snapshot
// lists fetched once per load.
package timeline

import (
	"fmt"

	"github.com/mkarlsen/songrank/internal/domain/model"
)

// StatKey builds the composite lookup key for a snapshot row. Composite
// struct keys would work in Go, but the string form keeps keys printable
// in logs and errors.
func StatKey(index, songID int64) string {
	return fmt.Sprintf("%d:%d", index, songID)
}

// Stat is the rating and rank of one song in one snapshot.
type Stat struct {
	Rating float64
	Rank   int64
}

// Result records the two participants of a match.
type Result struct {
	WinnerID int64
	LoserID  int64
}

// View holds the derived lookup maps for timeline playback.
type View struct {
	Songs    map[int64]model.Song
	Stats    map[string]Stat
	Results  map[int64]Result
	MaxIndex int64
}

// NewView builds the derived maps from the raw ledger lists. MaxIndex is
// the highest snapshot index observed, 0 when the ledger holds only the
// baseline (or nothing at all).
func NewView(songs []model.Song, stats []model.StatRow, matches []model.Match) *View {
	v := &View{
		Songs:   make(map[int64]model.Song, len(songs)),
		Stats:   make(map[string]Stat, len(stats)),
		Results: make(map[int64]Result, len(matches)),
	}
	for _, song := range songs {
		v.Songs[song.ID] = song
	}
	for _, row := range stats {
		v.Stats[StatKey(row.MatchIndex, row.SongID)] = Stat{Rating: row.Rating, Rank: row.Rank}
		if row.MatchIndex > v.MaxIndex {
			v.MaxIndex = row.MatchIndex
		}
	}
	for _, match := range matches {
		v.Results[match.ID] = Result{WinnerID: match.WinnerID, LoserID: match.LoserID}
		if match.ID > v.MaxIndex {
			v.MaxIndex = match.ID
		}
	}
	return v
}

// stat returns the snapshot entry for (index, songID) or an invariant
// error when the ledger is missing it.
func (v *View) stat(index, songID int64) (Stat, error) {
	s, ok := v.Stats[StatKey(index, songID)]
	if !ok {
		return Stat{}, &InvariantError{Missing: "stat " + StatKey(index, songID)}
	}
	return s, nil
}
