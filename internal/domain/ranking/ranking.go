// Package ranking computes snapshot stat rows for the rating ledger.
//
// Two ordering rules live here and they are intentionally different. The
// seed snapshot ranks songs ascending by starting rating (rank 1 = lowest),
// matching the behavior of the original importer. Every later snapshot ranks
// descending by rating with ties broken by song id ascending. Both orderings
// are total, so dense ranking degenerates to the row's position in the sort.
package ranking

import (
	"sort"

	"github.com/mkarlsen/songrank/internal/domain/model"
)

// SeedSnapshot builds the snapshot-0 rows for a fresh roster.
// Rank 1 is the lowest starting rating; ties keep input order.
func SeedSnapshot(songs []model.SeedSong) []model.StatRow {
	ordered := make([]model.SeedSong, len(songs))
	copy(ordered, songs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartingRating < ordered[j].StartingRating
	})

	rows := make([]model.StatRow, len(ordered))
	for i, song := range ordered {
		rows[i] = model.StatRow{
			MatchIndex: 0,
			SongID:     song.ID,
			Rating:     song.StartingRating,
			Rank:       int64(i + 1),
		}
	}
	return rows
}

// Next derives the snapshot at index from the previous snapshot's rows and
// one match outcome. Every song in prev appears exactly once in the result:
// the winner and loser take the supplied ratings, everyone else carries
// forward unchanged. Ranks are recomputed for the whole set. If winner and
// loser ids collide, the winner rating takes precedence.
func Next(prev []model.StatRow, index int64, cmd model.MatchCommand) []model.StatRow {
	rows := make([]model.StatRow, len(prev))
	for i, row := range prev {
		rating := row.Rating
		switch row.SongID {
		case cmd.WinnerID:
			rating = cmd.WinnerRating
		case cmd.LoserID:
			rating = cmd.LoserRating
		}
		rows[i] = model.StatRow{
			MatchIndex: index,
			SongID:     row.SongID,
			Rating:     rating,
		}
	}
	Rank(rows)
	return rows
}

// Rank sorts rows by rating descending, song id ascending, and assigns dense
// ranks 1..K in place. Song ids are unique within a snapshot, so the sort
// order is total and no two rows ever share a rank.
func Rank(rows []model.StatRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].SongID < rows[j].SongID
	})
	for i := range rows {
		rows[i].Rank = int64(i + 1)
	}
}
