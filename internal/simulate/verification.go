package simulate

import (
	"context"
	"fmt"
	"sort"

	"github.com/mkarlsen/songrank/internal/client"
	"github.com/mkarlsen/songrank/internal/domain/model"
	"github.com/mkarlsen/songrank/pkg/logger"
)

// verifyLedger fetches the resulting ledger and checks its structural
// invariants: roster size, one snapshot per match, dense ranks ordered
// by rating, and carry-forward of untouched ratings.
func verifyLedger(ctx context.Context, c *client.Client, config *Config, stats *Stats) error {
	logger.Get().Info(ctx, "verifying ledger")

	songs, err := c.Songs(ctx)
	if err != nil {
		return fmt.Errorf("fetch songs: %w", err)
	}
	matches, err := c.Matches(ctx)
	if err != nil {
		return fmt.Errorf("fetch matches: %w", err)
	}
	rows, err := c.Stats(ctx)
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}

	if len(songs) != config.NumSongs {
		return fmt.Errorf("roster size mismatch: got %d, want %d", len(songs), config.NumSongs)
	}
	if len(matches) != stats.MatchesSubmitted {
		return fmt.Errorf("match count mismatch: got %d, want %d", len(matches), stats.MatchesSubmitted)
	}

	snapshots, maxIndex := groupSnapshots(rows)
	stats.SnapshotsFound = maxIndex
	if maxIndex != int64(stats.MatchesSubmitted) {
		return fmt.Errorf("snapshot count mismatch: got %d, want %d", maxIndex, stats.MatchesSubmitted)
	}

	participants := make(map[int64]model.Match, len(matches))
	for _, match := range matches {
		participants[match.ID] = match
	}

	for index := int64(0); index <= maxIndex; index++ {
		snapshot := snapshots[index]
		if len(snapshot) != len(songs) {
			return fmt.Errorf("snapshot %d has %d rows, want %d", index, len(snapshot), len(songs))
		}
		if index > 0 {
			if err := verifyDenseRanks(index, snapshot); err != nil {
				return err
			}
			if err := verifyCarryForward(index, snapshots[index-1], snapshot, participants[index]); err != nil {
				return err
			}
		}
	}

	logger.Get().Info(ctx, "ledger verified",
		logger.Int64("snapshots", maxIndex),
		logger.Int("songs", len(songs)))
	return nil
}

// groupSnapshots splits the flat stat list per snapshot index.
func groupSnapshots(rows []model.StatRow) (map[int64][]model.StatRow, int64) {
	snapshots := make(map[int64][]model.StatRow)
	var maxIndex int64
	for _, row := range rows {
		snapshots[row.MatchIndex] = append(snapshots[row.MatchIndex], row)
		if row.MatchIndex > maxIndex {
			maxIndex = row.MatchIndex
		}
	}
	return snapshots, maxIndex
}

// verifyDenseRanks checks that one snapshot is a 1..K ranking ordered by
// rating descending with id as the tie break.
func verifyDenseRanks(index int64, snapshot []model.StatRow) error {
	ordered := make([]model.StatRow, len(snapshot))
	copy(ordered, snapshot)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Rating != ordered[j].Rating {
			return ordered[i].Rating > ordered[j].Rating
		}
		return ordered[i].SongID < ordered[j].SongID
	})
	for i, row := range ordered {
		want := int64(i + 1)
		if row.Rank != want {
			return fmt.Errorf("snapshot %d: song %d has rank %d, want %d", index, row.SongID, row.Rank, want)
		}
	}
	return nil
}

// verifyCarryForward checks that songs outside the match kept their
// previous snapshot's rating.
func verifyCarryForward(index int64, prev, cur []model.StatRow, match model.Match) error {
	prevRatings := make(map[int64]float64, len(prev))
	for _, row := range prev {
		prevRatings[row.SongID] = row.Rating
	}
	for _, row := range cur {
		if row.SongID == match.WinnerID || row.SongID == match.LoserID {
			continue
		}
		if row.Rating != prevRatings[row.SongID] {
			return fmt.Errorf("snapshot %d: song %d rating changed without a match (%f -> %f)",
				index, row.SongID, prevRatings[row.SongID], row.Rating)
		}
	}
	return nil
}
