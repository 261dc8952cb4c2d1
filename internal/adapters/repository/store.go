// Package repository defines the rating ledger store interface and errors.
//
// The ledger is append-only: seeding writes the roster plus snapshot 0, and
// every recorded match appends exactly one match row and one full snapshot.
// Existing rows are never mutated. Writes are serialized so snapshot index
// assignment is sequential and gap-free, and every write is all-or-nothing.
package repository

import (
	"context"

	"github.com/mkarlsen/songrank/internal/domain/model"
)

// Store provides transactional access to the rating ledger.
type Store interface {
	// SeedRoster atomically writes the song catalog and its snapshot-0
	// stat rows. Returns ErrRosterExists if any song is already present.
	SeedRoster(ctx context.Context, songs []model.SeedSong) error

	// RecordMatch appends one match event and the snapshot it produces as
	// a single atomic operation, returning the new match id. Returns
	// ErrUnknownSong when either referenced song does not exist.
	RecordMatch(ctx context.Context, cmd model.MatchCommand) (int64, error)

	// Songs returns the full catalog, ordered by id, bounded by the
	// configured list cap.
	Songs(ctx context.Context) ([]model.Song, error)

	// Matches returns all match events in creation order.
	Matches(ctx context.Context) ([]model.Match, error)

	// Stats returns all snapshot rows ordered by snapshot index, then rank.
	Stats(ctx context.Context) ([]model.StatRow, error)

	// MaxMatchIndex returns the highest recorded match id, 0 when the
	// ledger holds no matches.
	MaxMatchIndex(ctx context.Context) (int64, error)

	// Reset atomically clears songs, matches and stat rows, restarting
	// id assignment. Resetting an empty ledger is a no-op.
	Reset(ctx context.Context) error

	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying database handle.
	Close() error
}
