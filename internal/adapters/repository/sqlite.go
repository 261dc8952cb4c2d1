package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mkarlsen/songrank/internal/domain/model"
	"github.com/mkarlsen/songrank/internal/domain/ranking"
	"github.com/mkarlsen/songrank/pkg/metrics"
)

//go:embed schema.sql
var schemaSQL string

// Default store configuration constants.
const (
	defaultListLimit     = 1000
	defaultBusyTimeoutMS = 5000
)

// SQLiteStore implements Store on a single SQLite database file.
//
// Writes take an in-process mutex in addition to the database transaction:
// the ledger is single-writer by design, and the mutex guarantees that two
// concurrent RecordMatch calls can never race for the same snapshot index.
type SQLiteStore struct {
	db *sql.DB

	writeMu sync.Mutex

	listLimit     int
	busyTimeoutMS int
}

// NewSQLiteStore opens (or creates) the ledger database at path and ensures
// the schema exists.
func NewSQLiteStore(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{
		listLimit:     defaultListLimit,
		busyTimeoutMS: defaultBusyTimeoutMS,
	}
	for _, opt := range opts {
		opt(s)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path, s.busyTimeoutMS)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorage, path, err)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: init schema: %w", ErrStorage, err)
	}

	s.db = db
	return s, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrStorage, err)
	}
	return nil
}

// Ping reports whether the database answers a trivial query.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: ping: %w", ErrStorage, err)
	}
	return nil
}

// SeedRoster writes the catalog and snapshot 0 in one transaction.
func (s *SQLiteStore) SeedRoster(ctx context.Context, songs []model.SeedSong) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: begin seed: %w", ErrStorage, err)
	}
	defer rollback(tx)

	var populated bool
	if err := tx.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM song)").Scan(&populated); err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: roster probe: %w", ErrStorage, err)
	}
	if populated {
		return ErrRosterExists
	}

	for _, song := range songs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO song (id, path, title, extension) VALUES (?, ?, ?, ?)",
			song.ID, song.Path, song.Title, song.Extension,
		); err != nil {
			metrics.RecordStoreError()
			return fmt.Errorf("%w: insert song %d: %w", ErrStorage, song.ID, err)
		}
	}

	for _, row := range ranking.SeedSnapshot(songs) {
		if err := insertStatRow(ctx, tx, row); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: commit seed: %w", ErrStorage, err)
	}

	metrics.RecordRosterSeeded()
	metrics.UpdateRosterSize(len(songs))
	return nil
}

// RecordMatch appends a match event and its snapshot atomically.
func (s *SQLiteStore) RecordMatch(ctx context.Context, cmd model.MatchCommand) (int64, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("%w: begin match: %w", ErrStorage, err)
	}
	defer rollback(tx)

	for _, id := range []int64{cmd.WinnerID, cmd.LoserID} {
		var exists bool
		if err := tx.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM song WHERE id = ?)", id).Scan(&exists); err != nil {
			metrics.RecordStoreError()
			return 0, fmt.Errorf("%w: song probe: %w", ErrStorage, err)
		}
		if !exists {
			return 0, fmt.Errorf("%w: %d", ErrUnknownSong, id)
		}
	}

	var prevIndex int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM matchup").Scan(&prevIndex); err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("%w: max match id: %w", ErrStorage, err)
	}

	prev, err := snapshotRows(ctx, tx, prevIndex)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO matchup (winner_id, loser_id) VALUES (?, ?)",
		cmd.WinnerID, cmd.LoserID,
	)
	if err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("%w: insert match: %w", ErrStorage, err)
	}
	matchID, err := res.LastInsertId()
	if err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("%w: match id: %w", ErrStorage, err)
	}
	if matchID != prevIndex+1 {
		// The id sequence must stay dense; anything else means the
		// ledger was modified outside this store.
		return 0, fmt.Errorf("%w: non-sequential match id %d (want %d)", ErrStorage, matchID, prevIndex+1)
	}

	for _, row := range ranking.Next(prev, matchID, cmd) {
		if err := insertStatRow(ctx, tx, row); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("%w: commit match: %w", ErrStorage, err)
	}

	metrics.RecordMatchRecorded()
	metrics.UpdateSnapshotCount(matchID)
	return matchID, nil
}

// Songs returns the catalog ordered by id.
func (s *SQLiteStore) Songs(ctx context.Context) ([]model.Song, error) {
	defer queryTimer()()
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, path, title, extension FROM song ORDER BY id LIMIT ?", s.listLimit)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: list songs: %w", ErrStorage, err)
	}
	defer rows.Close()

	songs := []model.Song{}
	for rows.Next() {
		var song model.Song
		if err := rows.Scan(&song.ID, &song.Path, &song.Title, &song.Extension); err != nil {
			metrics.RecordStoreError()
			return nil, fmt.Errorf("%w: scan song: %w", ErrStorage, err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: list songs: %w", ErrStorage, err)
	}
	return songs, nil
}

// Matches returns all match events in creation order.
func (s *SQLiteStore) Matches(ctx context.Context) ([]model.Match, error) {
	defer queryTimer()()
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, winner_id, loser_id FROM matchup ORDER BY id LIMIT ?", s.listLimit)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: list matches: %w", ErrStorage, err)
	}
	defer rows.Close()

	matches := []model.Match{}
	for rows.Next() {
		var match model.Match
		if err := rows.Scan(&match.ID, &match.WinnerID, &match.LoserID); err != nil {
			metrics.RecordStoreError()
			return nil, fmt.Errorf("%w: scan match: %w", ErrStorage, err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: list matches: %w", ErrStorage, err)
	}
	return matches, nil
}

// Stats returns all snapshot rows ordered by snapshot index then rank.
func (s *SQLiteStore) Stats(ctx context.Context) ([]model.StatRow, error) {
	defer queryTimer()()
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, matchup_id, song_id, rating, rank FROM song_stats ORDER BY matchup_id, rank LIMIT ?", s.listLimit)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: list stats: %w", ErrStorage, err)
	}
	defer rows.Close()

	stats := []model.StatRow{}
	for rows.Next() {
		var row model.StatRow
		if err := rows.Scan(&row.ID, &row.MatchIndex, &row.SongID, &row.Rating, &row.Rank); err != nil {
			metrics.RecordStoreError()
			return nil, fmt.Errorf("%w: scan stat row: %w", ErrStorage, err)
		}
		stats = append(stats, row)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: list stats: %w", ErrStorage, err)
	}
	return stats, nil
}

// MaxMatchIndex returns the highest recorded match id.
func (s *SQLiteStore) MaxMatchIndex(ctx context.Context) (int64, error) {
	var max int64
	if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM matchup").Scan(&max); err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("%w: max match id: %w", ErrStorage, err)
	}
	return max, nil
}

// Reset clears all three tables and restarts id assignment.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: begin reset: %w", ErrStorage, err)
	}
	defer rollback(tx)

	for _, stmt := range []string{
		"DELETE FROM song_stats",
		"DELETE FROM matchup",
		"DELETE FROM song",
		"DELETE FROM sqlite_sequence WHERE name IN ('matchup', 'song_stats')",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			metrics.RecordStoreError()
			return fmt.Errorf("%w: reset: %w", ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: commit reset: %w", ErrStorage, err)
	}

	metrics.RecordLedgerReset()
	metrics.UpdateRosterSize(0)
	metrics.UpdateSnapshotCount(0)
	return nil
}

// snapshotRows reads one snapshot's stat rows inside a transaction.
func snapshotRows(ctx context.Context, tx *sql.Tx, index int64) ([]model.StatRow, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT id, matchup_id, song_id, rating, rank FROM song_stats WHERE matchup_id = ? ORDER BY rank", index)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: snapshot %d: %w", ErrStorage, index, err)
	}
	defer rows.Close()

	snapshot := []model.StatRow{}
	for rows.Next() {
		var row model.StatRow
		if err := rows.Scan(&row.ID, &row.MatchIndex, &row.SongID, &row.Rating, &row.Rank); err != nil {
			metrics.RecordStoreError()
			return nil, fmt.Errorf("%w: scan snapshot %d: %w", ErrStorage, index, err)
		}
		snapshot = append(snapshot, row)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: snapshot %d: %w", ErrStorage, index, err)
	}
	return snapshot, nil
}

func insertStatRow(ctx context.Context, tx *sql.Tx, row model.StatRow) error {
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO song_stats (matchup_id, song_id, rating, rank) VALUES (?, ?, ?, ?)",
		row.MatchIndex, row.SongID, row.Rating, row.Rank,
	); err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: insert stat row (%d, %d): %w", ErrStorage, row.MatchIndex, row.SongID, err)
	}
	return nil
}

// rollback is a no-op after commit; sql.ErrTxDone is the expected outcome.
func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		metrics.RecordErrorByComponent("store", "rollback")
	}
}

func queryTimer() func() {
	start := time.Now()
	return func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}
}
