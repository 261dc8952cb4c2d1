// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	"github.com/mkarlsen/songrank/internal/adapters/repository"
	"github.com/mkarlsen/songrank/internal/domain/model"
	"github.com/mkarlsen/songrank/pkg/logger"
	"github.com/mkarlsen/songrank/pkg/metrics"
)

// Service implements the API dependencies for the rating ledger.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store

	// Configuration
	dbPath        string
	listLimit     int
	busyTimeoutMS int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDBPath sets the path of the SQLite ledger file.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithListLimit caps the number of rows returned by list operations.
func WithListLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.listLimit = limit
		}
	}
}

// WithBusyTimeout sets the SQLite busy timeout in milliseconds.
func WithBusyTimeout(ms int) Option {
	return func(s *Service) {
		if ms > 0 {
			s.busyTimeoutMS = ms
		}
	}
}

// WithStore injects a pre-built store, bypassing the SQLite setup in
// Start. Used by tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dbPath:        "songrank.db",
		listLimit:     1000,
		busyTimeoutMS: 5000,
		logger:        nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start opens the ledger store and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting rating ledger service...")

	if s.store == nil {
		store, err := repository.NewSQLiteStore(ctx, s.dbPath,
			repository.WithListLimit(s.listLimit),
			repository.WithBusyTimeout(s.busyTimeoutMS),
		)
		if err != nil {
			return err
		}
		s.store = store
		s.logger.Info(ctx, "using sqlite store", logger.String("path", s.dbPath))
	}

	s.started = true
	s.logger.Info(ctx, "rating ledger service started",
		logger.Int("listLimit", s.listLimit),
		logger.Int("busyTimeoutMS", s.busyTimeoutMS),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping rating ledger service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "store close failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "rating ledger service stopped")
}

// Songs returns the seeded catalog.
func (s *Service) Songs(ctx context.Context) ([]model.Song, error) {
	return s.store.Songs(ctx)
}

// SeedRoster installs the catalog and its baseline snapshot.
func (s *Service) SeedRoster(ctx context.Context, songs []model.SeedSong) error {
	if err := s.store.SeedRoster(ctx, songs); err != nil {
		return err
	}
	s.logger.Info(ctx, "roster seeded", logger.Int("songs", len(songs)))
	return nil
}

// Matches returns every recorded match in order.
func (s *Service) Matches(ctx context.Context) ([]model.Match, error) {
	return s.store.Matches(ctx)
}

// RecordMatch appends a match outcome and returns its assigned id.
func (s *Service) RecordMatch(ctx context.Context, cmd model.MatchCommand) (int64, error) {
	id, err := s.store.RecordMatch(ctx, cmd)
	if err != nil {
		return 0, err
	}
	s.logger.Debug(ctx, "match recorded",
		logger.Int64("id", id),
		logger.Int64("winner", cmd.WinnerID),
		logger.Int64("loser", cmd.LoserID),
	)
	return id, nil
}

// Stats returns every snapshot row of the ledger.
func (s *Service) Stats(ctx context.Context) ([]model.StatRow, error) {
	return s.store.Stats(ctx)
}

// Reset clears the entire ledger.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "ledger reset")
	return nil
}

// Ping reports whether the underlying store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// GetStats returns service statistics for monitoring. It also refreshes
// the roster and snapshot gauges.
func (s *Service) GetStats() model.LedgerStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := model.LedgerStats{
		Started:   s.started,
		DBPath:    s.dbPath,
		ListLimit: s.listLimit,
	}

	if s.started {
		if songs, err := s.store.Songs(ctx); err == nil {
			stats.RosterSize = len(songs)
			metrics.UpdateRosterSize(len(songs))
		}
		if max, err := s.store.MaxMatchIndex(ctx); err == nil {
			stats.MaxMatchIndex = max
			metrics.UpdateSnapshotCount(max)
		}
	}

	return stats
}
