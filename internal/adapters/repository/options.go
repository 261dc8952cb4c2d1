package repository

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithListLimit caps the number of rows returned by every list query.
func WithListLimit(limit int) Option {
	return func(s *SQLiteStore) {
		if limit > 0 {
			s.listLimit = limit
		}
	}
}

// WithBusyTimeout sets the SQLite busy timeout in milliseconds.
func WithBusyTimeout(ms int) Option {
	return func(s *SQLiteStore) {
		if ms > 0 {
			s.busyTimeoutMS = ms
		}
	}
}
