package repository

import "errors"

// Sentinel kinds for ledger errors.
var (
	// ErrUnknownSong rejects a match referencing a song id that was never
	// seeded.
	ErrUnknownSong = errors.New("unknown song id")

	// ErrRosterExists rejects seeding over a non-empty roster (conflict);
	// callers must reset explicitly first.
	ErrRosterExists = errors.New("roster already seeded")

	// ErrStorage wraps driver and transaction failures. It is reported to
	// API callers as an opaque failure.
	ErrStorage = errors.New("storage failure")
)
