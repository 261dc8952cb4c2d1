// Package simulate drives a running ledger server end to end: it seeds
// a random roster, plays Elo-rated matches through the public API, and
// verifies the resulting snapshot history.
package simulate

import "time"

// Config holds configuration for the simulation run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumSongs   int           // Roster size to seed
	NumMatches int           // Number of matches to play
	Workers    int           // Number of concurrent submitters
	Timeout    time.Duration // HTTP request timeout
	Seed       int64         // RNG seed for reproducible rosters
	Reset      bool          // Clear the ledger before seeding
	Verbose    bool          // Enable verbose logging
}

// Stats holds simulation statistics.
type Stats struct {
	SongsSeeded      int
	MatchesSubmitted int
	MatchesFailed    int
	SnapshotsFound   int64
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
