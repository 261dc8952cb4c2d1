package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/mkarlsen/songrank/internal/simulate"
	"github.com/mkarlsen/songrank/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumSongs   = 100
	defaultNumMatches = 1000
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9090", "Base URL of the ledger service")
		numSongs   = flag.Int("songs", defaultNumSongs, "Roster size to seed")
		numMatches = flag.Int("matches", defaultNumMatches, "Number of matches to play")
		workers    = flag.Int("workers", runtime.NumCPU(), "Number of concurrent submitters")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "RNG seed for reproducible rosters")
		reset      = flag.Bool("reset", false, "Clear the ledger before seeding")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &simulate.Config{
		BaseURL:    *baseURL,
		NumSongs:   *numSongs,
		NumMatches: *numMatches,
		Workers:    *workers,
		Timeout:    *timeout,
		Seed:       *seed,
		Reset:      *reset,
		Verbose:    *verbose,
	}

	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
