package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mkarlsen/songrank/internal/client"
	"github.com/mkarlsen/songrank/internal/domain/model"
	"github.com/mkarlsen/songrank/pkg/logger"
)

// pairing is one pre-drawn match between two roster slots.
type pairing struct {
	a, b int64
}

// Run executes the complete simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting ledger simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("songs", config.NumSongs),
		logger.Int("matches", config.NumMatches),
		logger.Int("workers", config.Workers),
		logger.Int64("seed", config.Seed),
		logger.Any("reset", config.Reset))

	c := client.New(config.BaseURL, client.WithTimeout(config.Timeout))

	// Step 1: Check service health
	if err := c.Health(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Optionally clear the previous run
	if config.Reset {
		if err := c.Reset(ctx); err != nil {
			return fmt.Errorf("ledger reset failed: %w", err)
		}
		logger.Get().Info(ctx, "ledger cleared")
	}

	// Step 3: Seed the roster
	rng := rand.New(rand.NewSource(config.Seed))
	songs := generateSongs(config.NumSongs, rng)
	if err := c.SeedRoster(ctx, songs); err != nil {
		return fmt.Errorf("roster seeding failed: %w", err)
	}
	stats.SongsSeeded = len(songs)
	logger.Get().Info(ctx, "roster seeded", logger.Int("songs", len(songs)))

	// Step 4: Play matches concurrently
	if err := playMatches(ctx, config, c, songs, rng, stats); err != nil {
		return fmt.Errorf("match submission failed: %w", err)
	}

	// Step 5: Verify the resulting ledger
	if err := verifyLedger(ctx, c, config, stats); err != nil {
		return fmt.Errorf("ledger verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return nil
}

// playMatches submits the configured number of matches through a worker
// pool. Pairings are drawn up front from the seeded RNG so a given seed
// replays the same schedule; ratings evolve in a shared Elo table.
func playMatches(ctx context.Context, config *Config, c *client.Client, songs []model.SeedSong, rng *rand.Rand, stats *Stats) error {
	logger.Get().Info(ctx, "playing matches",
		logger.Int("matches", config.NumMatches),
		logger.Int("workers", config.Workers))

	pairings := make([]pairing, config.NumMatches)
	for i := range pairings {
		a := rng.Intn(len(songs))
		b := rng.Intn(len(songs) - 1)
		if b >= a {
			b++
		}
		pairings[i] = pairing{a: songs[a].ID, b: songs[b].ID}
	}

	table := newRatingTable(songs)

	var submitted, failed int64
	jobs := make(chan pairing, config.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				cmd := table.play(p)
				if _, err := c.RecordMatch(ctx, cmd); err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "match rejected",
							logger.Int64("winner", cmd.WinnerID),
							logger.Int64("loser", cmd.LoserID),
							logger.Error(err))
					}
					continue
				}
				n := atomic.AddInt64(&submitted, 1)
				if config.Verbose && n%100 == 0 {
					logger.Get().Info(ctx, "progress", logger.Int64("submitted", n))
				}
			}
		}()
	}

	for _, p := range pairings {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return fmt.Errorf("context cancelled during submission: %w", ctx.Err())
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()

	stats.MatchesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.MatchesFailed = int(atomic.LoadInt64(&failed))
	logger.Get().Info(ctx, "matches submitted",
		logger.Int("successful", stats.MatchesSubmitted),
		logger.Int("failed", stats.MatchesFailed))
	return nil
}

// ratingTable tracks the evolving Elo ratings shared by the workers.
// The higher-rated side wins with its expected probability, decided by
// a table-local RNG since math/rand sources are not goroutine safe.
type ratingTable struct {
	mu      sync.Mutex
	ratings map[int64]float64
	rng     *rand.Rand
}

func newRatingTable(songs []model.SeedSong) *ratingTable {
	t := &ratingTable{
		ratings: make(map[int64]float64, len(songs)),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, song := range songs {
		t.ratings[song.ID] = song.StartingRating
	}
	return t
}

// play decides the outcome of one pairing and advances the table.
func (t *ratingTable) play(p pairing) model.MatchCommand {
	t.mu.Lock()
	defer t.mu.Unlock()

	ra, rb := t.ratings[p.a], t.ratings[p.b]
	winner, loser := p.a, p.b
	if t.rng.Float64() >= eloExpected(ra, rb) {
		winner, loser = p.b, p.a
	}
	wr, lr := eloApply(t.ratings[winner], t.ratings[loser])
	t.ratings[winner] = wr
	t.ratings[loser] = lr

	return model.MatchCommand{
		WinnerID:     winner,
		LoserID:      loser,
		WinnerRating: wr,
		LoserRating:  lr,
	}
}

// displayFinalStats logs the end-of-run summary.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "simulation completed",
		logger.Int("songsSeeded", stats.SongsSeeded),
		logger.Int("matchesSubmitted", stats.MatchesSubmitted),
		logger.Int("matchesFailed", stats.MatchesFailed),
		logger.Int64("snapshots", stats.SnapshotsFound),
		logger.String("duration", stats.Duration.String()))
}
