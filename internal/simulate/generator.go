package simulate

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/mkarlsen/songrank/internal/domain/model"
)

// Starting rating jitter keeps the seeded baseline from being one flat
// band so snapshot 0 already has a meaningful order.
const ratingJitter = 200

// generateSongs builds a random roster of n songs with unique ids.
func generateSongs(n int, rng *rand.Rand) []model.SeedSong {
	songs := make([]model.SeedSong, n)
	for i := 0; i < n; i++ {
		title := uuid.New().String()
		songs[i] = model.SeedSong{
			ID:             int64(i + 1),
			Path:           fmt.Sprintf("library/%s.mp3", title),
			Title:          title,
			Extension:      "mp3",
			StartingRating: initialRating + float64(rng.Intn(2*ratingJitter)-ratingJitter),
		}
	}
	return songs
}
