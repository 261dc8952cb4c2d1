package simulate

import "math"

// Elo rating constants.
const (
	eloK          = 32
	eloScale      = 400
	eloBase       = 10
	initialRating = 1000
)

// eloExpected returns the expected score of a player rated ra against
// one rated rb.
func eloExpected(ra, rb float64) float64 {
	return 1 / (1 + math.Pow(eloBase, (rb-ra)/eloScale))
}

// eloApply returns the post-match ratings after winner beats loser.
func eloApply(winner, loser float64) (float64, float64) {
	ew := eloExpected(winner, loser)
	el := eloExpected(loser, winner)
	return winner + eloK*(1-ew), loser + eloK*(0-el)
}
