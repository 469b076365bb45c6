package game

import (
	"math/rand"
	"time"
)

// RNG is the random source threaded through every probabilistic function.
// *rand.Rand satisfies it.
type RNG interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRNG returns a seeded source. Seed 0 seeds from the clock.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Roll succeeds when a uniform draw falls below percent/100.
func Roll(rng RNG, percent float64) bool {
	if percent <= 0 {
		return false
	}
	return rng.Float64() < percent/100
}

// Pick returns a uniformly random element of cards, or nil when empty.
func Pick(rng RNG, cards []*Card) *Card {
	if len(cards) == 0 {
		return nil
	}
	return cards[rng.Intn(len(cards))]
}
