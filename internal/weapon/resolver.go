// Package weapon resolves destructive weapon effects against the board and
// aggregates every weapon roll for a match into one result.
package weapon

import "github.com/peterkuimelis/setrogue/internal/game"

// ExplosiveCards rolls chance once for the match; on success returns every
// card adjacent to a matched card, excluding matched cards, without duplicates.
func ExplosiveCards(board game.Board, matched []*game.Card, chance float64, rng game.RNG) []*game.Card {
	if !game.Roll(rng, chance) {
		return nil
	}
	return neighborsOf(board, matched, nil)
}

// LaserCards fires along a random row or column through one matched card and
// returns that line minus the matched cards. Whether a laser fires at all is
// decided by the caller.
func LaserCards(board game.Board, matched []*game.Card, rng game.RNG) []*game.Card {
	onBoard := matchedIndices(board, matched)
	if len(onBoard) == 0 {
		return nil
	}
	origin := onBoard[rng.Intn(len(onBoard))]
	isRow := rng.Float64() < 0.5

	skip := game.IDSet(game.IDs(matched))
	var out []*game.Card
	for _, idx := range game.LineIndices(origin, len(board), isRow) {
		c := board[idx]
		if _, ok := skip[c.ID]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FireSpreadCards behaves like ExplosiveCards but never targets a card that is already on fire.
func FireSpreadCards(board game.Board, matched []*game.Card, chance float64, rng game.RNG) []*game.Card {
	if !game.Roll(rng, chance) {
		return nil
	}
	return neighborsOf(board, matched, func(c *game.Card) bool { return c.OnFire })
}

// RicochetCards rolls initialChance; on success it keeps hitting uniformly random
// eligible cards, rolling chainChance after every hit to continue. A card is never
// hit twice and the chain stops when the pool runs dry.
func RicochetCards(board game.Board, matched []*game.Card, excluded []string, initialChance, chainChance float64, rng game.RNG) []*game.Card {
	if !game.Roll(rng, initialChance) {
		return nil
	}
	skip := game.IDSet(append(game.IDs(matched), excluded...))
	pool := make([]*game.Card, 0, len(board))
	for _, c := range board {
		if _, ok := skip[c.ID]; !ok {
			pool = append(pool, c)
		}
	}

	var hits []*game.Card
	for len(pool) > 0 {
		i := rng.Intn(len(pool))
		hits = append(hits, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
		if !game.Roll(rng, chainChance) {
			break
		}
	}
	return hits
}

// neighborsOf unions the grid neighbors of every matched card, skipping matched
// cards and anything reject returns true for.
func neighborsOf(board game.Board, matched []*game.Card, reject func(*game.Card) bool) []*game.Card {
	skip := game.IDSet(game.IDs(matched))
	seen := make(map[int]bool)
	var out []*game.Card
	for _, origin := range matchedIndices(board, matched) {
		for _, idx := range game.AdjacentIndices(origin, len(board)) {
			if seen[idx] {
				continue
			}
			seen[idx] = true
			c := board[idx]
			if _, ok := skip[c.ID]; ok {
				continue
			}
			if reject != nil && reject(c) {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

func matchedIndices(board game.Board, matched []*game.Card) []int {
	var out []int
	for _, m := range matched {
		if i := board.IndexOf(m.ID); i >= 0 {
			out = append(out, i)
		}
	}
	return out
}
