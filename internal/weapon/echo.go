package weapon

import "github.com/peterkuimelis/setrogue/internal/game"

// EchoDetector reports bonus sets that resolve automatically alongside a match.
// Returned sets are re-validated by the aggregator, so detectors may be loose.
type EchoDetector interface {
	DetectEchoes(board game.Board, exclude []string, stats game.PlayerStats, active game.ActiveAttributes, rng game.RNG) [][]*game.Card
}

// ChanceEcho rolls stats.EchoChance and, on success, echoes the first valid
// combination among the cards not in exclude.
type ChanceEcho struct{}

func (ChanceEcho) DetectEchoes(board game.Board, exclude []string, stats game.PlayerStats, active game.ActiveAttributes, rng game.RNG) [][]*game.Card {
	if !game.Roll(rng, stats.EchoChance) {
		return nil
	}
	set := game.FindValidCombination(board, active, exclude)
	if set == nil {
		return nil
	}
	return [][]*game.Card{set}
}

// EchoFunc adapts a plain function to EchoDetector.
type EchoFunc func(board game.Board, exclude []string) [][]*game.Card

func (f EchoFunc) DetectEchoes(board game.Board, exclude []string, _ game.PlayerStats, _ game.ActiveAttributes, _ game.RNG) [][]*game.Card {
	return f(board, exclude)
}
